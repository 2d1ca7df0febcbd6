package matcher

import (
	"github.com/address-resolver/app/models"
	"github.com/address-resolver/internal/parser"
)

// Selector picks the best candidate address for an input string. Candidates
// whose prefecture contradicts the input's are excluded outright; among the
// rest the highest similarity wins, ties broken by the number of agreeing
// block-level flags and then by input order.
type Selector struct {
	segmenter *parser.Segmenter
	scorer    *Scorer
}

func NewSelector(segmenter *parser.Segmenter, scorer *Scorer) *Selector {
	return &Selector{segmenter: segmenter, scorer: scorer}
}

// Select segments input once, scores every surviving candidate, and returns
// the winner. When no candidate survives prefecture gating the input text
// comes back unchanged with Matched false and the unmatched sentinel score,
// so callers can tell "not found" from "matched with low confidence".
func (s *Selector) Select(input string, candidates []string) models.Selection {
	parsed := s.segmenter.Segment(input)

	best := models.Selection{
		Candidate: input,
		Score:     models.UnmatchedScore,
	}
	for _, cand := range candidates {
		cp := s.segmenter.Segment(cand)
		if parsed.Prefecture != "" && cp.Prefecture != "" && parsed.Prefecture != cp.Prefecture {
			continue
		}
		res := s.scorer.Score(parsed, cp)
		if !best.Matched ||
			res.Similarity > best.Score ||
			(res.Similarity == best.Score && res.LevelMatches.Count() > best.LevelMatches.Count()) {
			best = models.Selection{
				Candidate:    cand,
				Score:        res.Similarity,
				Matched:      true,
				LevelMatches: res.LevelMatches,
			}
		}
	}
	return best
}
