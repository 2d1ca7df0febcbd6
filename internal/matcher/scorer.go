package matcher

import (
	"github.com/address-resolver/app/models"
)

// Weights control how much each address level contributes to the similarity.
// Finer-grained identifiers weigh more: a block-number mismatch is common and
// telling, a prefecture mismatch is rare and handled by gating instead.
type Weights struct {
	Prefecture   float64 `mapstructure:"prefecture" yaml:"prefecture"`
	Municipality float64 `mapstructure:"municipality" yaml:"municipality"`
	Remainder    float64 `mapstructure:"remainder" yaml:"remainder"`
	Block        float64 `mapstructure:"block" yaml:"block"` // chome and banchi
	Unit         float64 `mapstructure:"unit" yaml:"unit"`   // go
}

func DefaultWeights() Weights {
	return Weights{Prefecture: 1, Municipality: 2, Remainder: 3, Block: 4, Unit: 5}
}

// Scorer computes weighted hierarchical similarity between two structured
// addresses. Pure; safe for concurrent use.
type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score compares input against candidate level by level. Levels absent in
// either address are excluded from both numerator and denominator, so a
// missing banchi is never scored as a mismatch. With no comparable level at
// all the similarity is 0.
func (s *Scorer) Score(input, candidate models.StructuredAddress) models.MatchResult {
	var num, den float64
	var flags models.LevelMatches

	if input.Prefecture != "" && candidate.Prefecture != "" {
		den += s.weights.Prefecture
		if input.Prefecture == candidate.Prefecture {
			num += s.weights.Prefecture
		}
	}
	if input.Municipality != "" && candidate.Municipality != "" {
		den += s.weights.Municipality
		if input.Municipality == candidate.Municipality {
			num += s.weights.Municipality
		}
	}
	if input.Remainder != "" && candidate.Remainder != "" {
		den += s.weights.Remainder
		num += s.weights.Remainder * lcsRatio(input.Remainder, candidate.Remainder)
	}
	if input.Chome != nil && candidate.Chome != nil {
		den += s.weights.Block
		if *input.Chome == *candidate.Chome {
			num += s.weights.Block
			flags.Chome = true
		}
	}
	if input.Banchi != nil && candidate.Banchi != nil {
		den += s.weights.Block
		if *input.Banchi == *candidate.Banchi {
			num += s.weights.Block
			flags.Banchi = true
		}
	}
	if input.Go != nil && candidate.Go != nil {
		den += s.weights.Unit
		if *input.Go == *candidate.Go {
			num += s.weights.Unit
			flags.Go = true
		}
	}

	sim := 0.0
	if den > 0 {
		sim = num / den
	}
	return models.MatchResult{
		Candidate:    candidate.Raw,
		Similarity:   sim,
		LevelMatches: flags,
	}
}

// lcsRatio is the character-level longest-common-subsequence ratio of a and
// b, 2*lcs/(|a|+|b|), over runes.
func lcsRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return 2.0 * float64(prev[len(rb)]) / float64(len(ra)+len(rb))
}
