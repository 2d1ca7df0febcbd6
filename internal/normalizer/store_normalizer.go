package normalizer

import (
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// StoreNormalizer unifies store/company name spellings: corporate-form
// variants (（株）, ㈱, 株式会社) are rewritten to one form, and near-identical
// names are grouped under a canonical representative so the same chain does
// not geocode as several distinct stores.
type StoreNormalizer struct {
	text      *TextNormalizer
	companyRe []companyPattern

	threshold float64
	mapping   map[string]string
}

type companyPattern struct {
	re          *regexp.Regexp
	replacement string
}

// NewStoreNormalizer creates a StoreNormalizer. threshold is the similarity
// above which two normalized names are considered the same store (0.8 is a
// reasonable default).
func NewStoreNormalizer(threshold float64) *StoreNormalizer {
	return &StoreNormalizer{
		text: NewTextNormalizer(),
		companyRe: []companyPattern{
			{regexp.MustCompile(`株式会社|\(株\)|（株）|㈱`), "株式会社"},
			{regexp.MustCompile(`有限会社|\(有\)|（有）|㈲`), "有限会社"},
			{regexp.MustCompile(`合同会社|\(同\)|（同）`), "合同会社"},
		},
		threshold: threshold,
		mapping:   make(map[string]string),
	}
}

// Normalize canonicalizes one store name: base text normalization plus
// corporate-form unification, then the learned group mapping if any.
func (sn *StoreNormalizer) Normalize(name string) string {
	if name == "" {
		return name
	}
	name = sn.text.Normalize(name)
	for _, cp := range sn.companyRe {
		name = cp.re.ReplaceAllString(name, cp.replacement)
	}
	if rep, ok := sn.mapping[name]; ok {
		return rep
	}
	return name
}

// LearnGroups clusters similar names and records the shortest member of each
// cluster as the representative. Subsequent Normalize calls map members to it.
func (sn *StoreNormalizer) LearnGroups(names []string) {
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		normalized = append(normalized, sn.Normalize(n))
	}

	processed := make(map[string]bool)
	for i, a := range normalized {
		if processed[a] {
			continue
		}
		group := []string{a}
		for _, b := range normalized[i+1:] {
			if processed[b] || b == a {
				continue
			}
			if nameSimilarity(a, b) >= sn.threshold {
				group = append(group, b)
				processed[b] = true
			}
		}
		// Shortest member represents the group.
		rep := group[0]
		for _, g := range group[1:] {
			if len([]rune(g)) < len([]rune(rep)) {
				rep = g
			}
		}
		for _, g := range group {
			sn.mapping[g] = rep
		}
		processed[a] = true
	}
}

// nameSimilarity blends a Levenshtein ratio with Jaro-Winkler and keeps the
// higher of the two, since short Japanese names penalize edit distance hard.
func nameSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := math.Max(float64(len([]rune(a))), float64(len([]rune(b))))
	lev := 0.0
	if maxLen > 0 {
		lev = 1.0 - float64(dist)/maxLen
	}
	jw := smetrics.JaroWinkler(strings.ToLower(a), strings.ToLower(b), 0.7, 4)
	return math.Max(lev, jw)
}
