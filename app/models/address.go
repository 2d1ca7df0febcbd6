package models

import "strconv"

// StructuredAddress is the hierarchical decomposition of a Japanese address.
// Chome, Banchi and Go are pointers: nil means the level was not present in
// the input, which is different from the number 0.
type StructuredAddress struct {
	Prefecture   string `json:"prefecture"`   // one of the 47 prefectures, or empty
	Municipality string `json:"municipality"` // 市区町村 part, or empty
	Remainder    string `json:"remainder"`    // ward/town/street/building text kept verbatim
	Chome        *int   `json:"chome,omitempty"`
	Banchi       *int   `json:"banchi,omitempty"`
	Go           *int   `json:"go,omitempty"`
	Raw          string `json:"raw"` // original input string
}

// HasBlock reports whether at least one of chome/banchi/go was extracted.
func (a StructuredAddress) HasBlock() bool {
	return a.Chome != nil || a.Banchi != nil || a.Go != nil
}

// BlockString renders the extracted block numbers as "1-2-3" style text.
// Missing trailing levels are omitted; no block at all renders "".
func (a StructuredAddress) BlockString() string {
	var s string
	for _, n := range []*int{a.Chome, a.Banchi, a.Go} {
		if n == nil {
			break
		}
		if s != "" {
			s += "-"
		}
		s += strconv.Itoa(*n)
	}
	return s
}

// LevelMatches holds the per-level agreement flags between an input address
// and a matched candidate.
type LevelMatches struct {
	Chome  bool `json:"chome"`
	Banchi bool `json:"banchi"`
	Go     bool `json:"go"`
}

// Count returns how many levels agree.
func (lm LevelMatches) Count() int {
	n := 0
	for _, b := range []bool{lm.Chome, lm.Banchi, lm.Go} {
		if b {
			n++
		}
	}
	return n
}

// MatchResult is the outcome of scoring one candidate against the input.
// Created once per (input, candidate) pair and never mutated.
type MatchResult struct {
	Candidate    string       `json:"candidate"`
	Similarity   float64      `json:"similarity"` // in [0,1]
	LevelMatches LevelMatches `json:"level_matches"`
}

// UnmatchedScore is the sentinel similarity for "no candidate survived",
// distinct from any valid score in [0,1].
const UnmatchedScore = -1.0

// Selection is the result of picking the best candidate for an input.
type Selection struct {
	Candidate    string       `json:"candidate"` // best candidate, or the input text when unmatched
	Score        float64      `json:"score"`     // UnmatchedScore when Matched is false
	Matched      bool         `json:"matched"`
	LevelMatches LevelMatches `json:"level_matches"`
}
