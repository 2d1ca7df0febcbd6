package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/address-resolver/app/models"
)

func intp(n int) *int { return &n }

func TestScorerIdenticalAddresses(t *testing.T) {
	s := NewScorer(DefaultWeights())
	addr := models.StructuredAddress{
		Prefecture:   "東京都",
		Municipality: "渋谷区",
		Remainder:    "神南",
		Chome:        intp(1),
		Banchi:       intp(1),
		Go:           intp(1),
	}
	res := s.Score(addr, addr)
	assert.Equal(t, 1.0, res.Similarity)
	assert.True(t, res.LevelMatches.Chome)
	assert.True(t, res.LevelMatches.Banchi)
	assert.True(t, res.LevelMatches.Go)
}

func TestScorerBounds(t *testing.T) {
	s := NewScorer(DefaultWeights())
	tests := []struct {
		name             string
		input, candidate models.StructuredAddress
	}{
		{
			name:      "all levels disagree",
			input:     models.StructuredAddress{Prefecture: "大阪府", Municipality: "堺市", Remainder: "甲", Chome: intp(1)},
			candidate: models.StructuredAddress{Prefecture: "東京都", Municipality: "港区", Remainder: "乙", Chome: intp(2)},
		},
		{
			name:      "partial remainder overlap",
			input:     models.StructuredAddress{Remainder: "西新宿"},
			candidate: models.StructuredAddress{Remainder: "新宿"},
		},
		{
			name:      "empty against empty",
			input:     models.StructuredAddress{},
			candidate: models.StructuredAddress{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Score(tt.input, tt.candidate)
			assert.GreaterOrEqual(t, res.Similarity, 0.0)
			assert.LessOrEqual(t, res.Similarity, 1.0)
		})
	}
}

func TestScorerAbsentLevelsExcluded(t *testing.T) {
	s := NewScorer(DefaultWeights())

	// Input has no block numerals at all; candidate does. Block levels must
	// not drag the score down.
	input := models.StructuredAddress{Prefecture: "東京都", Municipality: "渋谷区", Remainder: "場所不明"}
	candidate := models.StructuredAddress{Prefecture: "東京都", Municipality: "渋谷区", Remainder: "場所不明", Chome: intp(3), Banchi: intp(9)}

	res := s.Score(input, candidate)
	assert.Equal(t, 1.0, res.Similarity)
	assert.False(t, res.LevelMatches.Chome)
	assert.False(t, res.LevelMatches.Banchi)
}

func TestScorerDegenerate(t *testing.T) {
	s := NewScorer(DefaultWeights())
	res := s.Score(
		models.StructuredAddress{Prefecture: "東京都"},
		models.StructuredAddress{Remainder: "神南"},
	)
	assert.Equal(t, 0.0, res.Similarity)
}

func TestScorerBlockWeighting(t *testing.T) {
	s := NewScorer(DefaultWeights())

	base := models.StructuredAddress{Prefecture: "東京都", Municipality: "港区", Remainder: "六本木", Chome: intp(1), Banchi: intp(4), Go: intp(5)}

	wrongPref := base
	wrongPref.Prefecture = "京都府"
	wrongGo := base
	wrongGo.Go = intp(9)

	// unit (go) outweighs prefecture, so a wrong go hurts more
	prefScore := s.Score(base, wrongPref).Similarity
	goScore := s.Score(base, wrongGo).Similarity
	assert.Greater(t, prefScore, goScore)

	res := s.Score(base, wrongGo)
	assert.True(t, res.LevelMatches.Chome)
	assert.True(t, res.LevelMatches.Banchi)
	assert.False(t, res.LevelMatches.Go)
}

func TestLCSRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"神南", "神南", 1.0},
		{"神南", "神北", 0.5},
		{"abc", "xyz", 0.0},
		{"", "神南", 0.0},
		{"西新宿", "新宿", 0.8},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, lcsRatio(tt.a, tt.b), 1e-9, "lcsRatio(%q, %q)", tt.a, tt.b)
	}
}
