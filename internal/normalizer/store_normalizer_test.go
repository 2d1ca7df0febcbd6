package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreNormalizeCorporateForms(t *testing.T) {
	sn := NewStoreNormalizer(0.8)

	tests := []struct {
		in   string
		want string
	}{
		{"（株）山田商店", "株式会社山田商店"},
		{"㈱山田商店", "株式会社山田商店"},
		{"株式会社山田商店", "株式会社山田商店"},
		{"（有）田中青果", "有限会社田中青果"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sn.Normalize(tt.in), "input %q", tt.in)
	}
}

func TestStoreLearnGroups(t *testing.T) {
	sn := NewStoreNormalizer(0.8)

	sn.LearnGroups([]string{
		"ファミリーストア渋谷店",
		"ファミリーストア渋谷",
		"ファミリーストア 渋谷店",
		"山田酒店",
	})

	// All variants collapse to the shortest member of their group.
	rep := sn.Normalize("ファミリーストア渋谷店")
	assert.Equal(t, "ファミリーストア渋谷", rep)
	assert.Equal(t, rep, sn.Normalize("ファミリーストア 渋谷店"))

	// Unrelated names stay separate.
	assert.Equal(t, "山田酒店", sn.Normalize("山田酒店"))
}

func TestNameSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, nameSimilarity("山田商店", "山田商店"))
	assert.Greater(t, nameSimilarity("山田商店", "山田商事"), nameSimilarity("山田商店", "鈴木電器"))
	assert.GreaterOrEqual(t, nameSimilarity("", ""), 1.0)
}
