package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextNormalize(t *testing.T) {
	tn := NewTextNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fullwidth digits and latin folded",
			in:   "東京都渋谷区神南１－１－１",
			want: "東京都渋谷区神南1-1-1",
		},
		{
			name: "halfwidth katakana widened",
			in:   "ｱｰｸﾋﾙｽﾞ",
			want: "アークヒルズ",
		},
		{
			name: "postal code with mark removed",
			in:   "〒150-0041 東京都渋谷区神南",
			want: "東京都渋谷区神南",
		},
		{
			name: "postal code word form removed",
			in:   "郵便番号150-0041 東京都渋谷区神南",
			want: "東京都渋谷区神南",
		},
		{
			name: "postal code without hyphen removed",
			in:   "〒1500041東京都渋谷区神南",
			want: "東京都渋谷区神南",
		},
		{
			name: "decorative symbols stripped",
			in:   "★東京都港区六本木※",
			want: "東京都港区六本木",
		},
		{
			name: "whitespace collapsed and trimmed",
			in:   "  東京都　　渋谷区  神南  ",
			want: "東京都 渋谷区 神南",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "plain text untouched",
			in:   "長崎県西彼杵郡時津町浦郷",
			want: "長崎県西彼杵郡時津町浦郷",
		},
		{
			name: "katakana middle dot kept",
			in:   "★東京都港区アーク・ヒルズ",
			want: "東京都港区アーク・ヒルズ",
		},
		{
			name: "wave dash kept",
			in:   "東京都港区六本木1〜3",
			want: "東京都港区六本木1〜3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tn.Normalize(tt.in))
		})
	}
}

func TestTextNormalizeIdempotent(t *testing.T) {
	tn := NewTextNormalizer()
	inputs := []string{
		"〒150-0041 東京都渋谷区神南１－１－１",
		"ｱｰｸﾋﾙｽﾞ ｻｳｽﾀﾜｰ",
		"★場所不明※",
		"  東京都　港区  ",
		"garbage !!",
	}
	for _, in := range inputs {
		once := tn.Normalize(in)
		assert.Equal(t, once, tn.Normalize(once), "input %q", in)
	}
}
