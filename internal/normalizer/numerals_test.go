package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumeralNormalize(t *testing.T) {
	nn := NewNumeralNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "kanji before chome marker",
			in:   "神南一丁目",
			want: "神南1丁目",
		},
		{
			name: "kanji before banchi and go",
			in:   "神南一丁目一番一号",
			want: "神南1丁目1番1号",
		},
		{
			name: "kanji before banchi marker with 地",
			in:   "追手町九番地",
			want: "追手町9番地",
		},
		{
			name: "multi digit kanji run",
			in:   "二九番",
			want: "29番",
		},
		{
			name: "place name kanji preserved",
			in:   "三田三丁目",
			want: "三田3丁目",
		},
		{
			name: "kanji away from marker untouched",
			in:   "一ノ橋東六郷",
			want: "一ノ橋東六郷",
		},
		{
			name: "fullwidth digits always converted",
			in:   "六本木１２３ビル",
			want: "六本木123ビル",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nn.Normalize(tt.in))
		})
	}
}

func TestNumeralNormalizeIdempotent(t *testing.T) {
	nn := NewNumeralNormalizer()
	inputs := []string{
		"神南一丁目一番一号",
		"三田三丁目",
		"１２３",
		"場所不明",
	}
	for _, in := range inputs {
		once := nn.Normalize(in)
		assert.Equal(t, once, nn.Normalize(once), "input %q", in)
	}
}
