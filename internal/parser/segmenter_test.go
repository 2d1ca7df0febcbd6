package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/address-resolver/app/models"
)

func intp(n int) *int { return &n }

func TestSegment(t *testing.T) {
	s := NewSegmenter()

	tests := []struct {
		name string
		in   string
		want models.StructuredAddress
	}{
		{
			name: "full address with hyphen triple",
			in:   "東京都港区六本木1-4-5",
			want: models.StructuredAddress{
				Prefecture:   "東京都",
				Municipality: "港区",
				Remainder:    "六本木",
				Chome:        intp(1),
				Banchi:       intp(4),
				Go:           intp(5),
			},
		},
		{
			name: "hyphen pair is banchi and go",
			in:   "東京都千代田区丸の内2-7",
			want: models.StructuredAddress{
				Prefecture:   "東京都",
				Municipality: "千代田区",
				Remainder:    "丸の内",
				Banchi:       intp(2),
				Go:           intp(7),
			},
		},
		{
			name: "explicit block markers",
			in:   "東京都渋谷区神南1丁目1番1号",
			want: models.StructuredAddress{
				Prefecture:   "東京都",
				Municipality: "渋谷区",
				Remainder:    "神南",
				Chome:        intp(1),
				Banchi:       intp(1),
				Go:           intp(1),
			},
		},
		{
			name: "banchi marker without chome",
			in:   "静岡県静岡市葵区追手町9番地",
			want: models.StructuredAddress{
				Prefecture:   "静岡県",
				Municipality: "静岡市葵区",
				Remainder:    "追手町",
				Banchi:       intp(9),
			},
		},
		{
			name: "designated city without prefecture",
			in:   "さいたま市大宮区吉敷町4-267-2",
			want: models.StructuredAddress{
				Prefecture:   "埼玉県",
				Municipality: "さいたま市大宮区",
				Remainder:    "吉敷町",
				Chome:        intp(4),
				Banchi:       intp(267),
				Go:           intp(2),
			},
		},
		{
			name: "county municipality",
			in:   "長崎県西彼杵郡時津町浦郷274-1",
			want: models.StructuredAddress{
				Prefecture:   "長崎県",
				Municipality: "西彼杵郡時津町",
				Remainder:    "浦郷",
				Banchi:       intp(274),
				Go:           intp(1),
			},
		},
		{
			name: "japanese dash variants",
			in:   "東京都渋谷区神南1−1−1",
			want: models.StructuredAddress{
				Prefecture:   "東京都",
				Municipality: "渋谷区",
				Remainder:    "神南",
				Chome:        intp(1),
				Banchi:       intp(1),
				Go:           intp(1),
			},
		},
		{
			name: "no numerals at all",
			in:   "場所不明",
			want: models.StructuredAddress{
				Remainder: "場所不明",
			},
		},
		{
			name: "trailing building text survives in remainder",
			in:   "東京都港区六本木1-4-5 アークヒルズ",
			want: models.StructuredAddress{
				Prefecture:   "東京都",
				Municipality: "港区",
				Remainder:    "六本木 アークヒルズ",
				Chome:        intp(1),
				Banchi:       intp(4),
				Go:           intp(5),
			},
		},
		{
			name: "empty input",
			in:   "",
			want: models.StructuredAddress{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Segment(tt.in)
			tt.want.Raw = tt.in
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSegmentTotality(t *testing.T) {
	s := NewSegmenter()
	inputs := []string{
		"",
		" ",
		"!!!???",
		"1234567890",
		"----",
		"市区町村",
		"都道府県",
		"あいうえおかきくけこ",
		"東京都",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { s.Segment(in) }, "input %q", in)
	}
}

func TestSegmentPrefectureOnly(t *testing.T) {
	s := NewSegmenter()
	got := s.Segment("東京都")
	assert.Equal(t, "東京都", got.Prefecture)
	assert.Empty(t, got.Municipality)
	assert.Empty(t, got.Remainder)
	assert.Nil(t, got.Chome)
}
