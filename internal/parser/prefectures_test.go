package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPrefecture(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		wantRest string
	}{
		{"東京都渋谷区神南", "東京都", "渋谷区神南"},
		{"北海道札幌市中央区", "北海道", "札幌市中央区"},
		{"京都府京都市下京区", "京都府", "京都市下京区"},
		{"大阪府大阪市北区", "大阪府", "大阪市北区"},
		// suffix omitted: stem still resolves
		{"東京渋谷区神南", "東京都", "渋谷区神南"},
		{"大阪中央区", "大阪府", "中央区"},
		// stem must not fire before 市: 京都市 alone is ambiguous text,
		// not a 京都府 prefix
		{"渋谷区神南", "", "渋谷区神南"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, n := MatchPrefecture(tt.in)
			assert.Equal(t, tt.want, name)
			assert.Equal(t, tt.wantRest, tt.in[n:])
		})
	}
}

func TestMatchDesignatedCity(t *testing.T) {
	city, pref, ok := MatchDesignatedCity("さいたま市大宮区吉敷町")
	assert.True(t, ok)
	assert.Equal(t, "さいたま市", city)
	assert.Equal(t, "埼玉県", pref)

	city, pref, ok = MatchDesignatedCity("横浜市西区みなとみらい")
	assert.True(t, ok)
	assert.Equal(t, "横浜市", city)
	assert.Equal(t, "神奈川県", pref)

	_, _, ok = MatchDesignatedCity("渋谷区神南")
	assert.False(t, ok)
}
