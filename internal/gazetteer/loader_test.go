package gazetteer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/address-resolver/app/models"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"平成17年1月1日", "2005-01-01"},
		{"平成元年4月1日", "1989-04-01"},
		{"令和元年5月1日", "2019-05-01"},
		{"令和6年1月1日", "2024-01-01"},
		{"昭和31年9月30日", "1956-09-30"},
		{"2005-01-01", "2005-01-01"},
		{"2005/1/1", "2005-01-01"},
		{"2005年1月1日", "2005-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}

	_, err := ParseDate("いつか")
	assert.Error(t, err)
}

func TestLoaderLoad(t *testing.T) {
	csv := strings.Join([]string{
		"都道府県,旧市町村,新市町村,施行日,種別",
		"長崎県,西彼杵郡多良見町（たらみちょう）、同郡琴海町,諫早市,平成17年3月1日,新設",
		"埼玉県,浦和市、大宮市、与野市,さいたま市,2001-05-01,新設",
		"東京都,保谷市,西東京市,平成13年1月21日,編入",
	}, "\n")

	events, err := NewLoader().Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, events, 6)

	assert.Equal(t, "長崎県", events[0].Prefecture)
	assert.Equal(t, "西彼杵郡多良見町", events[0].OldName)
	assert.Equal(t, "諫早市", events[0].NewName)
	assert.Equal(t, "2005-03-01", events[0].EffectiveDate.Format("2006-01-02"))
	assert.Equal(t, models.ChangeConsolidation, events[0].Kind)
	assert.Equal(t, "たらみちょう", events[0].Reading)
	assert.True(t, strings.HasPrefix(events[0].ReadingASCII, "tarami"))

	// 同郡 expands to the county of the preceding entry
	assert.Equal(t, "西彼杵郡琴海町", events[1].OldName)
	assert.Equal(t, "諫早市", events[1].NewName)

	assert.Equal(t, "浦和市", events[2].OldName)
	assert.Equal(t, "大宮市", events[3].OldName)
	assert.Equal(t, "与野市", events[4].OldName)

	assert.Equal(t, models.ChangeAbsorption, events[5].Kind)
	assert.Equal(t, "保谷市", events[5].OldName)
}

func TestLoaderSkipsSelfRename(t *testing.T) {
	csv := "愛知県,名古屋市,名古屋市,2005-01-01,編入\n"
	events, err := NewLoader().Load(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLoaderBadDate(t *testing.T) {
	csv := "愛知県,旧町,新市,そのうち,新設\n"
	_, err := NewLoader().Load(strings.NewReader(csv))
	assert.Error(t, err)
}
