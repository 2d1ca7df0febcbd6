package normalizer

import (
	"regexp"
	"strings"
)

// kanjiDigits maps the nine kanji digits to ASCII. 十 is deliberately absent:
// positional kanji numbers (二十三 etc.) do not occur in block numbers, and
// converting 十 blindly corrupts place names.
var kanjiDigits = map[rune]rune{
	'一': '1', '二': '2', '三': '3', '四': '4', '五': '5',
	'六': '6', '七': '7', '八': '8', '九': '9',
}

// blockMarkers are the address-level markers a kanji numeral must precede to
// be converted. 番地 is listed before 番 so the longer marker wins.
var blockMarkers = []string{"丁目", "番地", "番", "号"}

// NumeralNormalizer converts full-width and kanji numerals to ASCII digits.
// Kanji digits are converted only when immediately followed by a block marker
// (丁目/番地/番/号), so kanji numerals embedded in place names are preserved:
// 三田三丁目 becomes 三田3丁目, not 3田3丁目.
type NumeralNormalizer struct {
	reFullWidth   *regexp.Regexp
	markerPattern map[string]*regexp.Regexp
}

// NewNumeralNormalizer creates a NumeralNormalizer with per-marker lookahead
// patterns compiled.
func NewNumeralNormalizer() *NumeralNormalizer {
	nn := &NumeralNormalizer{
		reFullWidth:   regexp.MustCompile(`[０-９]+`),
		markerPattern: make(map[string]*regexp.Regexp, len(blockMarkers)),
	}
	for _, marker := range blockMarkers {
		// Go regexp has no lookahead, so the marker is captured and
		// restored in the replacement.
		nn.markerPattern[marker] = regexp.MustCompile(`([一二三四五六七八九]+)(` + marker + `)`)
	}
	return nn
}

// Normalize returns text with full-width digits converted unconditionally and
// kanji digits converted only in front of a block marker. Pure and idempotent.
func (nn *NumeralNormalizer) Normalize(text string) string {
	if text == "" {
		return text
	}

	// Full-width digits are always safe to convert.
	text = nn.reFullWidth.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Map(func(r rune) rune {
			if r >= '０' && r <= '９' {
				return r - '０' + '0'
			}
			return r
		}, m)
	})

	// Kanji digits: each marker tested independently over the whole string.
	for _, marker := range blockMarkers {
		text = nn.markerPattern[marker].ReplaceAllStringFunc(text, func(m string) string {
			return strings.Map(func(r rune) rune {
				if d, ok := kanjiDigits[r]; ok {
					return d
				}
				return r
			}, m)
		})
	}

	return text
}
