package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/address-resolver/app/models"
)

// Segmenter decomposes normalized address text into prefecture, municipality,
// block numbers and a verbatim remainder. Segmentation is total: it always
// produces a StructuredAddress, degrading to empty fields on garbage input.
type Segmenter struct {
	reHyphen3  *regexp.Regexp
	reHyphen2  *regexp.Regexp
	reDigits   *regexp.Regexp
	reCityMark *regexp.Regexp
}

// NewSegmenter creates a Segmenter with its patterns compiled.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		// ASCII and Japanese dash variants between digit groups
		reHyphen3: regexp.MustCompile(`(\d+)[-−ー－](\d+)[-−ー－](\d+)`),
		reHyphen2: regexp.MustCompile(`(\d+)[-−ー－](\d+)`),
		reDigits:  regexp.MustCompile(`\d+`),
		// A city marker counts only when followed by CJK text or end of
		// string, so 市 inside a block like 新市町 is not a boundary.
		reCityMark: regexp.MustCompile(`(?:市|区|町|村)(?:[\x{3400}-\x{9FFF}]|$)`),
	}
}

// Segment parses text into a StructuredAddress. The input should already have
// gone through text and numeral normalization; Segment itself never fails.
func (s *Segmenter) Segment(text string) models.StructuredAddress {
	addr := models.StructuredAddress{Raw: text}
	if text == "" {
		return addr
	}

	rest := strings.TrimSpace(text)

	// 1. Prefecture prefix
	if name, n := MatchPrefecture(rest); name != "" {
		addr.Prefecture = name
		rest = rest[n:]
	}

	// 2. Designated cities may appear without their prefecture.
	if addr.Prefecture == "" {
		if _, pref, ok := MatchDesignatedCity(rest); ok {
			addr.Prefecture = pref
		}
	}

	// 3. Municipality: up to the last city marker in the pre-numeric part.
	addr.Municipality, rest = s.splitMunicipality(rest)

	// 4. Block numbers from whatever remains.
	chome, banchi, gou, consumed := s.extractBlock(rest)
	addr.Chome, addr.Banchi, addr.Go = chome, banchi, gou

	// 5. Remainder keeps the unconsumed text verbatim.
	addr.Remainder = strings.TrimSpace(strings.Replace(rest, consumed, "", 1))
	if consumed == "" {
		addr.Remainder = strings.TrimSpace(rest)
	}

	return addr
}

// splitMunicipality cuts the municipality (through the last 市/区/町/村 marker
// before any digits) off the front of text.
func (s *Segmenter) splitMunicipality(text string) (municipality, rest string) {
	// Only look at text before the first digit: markers inside building
	// names past the block numbers must not extend the municipality.
	headEnd := len(text)
	if loc := s.reDigits.FindStringIndex(text); loc != nil {
		headEnd = loc[0]
	}

	// Match against the full text so a marker directly before a digit does
	// not count, then keep only markers inside the pre-digit head.
	markerEnd := -1
	for _, m := range s.reCityMark.FindAllStringIndex(text, -1) {
		// All four marker runes are 3 bytes; the match may include one
		// trailing CJK rune that stays outside the municipality.
		if m[0]+len("市") > headEnd {
			break
		}
		markerEnd = m[0] + len("市")
	}
	if markerEnd < 0 {
		return "", text
	}
	return text[:markerEnd], text[markerEnd:]
}

// extractBlock pulls chome/banchi/go numbers out of text, trying the hyphen
// patterns first and falling back to explicit markers. It returns the exact
// substring that was consumed so the caller can compute the remainder.
func (s *Segmenter) extractBlock(text string) (chome, banchi, gou *int, consumed string) {
	// (a) three hyphen-separated groups: chome-banchi-go
	if m := s.reHyphen3.FindStringSubmatch(text); m != nil {
		return atoiPtr(m[1]), atoiPtr(m[2]), atoiPtr(m[3]), m[0]
	}

	// (b) two hyphen-separated groups: banchi-go
	if m := s.reHyphen2.FindStringSubmatch(text); m != nil {
		return nil, atoiPtr(m[1]), atoiPtr(m[2]), m[0]
	}

	// (c) explicit markers, splitting sequentially. Only the digit run
	// directly before each marker counts.
	rest := text
	start := -1
	end := 0
	cut := func(marker string) *int {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			return nil
		}
		nums := s.reDigits.FindAllStringIndex(rest[:idx], -1)
		if len(nums) == 0 {
			return nil
		}
		lastNum := nums[len(nums)-1]
		// The digit run must sit immediately against the marker.
		if lastNum[1] != idx {
			return nil
		}
		abs := len(text) - len(rest)
		if start < 0 {
			start = abs + lastNum[0]
		}
		end = abs + idx + len(marker)
		n := atoiPtr(rest[lastNum[0]:lastNum[1]])
		rest = rest[idx+len(marker):]
		return n
	}

	chome = cut("丁目")
	banchi = cut("番地")
	if banchi == nil {
		banchi = cut("番")
	}
	gou = cut("号")

	if start >= 0 {
		consumed = text[start:end]
	}
	return chome, banchi, gou, consumed
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
