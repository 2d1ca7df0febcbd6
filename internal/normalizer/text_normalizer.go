package normalizer

import (
	"regexp"
	"strings"
)

// TextNormalizer canonicalizes raw Japanese address text: character width and
// script unification, postal-code and decorative-symbol stripping, whitespace
// collapsing. It holds only compiled patterns and is safe for concurrent use.
type TextNormalizer struct {
	rePostalCode *regexp.Regexp
	reSymbols    *regexp.Regexp
	reSpaces     *regexp.Regexp
}

// NewTextNormalizer creates a TextNormalizer with its patterns compiled.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		// 〒150-0041 / 郵便番号1500041, with or without the hyphen
		rePostalCode: regexp.MustCompile(`〒\s*\d{3}-?\d{4}|郵便番号\s*\d{3}-?\d{4}`),
		reSymbols:    regexp.MustCompile(`[★☆●○◎■□◆◇※→←↑↓]`),
		reSpaces:     regexp.MustCompile(`[\s　]+`),
	}
}

// Normalize canonicalizes an address string. It is pure and idempotent, and
// never fails: empty or garbage input comes back as-is (possibly trimmed).
func (tn *TextNormalizer) Normalize(text string) string {
	if text == "" {
		return text
	}

	// 1. Width/script unification + NFKC
	text = UnifyWidth(text)

	// 2. Remove postal codes
	text = tn.rePostalCode.ReplaceAllString(text, "")

	// 3. Strip decorative symbols
	text = tn.reSymbols.ReplaceAllString(text, "")

	// 4. Collapse whitespace runs and trim
	text = tn.reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
