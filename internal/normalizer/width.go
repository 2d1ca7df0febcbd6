package normalizer

import (
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// UnifyWidth folds character widths to their canonical forms and applies NFKC:
// full-width ASCII letters/digits become half-width, half-width katakana
// becomes full-width. Safe on arbitrary text.
func UnifyWidth(s string) string {
	t := transform.Chain(width.Fold, norm.NFKC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
