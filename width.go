package console

import (
	"unicode/utf16"

	"github.com/mattn/go-runewidth"
)

// displayWidth returns the number of terminal columns a code point occupies:
// 0 for control characters and combining marks, 2 for wide characters
// (CJK ideographs, kana, Hangul, fullwidth forms, emoji), 1 for everything
// else. It is total: unknown code points report 1.
func displayWidth(r rune) int {
	if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
		return 0
	}
	w := runewidth.RuneWidth(r)
	if w > 2 {
		return 2
	}
	return w
}

// stringWidth returns the total display width of s.
func stringWidth(s string) int {
	total := 0
	for _, r := range s {
		total += displayWidth(r)
	}
	return total
}

// runesWidth returns the total display width of rs.
func runesWidth(rs []rune) int {
	total := 0
	for _, r := range rs {
		total += displayWidth(r)
	}
	return total
}

// isHighSurrogate reports whether r is a UTF-16 high surrogate code unit.
// Surrogate halves reach us when the platform input layer delivers UTF-16
// code units one at a time (Windows console APIs do).
func isHighSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDBFF
}

// isLowSurrogate reports whether r is a UTF-16 low surrogate code unit.
func isLowSurrogate(r rune) bool {
	return r >= 0xDC00 && r <= 0xDFFF
}

// combineSurrogate pairs two UTF-16 code units into one code point. The
// buffer stores one slot per code point, so a combined pair occupies a
// single slot carrying the pair's full display width and can never be
// split by a row boundary or a partial delete.
func combineSurrogate(hi, lo rune) (rune, bool) {
	if !isHighSurrogate(hi) || !isLowSurrogate(lo) {
		return 0, false
	}
	r := utf16.DecodeRune(hi, lo)
	if r == 0xFFFD {
		return 0, false
	}
	return r, true
}
