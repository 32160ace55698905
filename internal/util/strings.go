package util

// TruncateRunes returns the first n runes of s. Truncation is rune-based so
// multi-byte characters are never cut in half.
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
