package domain

// TruncateRunes hard-cuts s after n runes. Cutting on rune boundaries
// matches character-count semantics and never splits a UTF-8 sequence.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
