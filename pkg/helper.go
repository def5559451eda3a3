package pkg

// Truncate clips s to at most max runes so oversized descriptions do not
// blow up the model prompt.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
