package reconcile

// TrimText shortens text to at most limit characters.
//
// Texts within the limit are returned unchanged. Longer texts are cut to
// limit minus the marker length, backed off to the last line break inside
// that prefix (the break itself is dropped), and the marker is appended.
// Without a line break the prefix is hard-cut. Lengths count runes.
func TrimText(text string, limit int, marker string) (string, bool) {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text, false
	}

	cut := max(limit-len([]rune(marker)), 0)
	prefix := runes[:cut]
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] == '\n' {
			prefix = prefix[:i]
			break
		}
	}
	return string(prefix) + marker, true
}
