package openai

import "strings"

// collapseWhitespace joins the fields of s with single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clipRunes returns at most n runes of s, cut at a word boundary when
// one is available.
func clipRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	clipped := string(runes[:n])
	if i := strings.LastIndexByte(clipped, ' '); i > 0 {
		clipped = clipped[:i]
	}
	return clipped
}

// cleanSummary strips the boilerplate models like to prepend.
func cleanSummary(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"Summary:", "Resumen:", "**Summary:**", "**Resumen:**"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	return collapseWhitespace(s)
}
