package sitecheck

import "unicode/utf8"

// SplitLines splits builder output into lines. Every Unicode line boundary
// breaks a line ("\r\n" counts as one), a trailing break does not produce an
// empty last line and empty text has no lines.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// FilterLines drops benign diagnostic blocks from lines. Rules are tried in order
// and the first match wins: the matching line and the rule's Skip following lines
// are dropped. Lines no rule matches are kept unchanged.
func FilterLines(lines []string, rules []WarningRule) (kept []string, dropped int) {
	kept = make([]string, 0)
	i := 0
	for i < len(lines) {
		advance := 0
		for _, rule := range rules {
			if rule.Pattern.MatchString(lines[i]) {
				advance = rule.Skip + 1
				break
			}
		}
		if advance == 0 {
			kept = append(kept, lines[i])
			i++
			continue
		}
		end := min(i+advance, len(lines))
		dropped += end - i
		i = end
	}
	return kept, dropped
}
