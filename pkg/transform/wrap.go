package transform

import "strings"

// DefaultWrapWidth is the column width used for vocabulary output.
const DefaultWrapWidth = 50

const asciiSpace = " \t\n\v\f\r"

// Wrap fills text into lines of at most width runes joined by "\n".
// Whitespace at line ends and at the start of continuation lines is dropped
// and words longer than width are split. Hyphenated words are not broken at
// the hyphen. width <= 0 disables wrapping.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	chunks := splitChunks(text)
	var lines []string
	for len(chunks) > 0 {
		var cur []string
		curLen := 0

		if len(lines) > 0 && isBlank(chunks[0]) {
			chunks = chunks[1:]
		}

		for len(chunks) > 0 {
			n := len(chunks[0])
			if curLen+n > width {
				break
			}
			cur = append(cur, string(chunks[0]))
			curLen += n
			chunks = chunks[1:]
		}

		if len(chunks) > 0 && len(chunks[0]) > width {
			if space := width - curLen; space > 0 {
				cur = append(cur, string(chunks[0][:space]))
				chunks[0] = chunks[0][space:]
			}
		}

		if len(cur) > 0 && strings.TrimSpace(cur[len(cur)-1]) == "" {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			lines = append(lines, strings.Join(cur, ""))
		}
	}
	return strings.Join(lines, "\n")
}

// splitChunks cuts text into alternating runs of spaces and non-spaces,
// mapping ASCII whitespace to ' '. Other Unicode spaces (e.g. U+00A0) are
// word characters.
func splitChunks(text string) [][]rune {
	var chunks [][]rune
	var cur []rune
	curBlank := false
	for _, r := range text {
		blank := strings.ContainsRune(asciiSpace, r)
		if blank {
			r = ' '
		}
		if len(cur) > 0 && blank != curBlank {
			chunks = append(chunks, cur)
			cur = nil
		}
		cur = append(cur, r)
		curBlank = blank
	}
	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

func isBlank(chunk []rune) bool {
	for _, r := range chunk {
		if r != ' ' {
			return false
		}
	}
	return true
}
