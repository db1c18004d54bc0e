// Package shellpatch applies idempotent edits to shell startup files. The
// patching rules are pure functions over file content so the convergence
// property is testable without touching a real filesystem: applying the same
// patch any number of times yields content byte-identical to applying it once.
package shellpatch

import "strings"

// AppendOnce returns content with block appended, preceded by a blank line,
// unless marker already occurs anywhere in content. The second return value
// reports whether content changed.
func AppendOnce(content, marker, block string) (string, bool) {
	if strings.Contains(content, marker) {
		return content, false
	}

	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(block)
	if !strings.HasSuffix(block, "\n") {
		b.WriteString("\n")
	}
	return b.String(), true
}

// ReplaceLine rewrites the first line starting with key to the replacement
// line, in place, leaving every other line untouched. When no line matches,
// the replacement is appended at the end. The second return value reports
// whether content changed.
func ReplaceLine(content, key, line string) (string, bool) {
	hadTrailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	found := false
	for i, l := range lines {
		if strings.HasPrefix(l, key) {
			if l == line {
				return content, false
			}
			lines[i] = line
			found = true
			break
		}
	}

	if !found {
		if len(lines) == 1 && lines[0] == "" {
			lines[0] = line
		} else {
			lines = append(lines, line)
		}
		hadTrailingNewline = true
	}

	out := strings.Join(lines, "\n")
	if hadTrailingNewline {
		out += "\n"
	}
	return out, true
}
