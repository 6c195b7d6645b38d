package interpreter

import "strings"

// LineCursor is a shared, mutable cursor over the not-yet-consumed lines of
// the current script. Block-structured statements (function, if, class)
// consume their own bodies by reading forward from it.
type LineCursor struct {
	lines []string
	pos   int
}

// NewLineCursor wraps a line slice.
func NewLineCursor(lines []string) *LineCursor {
	return &LineCursor{lines: lines}
}

// Next returns the next line, advancing the cursor.
func (c *LineCursor) Next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

// readBlock captures a brace-delimited block. header is the line carrying
// the opening brace; any text after it on the same line becomes the first
// body line. Remaining lines are consumed from cur, tracking brace depth,
// through the matching close. Lines are stored trimmed; blank lines and the
// delimiters themselves are dropped.
func readBlock(header string, cur *LineCursor) []string {
	var body []string
	depth := 0

	if open := strings.Index(header, "{"); open >= 0 {
		rest := header[open+1:]
		if close := strings.LastIndex(rest, "}"); close >= 0 {
			// Single-line block.
			rest = rest[:close]
		} else {
			depth = 1
		}
		if trimmed := strings.TrimSpace(rest); trimmed != "" {
			body = append(body, trimmed)
		}
	}

	for depth > 0 {
		line, ok := cur.Next()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "{") {
			depth++
		}
		if strings.Contains(trimmed, "}") {
			depth--
			if depth <= 0 {
				break
			}
		}
		if trimmed != "" && depth > 0 {
			body = append(body, trimmed)
		}
	}
	return body
}
