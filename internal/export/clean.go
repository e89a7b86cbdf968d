package export

import (
	"regexp"
	"strings"
)

// escapedTerminator matches a line holding only an escaped block comment
// terminator, optionally indented. A line may end in "\r\n".
var escapedTerminator = regexp.MustCompile(`(?m)^( *)\*\\/(\r?)$`)

// CleanComment normalizes raw comment text for output.
//
// It trims surrounding whitespace, drops the single space that continuation
// lines carry after a newline, and turns a line holding only `*\/` back into
// `*/`, keeping its indentation and line ending.
//
// The continuation rewrite is a single pass, so a line indented by n spaces
// loses one space per call.
func CleanComment(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, "\n ", "\n")
	return escapedTerminator.ReplaceAllString(text, "${1}*/${2}")
}
