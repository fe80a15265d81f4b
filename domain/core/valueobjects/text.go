package valueobjects

import "strings"

// CRLF must come first so it is replaced as one unit.
var controlWhitespace = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"\t", " ",
)

// Normalise turns every line break or tab into a single space and trims the result.
// Runs are not collapsed: "a\n\nb" becomes "a  b".
func Normalise(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(controlWhitespace.Replace(s))
}
