package httpclient

import (
	"regexp"
	"strings"
)

// entityRe matches a well-formed XML entity reference at the start of a string.
var entityRe = regexp.MustCompile(`^&(?:[a-zA-Z][a-zA-Z0-9]*|#[0-9]+|#x[0-9a-fA-F]+);`)

// emptyTagRe matches degenerate empty tags some feed generators emit,
// like "<>", "</>" or "< />".
var emptyTagRe = regexp.MustCompile(`<\s*/?\s*>`)

// SanitizeXML repairs common malformed-XML patterns before feed parsing:
// bare ampersands become &amp;, empty self-closing artifacts are removed and
// surrounding whitespace is trimmed. Anything else is left for the parser to
// reject.
func SanitizeXML(data string) string {
	var b strings.Builder
	b.Grow(len(data))

	for i := 0; i < len(data); i++ {
		if data[i] != '&' {
			b.WriteByte(data[i])
			continue
		}
		if entityRe.MatchString(data[i:]) {
			b.WriteByte(data[i])
			continue
		}
		b.WriteString("&amp;")
	}

	result := emptyTagRe.ReplaceAllString(b.String(), "")

	return strings.TrimSpace(result)
}
