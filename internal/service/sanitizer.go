package service

import (
	"regexp"
	"strings"
)

// Sanitizer reduces a rendered HTML bill to its visible text lines. It never
// fails: malformed HTML degrades to noisier output, not an error.
type Sanitizer struct{}

// NewSanitizer creates a new sanitizer
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

var (
	styleBlockRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptBlockRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	hspaceRe      = regexp.MustCompile(`[ \t]+`)
	lineEdgeRe    = regexp.MustCompile(` ?\n ?`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// entityReplacer decodes the fixed entity set the bill templates emit.
// Anything outside this set is left untouched.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&hellip;", "…",
	"&mdash;", "—",
	"&ndash;", "–",
)

// Sanitize strips markup from an HTML bill and returns its trimmed,
// non-empty text lines in document order.
func (s *Sanitizer) Sanitize(html string) []string {
	text := styleBlockRe.ReplaceAllString(html, "")
	text = scriptBlockRe.ReplaceAllString(text, "")

	// Tags become a single space so words on either side of a tag
	// boundary do not run together.
	text = tagRe.ReplaceAllString(text, " ")

	text = entityReplacer.Replace(text)

	text = hspaceRe.ReplaceAllString(text, " ")
	text = lineEdgeRe.ReplaceAllString(text, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
