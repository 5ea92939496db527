package textproc

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	mdLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern    = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// StripLinks drops markdown link targets (keeping the link text) and
// removes bare URLs.
func StripLinks(input string) string {
	input = mdLinkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// MarkdownToText renders markdown content to plain text. Used at
// ingestion for platforms that deliver markdown bodies, so stored
// sample content is the text a reader actually sees.
func MarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())

	plain := string(output)
	plain = htmlTagPattern.ReplaceAllString(plain, " ")
	plain = strings.Join(strings.Fields(plain), " ")

	return strings.TrimSpace(StripLinks(plain))
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
