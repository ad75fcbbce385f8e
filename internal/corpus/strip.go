package corpus

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are HTML elements that imply a line break in lyric text.
var blockTags = map[string]bool{
	"br":  true,
	"p":   true,
	"div": true,
	"li":  true,
}

// StripMarkup removes HTML markup from a lyric blob, keeping only the text
// content. Block-level tags and <br> become newlines so line structure
// survives; inline tags (<i>, <b>) disappear. Plain text passes through
// untouched apart from entity unescaping.
//
// Design decision: We use golang.org/x/net/html tokenizing rather than regex
// because scraped lyric fields carry the same malformed-HTML problems as any
// web content, and the tokenizer handles unclosed and nested tags correctly.
func StripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		if strings.Contains(s, "&") {
			return html.UnescapeString(s)
		}
		return s
	}

	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// The tokenizer only errors at EOF for string input.
			return b.String()
		case html.TextToken:
			b.Write(tokenizer.Text())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := tokenizer.TagName()
			if blockTags[string(name)] {
				b.WriteByte('\n')
			}
		}
	}
}
