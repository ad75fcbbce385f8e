package xapi

import (
	"strings"
	"unicode/utf8"

	"github.com/utano/haikufinder/internal/model"
)

// ComposeStatus renders a haiku as status text within the given character
// limit. Attribution degrades gracefully: full "— Title by Artist" first,
// then title only, then the bare haiku, and as a last resort the body is
// truncated. Limits are counted in runes since the API counts characters,
// not bytes.
func ComposeStatus(h model.Haiku, includeAttribution bool, limit int) string {
	body := strings.TrimSpace(h.Text())

	if includeAttribution {
		title := strings.TrimSpace(h.Title)
		artist := strings.TrimSpace(h.Artist)

		if title != "" {
			if artist != "" {
				full := body + "\n\n— " + title + " by " + artist
				if utf8.RuneCountInString(full) <= limit {
					return full
				}
			}
			titleOnly := body + "\n\n— " + title
			if utf8.RuneCountInString(titleOnly) <= limit {
				return titleOnly
			}
		}
	}

	if utf8.RuneCountInString(body) <= limit {
		return body
	}

	runes := []rune(body)
	return string(runes[:limit])
}
