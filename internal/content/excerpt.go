package content

import (
	"strings"

	"golang.org/x/net/html"
)

const excerptMaxLength = 200

// Excerpt derives a plain-text summary from freeform post HTML, truncated at a
// word boundary.
func Excerpt(rawHTML string) string {
	text := textFromHTML(rawHTML)
	if len(text) <= excerptMaxLength {
		return text
	}

	cut := text[:excerptMaxLength]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}

func textFromHTML(rawHTML string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))

	var parts []string
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			joined := strings.Join(parts, " ")
			return strings.Join(strings.Fields(joined), " ")
		case html.TextToken:
			if text := strings.TrimSpace(string(tokenizer.Text())); text != "" {
				parts = append(parts, text)
			}
		}
	}
}
