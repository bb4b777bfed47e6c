package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// RawHTML returns a templ component that writes the provided HTML without escaping.
// Blog post bodies are stored as trusted admin-authored HTML.
func RawHTML(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, err := io.WriteString(w, html)
		return err
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// static wraps a fixed HTML fragment as a component.
func static(html string) templ.Component {
	return RawHTML(html)
}
