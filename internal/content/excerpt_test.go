package content

import (
	"strings"
	"testing"
)

func TestExcerptStripsMarkup(t *testing.T) {
	t.Parallel()

	got := Excerpt("<p>Hello <strong>world</strong></p><h3>Heading</h3>")
	if got != "Hello world Heading" {
		t.Fatalf("Excerpt = %q", got)
	}
}

func TestExcerptTruncatesAtWordBoundary(t *testing.T) {
	t.Parallel()

	long := "<p>" + strings.Repeat("lorem ipsum dolor ", 30) + "</p>"
	got := Excerpt(long)

	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > excerptMaxLength+len("…") {
		t.Fatalf("excerpt too long: %d bytes", len(got))
	}
	if strings.Contains(strings.TrimSuffix(got, "…"), "  ") {
		t.Fatalf("expected collapsed whitespace, got %q", got)
	}
}

func TestExcerptShortInputUnchanged(t *testing.T) {
	t.Parallel()

	if got := Excerpt("plain text"); got != "plain text" {
		t.Fatalf("Excerpt = %q", got)
	}
}
