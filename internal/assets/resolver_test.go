package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestResolver() *Resolver {
	return NewResolver("https://res.cloudinary.com/stacknova/image/upload", "https://api.stacknova.example/uploads")
}

func TestResolveEmptyReturnsFallback(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	assert.Equal(t, FallbackImagePath, r.Resolve(KindBlogs, ""))
	assert.Equal(t, FallbackImagePath, r.Resolve(KindTeam, "   "))
}

func TestResolveAbsoluteURLsUnchanged(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	inputs := []string{
		"https://res.cloudinary.com/stacknova/image/upload/v1/team/jane.png",
		"https://example.com/pic.jpg",
		"http://example.com/pic.jpg",
		"ftp://example.com/pic.jpg",
	}

	for _, in := range inputs {
		assert.Equal(t, in, r.Resolve(KindServices, in))
		// Idempotent: resolving the output again changes nothing.
		assert.Equal(t, in, r.Resolve(KindServices, r.Resolve(KindServices, in)))
	}
}

func TestResolveRelativeKeyGetsAssetBase(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	assert.Equal(t,
		"https://res.cloudinary.com/stacknova/image/upload/v1/services/cloud.png",
		r.Resolve(KindServices, "v1/services/cloud.png"))
}

func TestResolveBareFilenameGetsCollectionUploadPath(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	assert.Equal(t, "https://api.stacknova.example/uploads/team/jane.png", r.Resolve(KindTeam, "jane.png"))
	assert.Equal(t, "https://api.stacknova.example/uploads/blogs/cover.jpg", r.Resolve(KindBlogs, "cover.jpg"))
	assert.Equal(t, "https://api.stacknova.example/uploads/services/icon.svg", r.Resolve(KindServices, "icon.svg"))
}

func TestResolveAlwaysReturnsNonEmpty(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	for _, in := range []string{"", "a", "a/b", "http://x", "://broken", "//odd"} {
		assert.NotEmpty(t, r.Resolve(KindTestimonials, in))
	}
}
