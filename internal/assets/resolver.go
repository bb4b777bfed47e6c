// Package assets resolves image references stored on content records into
// directly usable URLs.
package assets

import (
	"fmt"
	"net/url"
	"strings"
)

// FallbackImagePath is served when a record carries no image reference.
const FallbackImagePath = "/fallback.jpg"

// Kind selects the per-collection upload directory for bare filenames.
type Kind string

const (
	KindBlogs        Kind = "blogs"
	KindServices     Kind = "services"
	KindTeam         Kind = "team"
	KindTestimonials Kind = "testimonials"
)

// Resolver normalises image references. The function is total: every input
// maps to some usable URL string.
type Resolver struct {
	assetBaseURL  string
	uploadBaseURL string
}

// NewResolver builds a resolver from the cloud asset delivery base and the
// backend upload base (the prefix in front of "/<kind>/<filename>").
func NewResolver(assetBaseURL, uploadBaseURL string) *Resolver {
	return &Resolver{
		assetBaseURL:  strings.TrimRight(assetBaseURL, "/"),
		uploadBaseURL: strings.TrimRight(uploadBaseURL, "/"),
	}
}

// Resolve applies the reference rules in priority order:
// empty input gets the fallback image; absolute URLs pass through unchanged;
// a relative path is treated as a cloud storage key; a bare filename is mapped
// into the collection's upload directory.
func (r *Resolver) Resolve(kind Kind, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return FallbackImagePath
	}

	if parsed, err := url.Parse(ref); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		return ref
	}

	if strings.Contains(ref, "/") {
		return r.assetBaseURL + "/" + strings.TrimLeft(ref, "/")
	}

	return fmt.Sprintf("%s/%s/%s", r.uploadBaseURL, kind, ref)
}
