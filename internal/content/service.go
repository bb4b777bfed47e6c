package content

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"stacknova/site/internal/docstore"
)

// ErrSlugExists indicates a blog post with the derived slug already exists.
var ErrSlugExists = eris.New("a post with this slug already exists")

// ErrStoreUnconfigured indicates a write was attempted without a document store.
// Reads fall back to the built-in demo posts; writes must fail loudly.
var ErrStoreUnconfigured = eris.New("document store is not configured")

// Service exposes typed content operations over the document store.
type Service struct {
	store  docstore.Store
	logger *logrus.Logger
}

// NewService wires the content service. A nil store puts the blog into
// read-only fallback mode.
func NewService(store docstore.Store, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// PostInput carries the fields accepted when creating a blog post.
type PostInput struct {
	Title   string
	Author  string
	Content string
	Image   string
	Tags    []string
	Date    time.Time
}

// ListPosts returns all blog posts, newest first. When the store is
// unconfigured or unreachable the built-in demo posts are served instead.
func (s *Service) ListPosts(ctx context.Context) []Post {
	if s.store == nil {
		return sortedByDate(FallbackPosts())
	}

	docs, err := s.store.List(ctx, CollectionPosts)
	if err != nil {
		s.logError(nil, err, "listing posts, serving fallback content")
		return sortedByDate(FallbackPosts())
	}

	posts := make([]Post, 0, len(docs))
	for _, doc := range docs {
		var post Post
		if decodeErr := json.Unmarshal(doc.Data, &post); decodeErr != nil {
			s.logError(logrus.Fields{"id": doc.ID}, decodeErr, "decoding stored post, skipping")
			continue
		}
		post.ID = doc.ID
		posts = append(posts, post)
	}

	return sortedByDate(posts)
}

// GetPostBySlug returns the post or nil when absent.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, eris.New("slug is required")
	}

	if s.store == nil {
		for _, post := range FallbackPosts() {
			if post.Slug == trimmed {
				return &post, nil
			}
		}
		return nil, nil
	}

	doc, err := s.store.Get(ctx, CollectionPosts, trimmed)
	if err != nil {
		return nil, eris.Wrapf(err, "fetching post by slug: %s", trimmed)
	}
	if doc == nil {
		return nil, nil
	}

	var post Post
	if err := json.Unmarshal(doc.Data, &post); err != nil {
		return nil, eris.Wrapf(err, "decoding post: %s", trimmed)
	}
	post.ID = doc.ID

	return &post, nil
}

// CreatePost derives the slug from the title, rejects duplicates and stores the
// post under its slug.
func (s *Service) CreatePost(ctx context.Context, input PostInput) (*Post, error) {
	if s.store == nil {
		return nil, eris.Wrap(ErrStoreUnconfigured, "creating post")
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, eris.New("title is required")
	}
	if strings.TrimSpace(input.Author) == "" {
		return nil, eris.New("author is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, eris.New("content is required")
	}

	slug := Slugify(input.Title)
	if slug == "" {
		return nil, eris.Errorf("title %q does not produce a usable slug", input.Title)
	}

	existing, err := s.store.Get(ctx, CollectionPosts, slug)
	if err != nil {
		return nil, eris.Wrapf(err, "checking slug availability: %s", slug)
	}
	if existing != nil {
		return nil, eris.Wrapf(ErrSlugExists, "slug %q", slug)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	post := Post{
		Slug:    slug,
		Title:   strings.TrimSpace(input.Title),
		Excerpt: Excerpt(input.Content),
		Content: input.Content,
		Author:  strings.TrimSpace(input.Author),
		Date:    date,
		Image:   strings.TrimSpace(input.Image),
		Tags:    input.Tags,
	}

	data, err := json.Marshal(post)
	if err != nil {
		return nil, eris.Wrap(err, "encoding post")
	}

	if err := s.store.Put(ctx, CollectionPosts, slug, data); err != nil {
		s.logError(logrus.Fields{"slug": slug}, err, "persisting post")
		return nil, eris.Wrapf(err, "persisting post: %s", slug)
	}

	post.ID = slug
	return &post, nil
}

// UpdatePost merges partial fields into the stored post. The slug is immutable.
func (s *Service) UpdatePost(ctx context.Context, slug string, partial map[string]any) error {
	if s.store == nil {
		return eris.Wrap(ErrStoreUnconfigured, "updating post")
	}

	delete(partial, "slug")
	delete(partial, "id")

	if err := s.store.Update(ctx, CollectionPosts, slug, partial); err != nil {
		return eris.Wrapf(err, "updating post: %s", slug)
	}
	return nil
}

// DeletePost removes the post. Deleting an unknown slug is a no-op.
func (s *Service) DeletePost(ctx context.Context, slug string) error {
	if s.store == nil {
		return eris.Wrap(ErrStoreUnconfigured, "deleting post")
	}

	if err := s.store.Delete(ctx, CollectionPosts, slug); err != nil {
		return eris.Wrapf(err, "deleting post: %s", slug)
	}
	return nil
}

// ListServices returns every service offering.
func (s *Service) ListServices(ctx context.Context) ([]ServiceOffering, error) {
	if s.store == nil {
		return []ServiceOffering{}, nil
	}

	docs, err := s.store.List(ctx, CollectionServices)
	if err != nil {
		return nil, eris.Wrap(err, "listing services")
	}

	offerings := make([]ServiceOffering, 0, len(docs))
	for _, doc := range docs {
		var offering ServiceOffering
		if decodeErr := json.Unmarshal(doc.Data, &offering); decodeErr != nil {
			s.logError(logrus.Fields{"id": doc.ID}, decodeErr, "decoding stored service, skipping")
			continue
		}
		offering.ID = doc.ID
		offerings = append(offerings, offering)
	}

	return offerings, nil
}

// GetService returns the offering or nil when absent.
func (s *Service) GetService(ctx context.Context, id string) (*ServiceOffering, error) {
	if s.store == nil {
		return nil, nil
	}

	doc, err := s.store.Get(ctx, CollectionServices, id)
	if err != nil {
		return nil, eris.Wrapf(err, "fetching service: %s", id)
	}
	if doc == nil {
		return nil, nil
	}

	var offering ServiceOffering
	if err := json.Unmarshal(doc.Data, &offering); err != nil {
		return nil, eris.Wrapf(err, "decoding service: %s", id)
	}
	offering.ID = doc.ID

	return &offering, nil
}

// CreateService stores a new offering and returns its generated id.
func (s *Service) CreateService(ctx context.Context, offering ServiceOffering) (string, error) {
	if s.store == nil {
		return "", eris.Wrap(ErrStoreUnconfigured, "creating service")
	}

	if strings.TrimSpace(offering.Title) == "" {
		return "", eris.New("title is required")
	}
	if strings.TrimSpace(offering.Description) == "" {
		return "", eris.New("description is required")
	}

	offering.ID = ""
	data, err := json.Marshal(offering)
	if err != nil {
		return "", eris.Wrap(err, "encoding service")
	}

	id, err := s.store.Create(ctx, CollectionServices, data)
	if err != nil {
		s.logError(nil, err, "persisting service")
		return "", eris.Wrap(err, "persisting service")
	}

	return id, nil
}

// UpdateService merges partial fields into the stored offering.
func (s *Service) UpdateService(ctx context.Context, id string, partial map[string]any) error {
	return s.updateDocument(ctx, CollectionServices, id, partial, "updating service")
}

// DeleteService removes the offering. Unknown ids are a no-op.
func (s *Service) DeleteService(ctx context.Context, id string) error {
	return s.deleteDocument(ctx, CollectionServices, id, "deleting service")
}

// ListTeam returns every team member.
func (s *Service) ListTeam(ctx context.Context) ([]TeamMember, error) {
	if s.store == nil {
		return []TeamMember{}, nil
	}

	docs, err := s.store.List(ctx, CollectionTeam)
	if err != nil {
		return nil, eris.Wrap(err, "listing team members")
	}

	members := make([]TeamMember, 0, len(docs))
	for _, doc := range docs {
		var member TeamMember
		if decodeErr := json.Unmarshal(doc.Data, &member); decodeErr != nil {
			s.logError(logrus.Fields{"id": doc.ID}, decodeErr, "decoding stored team member, skipping")
			continue
		}
		member.ID = doc.ID
		members = append(members, member)
	}

	return members, nil
}

// GetTeamMember returns the member or nil when absent.
func (s *Service) GetTeamMember(ctx context.Context, id string) (*TeamMember, error) {
	if s.store == nil {
		return nil, nil
	}

	doc, err := s.store.Get(ctx, CollectionTeam, id)
	if err != nil {
		return nil, eris.Wrapf(err, "fetching team member: %s", id)
	}
	if doc == nil {
		return nil, nil
	}

	var member TeamMember
	if err := json.Unmarshal(doc.Data, &member); err != nil {
		return nil, eris.Wrapf(err, "decoding team member: %s", id)
	}
	member.ID = doc.ID

	return &member, nil
}

// CreateTeamMember stores a new member and returns its generated id.
func (s *Service) CreateTeamMember(ctx context.Context, member TeamMember) (string, error) {
	if s.store == nil {
		return "", eris.Wrap(ErrStoreUnconfigured, "creating team member")
	}

	if strings.TrimSpace(member.Name) == "" {
		return "", eris.New("name is required")
	}
	if strings.TrimSpace(member.Role) == "" {
		return "", eris.New("role is required")
	}

	member.ID = ""
	data, err := json.Marshal(member)
	if err != nil {
		return "", eris.Wrap(err, "encoding team member")
	}

	id, err := s.store.Create(ctx, CollectionTeam, data)
	if err != nil {
		s.logError(nil, err, "persisting team member")
		return "", eris.Wrap(err, "persisting team member")
	}

	return id, nil
}

// UpdateTeamMember merges partial fields into the stored member.
func (s *Service) UpdateTeamMember(ctx context.Context, id string, partial map[string]any) error {
	return s.updateDocument(ctx, CollectionTeam, id, partial, "updating team member")
}

// DeleteTeamMember removes the member. Unknown ids are a no-op.
func (s *Service) DeleteTeamMember(ctx context.Context, id string) error {
	return s.deleteDocument(ctx, CollectionTeam, id, "deleting team member")
}

// ListTestimonials returns every testimonial.
func (s *Service) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	if s.store == nil {
		return []Testimonial{}, nil
	}

	docs, err := s.store.List(ctx, CollectionTestimonials)
	if err != nil {
		return nil, eris.Wrap(err, "listing testimonials")
	}

	testimonials := make([]Testimonial, 0, len(docs))
	for _, doc := range docs {
		var testimonial Testimonial
		if decodeErr := json.Unmarshal(doc.Data, &testimonial); decodeErr != nil {
			s.logError(logrus.Fields{"id": doc.ID}, decodeErr, "decoding stored testimonial, skipping")
			continue
		}
		testimonial.ID = doc.ID
		testimonials = append(testimonials, testimonial)
	}

	return testimonials, nil
}

// GetTestimonial returns the testimonial or nil when absent.
func (s *Service) GetTestimonial(ctx context.Context, id string) (*Testimonial, error) {
	if s.store == nil {
		return nil, nil
	}

	doc, err := s.store.Get(ctx, CollectionTestimonials, id)
	if err != nil {
		return nil, eris.Wrapf(err, "fetching testimonial: %s", id)
	}
	if doc == nil {
		return nil, nil
	}

	var testimonial Testimonial
	if err := json.Unmarshal(doc.Data, &testimonial); err != nil {
		return nil, eris.Wrapf(err, "decoding testimonial: %s", id)
	}
	testimonial.ID = doc.ID

	return &testimonial, nil
}

// CreateTestimonial stores a new testimonial and returns its generated id.
func (s *Service) CreateTestimonial(ctx context.Context, testimonial Testimonial) (string, error) {
	if s.store == nil {
		return "", eris.Wrap(ErrStoreUnconfigured, "creating testimonial")
	}

	if strings.TrimSpace(testimonial.Name) == "" {
		return "", eris.New("name is required")
	}
	if strings.TrimSpace(testimonial.Quote) == "" {
		return "", eris.New("quote is required")
	}

	testimonial.ID = ""
	data, err := json.Marshal(testimonial)
	if err != nil {
		return "", eris.Wrap(err, "encoding testimonial")
	}

	id, err := s.store.Create(ctx, CollectionTestimonials, data)
	if err != nil {
		s.logError(nil, err, "persisting testimonial")
		return "", eris.Wrap(err, "persisting testimonial")
	}

	return id, nil
}

// UpdateTestimonial merges partial fields into the stored testimonial.
func (s *Service) UpdateTestimonial(ctx context.Context, id string, partial map[string]any) error {
	return s.updateDocument(ctx, CollectionTestimonials, id, partial, "updating testimonial")
}

// DeleteTestimonial removes the testimonial. Unknown ids are a no-op.
func (s *Service) DeleteTestimonial(ctx context.Context, id string) error {
	return s.deleteDocument(ctx, CollectionTestimonials, id, "deleting testimonial")
}

func (s *Service) updateDocument(ctx context.Context, collection, id string, partial map[string]any, action string) error {
	if s.store == nil {
		return eris.Wrap(ErrStoreUnconfigured, action)
	}

	delete(partial, "id")

	if err := s.store.Update(ctx, collection, id, partial); err != nil {
		return eris.Wrapf(err, "%s: %s", action, id)
	}
	return nil
}

func (s *Service) deleteDocument(ctx context.Context, collection, id string, action string) error {
	if s.store == nil {
		return eris.Wrap(ErrStoreUnconfigured, action)
	}

	if err := s.store.Delete(ctx, collection, id); err != nil {
		return eris.Wrapf(err, "%s: %s", action, id)
	}
	return nil
}

func sortedByDate(posts []Post) []Post {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts
}

func (s *Service) logError(fields logrus.Fields, err error, message string) {
	if s.logger == nil {
		return
	}

	entry := s.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
