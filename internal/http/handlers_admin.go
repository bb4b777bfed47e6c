package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"stacknova/site/internal/auth"
	"stacknova/site/internal/content"
	"stacknova/site/internal/docstore"
)

type loginRequest struct {
	Body struct {
		Password string `json:"password,omitempty"`
	}
}

type loginResponse struct {
	Status int
	Body   struct {
		Token   string `json:"token,omitempty"`
		Message string `json:"message,omitempty"`
	}
}

type adminListResponse struct {
	Status int
	Body   struct {
		Items any `json:"items"`
	}
}

type adminDocResponse struct {
	Status int
	Body   struct {
		Item    any    `json:"item,omitempty"`
		Message string `json:"message,omitempty"`
	}
}

type adminMutationResponse struct {
	Status int
	Body   struct {
		Message string `json:"message"`
		ID      string `json:"id,omitempty"`
	}
}

type adminPostBody struct {
	Title   string   `json:"title,omitempty"`
	Author  string   `json:"author,omitempty"`
	Content string   `json:"content,omitempty"`
	Image   string   `json:"image,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Date    string   `json:"date,omitempty"`
}

type adminCreatePostRequest struct {
	Body adminPostBody
}

type adminPostSlugInput struct {
	Slug string `path:"slug"`
}

type adminUpdatePostRequest struct {
	Slug string `path:"slug"`
	Body map[string]any
}

type adminCollectionInput struct {
	Collection string `path:"collection"`
}

type adminCreateDocRequest struct {
	Collection string `path:"collection"`
	Body       map[string]any
}

type adminDocInput struct {
	Collection string `path:"collection"`
	ID         string `path:"id"`
}

type adminUpdateDocRequest struct {
	Collection string `path:"collection"`
	ID         string `path:"id"`
	Body       map[string]any
}

func (s *Server) registerAdminRoutes() {
	huma.Post(s.api, "/admin/api/login", s.loginHandler, jsonOperation(
		"Exchange the admin password for a token",
		stdhttp.StatusOK,
		stdhttp.StatusUnauthorized,
		stdhttp.StatusServiceUnavailable,
	))

	huma.Get(s.api, "/admin/api/posts", s.adminListPostsHandler, s.adminOperation("List blog posts"))
	huma.Post(s.api, "/admin/api/posts", s.adminCreatePostHandler, s.adminOperation("Create a blog post"))
	huma.Get(s.api, "/admin/api/posts/{slug}", s.adminGetPostHandler, s.adminOperation("Fetch a blog post"))
	huma.Patch(s.api, "/admin/api/posts/{slug}", s.adminUpdatePostHandler, s.adminOperation("Update a blog post"))
	huma.Delete(s.api, "/admin/api/posts/{slug}", s.adminDeletePostHandler, s.adminOperation("Delete a blog post"))

	huma.Get(s.api, "/admin/api/{collection}", s.adminListDocsHandler, s.adminOperation("List documents"))
	huma.Post(s.api, "/admin/api/{collection}", s.adminCreateDocHandler, s.adminOperation("Create a document"))
	huma.Get(s.api, "/admin/api/{collection}/{id}", s.adminGetDocHandler, s.adminOperation("Fetch a document"))
	huma.Patch(s.api, "/admin/api/{collection}/{id}", s.adminUpdateDocHandler, s.adminOperation("Update a document"))
	huma.Delete(s.api, "/admin/api/{collection}/{id}", s.adminDeleteDocHandler, s.adminOperation("Delete a document"))
}

func (s *Server) adminOperation(summary string) func(op *huma.Operation) {
	middleware := s.adminAuthMiddleware()
	return func(op *huma.Operation) {
		op.Summary = summary
		op.Tags = []string{"admin"}
		op.Middlewares = huma.Middlewares{middleware}
	}
}

func (s *Server) loginHandler(ctx context.Context, input *loginRequest) (*loginResponse, error) {
	resp := &loginResponse{}

	token, err := s.auth.Login(input.Body.Password)
	if err != nil {
		if eris.Is(err, auth.ErrDisabled) {
			resp.Status = stdhttp.StatusServiceUnavailable
			resp.Body.Message = "admin access is not configured"
			return resp, nil
		}

		if s.logger != nil {
			fields := logrus.Fields{}
			if requestID := RequestIDFromContext(ctx); requestID != "" {
				fields["request_id"] = requestID
			}
			s.logger.WithFields(fields).Warn("admin login rejected")
		}

		resp.Status = stdhttp.StatusUnauthorized
		resp.Body.Message = "invalid credentials"
		return resp, nil
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Token = token
	return resp, nil
}

func (s *Server) adminListPostsHandler(ctx context.Context, _ *struct{}) (*adminListResponse, error) {
	resp := &adminListResponse{Status: stdhttp.StatusOK}
	resp.Body.Items = s.content.ListPosts(ctx)
	return resp, nil
}

func (s *Server) adminCreatePostHandler(ctx context.Context, input *adminCreatePostRequest) (*adminDocResponse, error) {
	resp := &adminDocResponse{}

	postInput := content.PostInput{
		Title:   input.Body.Title,
		Author:  input.Body.Author,
		Content: input.Body.Content,
		Image:   input.Body.Image,
		Tags:    input.Body.Tags,
	}

	if raw := strings.TrimSpace(input.Body.Date); raw != "" {
		date, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			resp.Status = stdhttp.StatusBadRequest
			resp.Body.Message = "date must be RFC 3339 formatted"
			return resp, nil
		}
		postInput.Date = date
	}

	post, err := s.content.CreatePost(ctx, postInput)
	if err != nil {
		status, message := s.adminError(ctx, err, "creating post")
		resp.Status = status
		resp.Body.Message = message
		return resp, nil
	}

	resp.Status = stdhttp.StatusCreated
	resp.Body.Item = post
	return resp, nil
}

func (s *Server) adminGetPostHandler(ctx context.Context, input *adminPostSlugInput) (*adminDocResponse, error) {
	resp := &adminDocResponse{}

	post, err := s.content.GetPostBySlug(ctx, input.Slug)
	if err != nil {
		status, message := s.adminError(ctx, err, "fetching post")
		resp.Status = status
		resp.Body.Message = message
		return resp, nil
	}
	if post == nil {
		resp.Status = stdhttp.StatusNotFound
		resp.Body.Message = "post not found"
		return resp, nil
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Item = post
	return resp, nil
}

func (s *Server) adminUpdatePostHandler(ctx context.Context, input *adminUpdatePostRequest) (*adminMutationResponse, error) {
	resp := &adminMutationResponse{}

	if err := s.content.UpdatePost(ctx, input.Slug, input.Body); err != nil {
		status, message := s.adminError(ctx, err, "updating post")
		resp.Status = status
		resp.Body.Message = message
		return resp, nil
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Message = "post updated"
	resp.Body.ID = input.Slug
	return resp, nil
}

func (s *Server) adminDeletePostHandler(ctx context.Context, input *adminPostSlugInput) (*adminMutationResponse, error) {
	resp := &adminMutationResponse{}

	if err := s.content.DeletePost(ctx, input.Slug); err != nil {
		status, message := s.adminError(ctx, err, "deleting post")
		resp.Status = status
		resp.Body.Message = message
		return resp, nil
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Message = "post deleted"
	return resp, nil
}

func (s *Server) adminListDocsHandler(ctx context.Context, input *adminCollectionInput) (*adminListResponse, error) {
	resp := &adminListResponse{}

	var (
		items any
		err   error
	)

	switch input.Collection {
	case content.CollectionServices:
		items, err = s.content.ListServices(ctx)
	case content.CollectionTeam:
		items, err = s.content.ListTeam(ctx)
	case content.CollectionTestimonials:
		items, err = s.content.ListTestimonials(ctx)
	default:
		resp.Status = stdhttp.StatusNotFound
		resp.Body.Items = []any{}
		return resp, nil
	}

	if err != nil {
		status, _ := s.adminError(ctx, err, "listing documents")
		resp.Status = status
		resp.Body.Items = []any{}
		return resp, nil
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Items = items
	return resp, nil
}

func (s *Server) adminCreateDocHandler(ctx context.Context, input *adminCreateDocRequest) (*adminMutationResponse, error) {
	resp := &adminMutationResponse{}

	var (
		id  string
		err error
	)

	switch input.Collection {
	case content.CollectionServices:
		var offering content.ServiceOffering
		if err = decodeDocument(input.Body, &offering); err == nil {
			id, err = s.content.CreateService(ctx, offering)
		}
	case content.CollectionTeam:
		var member content.TeamMember
		if err = decodeDocument(input.Body, &member); err == nil {
			id, err = s.content.CreateTeamMember(ctx, member)
		}
	case content.CollectionTestimonials:
		var testimonial content.Testimonial
		if err = decodeDocument(input.Body, &testimonial); err == nil {
			id, err = s.content.CreateTestimonial(ctx, testimonial)
		}
	default:
		resp.Status = stdhttp.StatusNotFound
		resp.Body.Message = "unknown collection"
		return resp, nil
	}

	if err != nil {
		status, message := s.adminError(ctx, err, "creating document")
		resp.Status = status
		resp.Body.Message = message
		return resp, nil
	}

	resp.Status = stdhttp.StatusCreated
	resp.Body.Message = "document created"
	resp.Body.ID = id
	return resp, nil
}

func (s *Server) adminGetDocHandler(ctx context.Context, input *adminDocInput) (*adminDocResponse, error) {
	resp := &adminDocResponse{}

	var (
		item any
		err  error
	)

	switch input.Collection {
	case content.CollectionServices:
		var offering *content.ServiceOffering
		offering, err = s.content.GetService(ctx, input.ID)
		if offering != nil {
			item = offering
		}
	case content.CollectionTeam:
		var member *content.TeamMember
		member, err = s.content.GetTeamMember(ctx, input.ID)
		if member != nil {
			item = member
		}
	case content.CollectionTestimonials:
		var testimonial *content.Testimonial
		testimonial, err = s.content.GetTestimonial(ctx, input.ID)
		if testimonial != nil {
			item = testimonial
		}
	default:
		resp.Status = stdhttp.StatusNotFound
		resp.Body.Message = "unknown collection"
		return resp, nil
	}

	if err != nil {
		status, message := s.adminError(ctx, err, "fetching document")
		resp.Status = status
		resp.Body.Message = message
		return resp, nil
	}
	if item == nil {
		resp.Status = stdhttp.StatusNotFound
		resp.Body.Message = "document not found"
		return resp, nil
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Item = item
	return resp, nil
}

func (s *Server) adminUpdateDocHandler(ctx context.Context, input *adminUpdateDocRequest) (*adminMutationResponse, error) {
	resp := &adminMutationResponse{}

	var err error
	switch input.Collection {
	case content.CollectionServices:
		err = s.content.UpdateService(ctx, input.ID, input.Body)
	case content.CollectionTeam:
		err = s.content.UpdateTeamMember(ctx, input.ID, input.Body)
	case content.CollectionTestimonials:
		err = s.content.UpdateTestimonial(ctx, input.ID, input.Body)
	default:
		resp.Status = stdhttp.StatusNotFound
		resp.Body.Message = "unknown collection"
		return resp, nil
	}

	if err != nil {
		status, message := s.adminError(ctx, err, "updating document")
		resp.Status = status
		resp.Body.Message = message
		return resp, nil
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Message = "document updated"
	resp.Body.ID = input.ID
	return resp, nil
}

func (s *Server) adminDeleteDocHandler(ctx context.Context, input *adminDocInput) (*adminMutationResponse, error) {
	resp := &adminMutationResponse{}

	var err error
	switch input.Collection {
	case content.CollectionServices:
		err = s.content.DeleteService(ctx, input.ID)
	case content.CollectionTeam:
		err = s.content.DeleteTeamMember(ctx, input.ID)
	case content.CollectionTestimonials:
		err = s.content.DeleteTestimonial(ctx, input.ID)
	default:
		resp.Status = stdhttp.StatusNotFound
		resp.Body.Message = "unknown collection"
		return resp, nil
	}

	if err != nil {
		status, message := s.adminError(ctx, err, "deleting document")
		resp.Status = status
		resp.Body.Message = message
		return resp, nil
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Message = "document deleted"
	return resp, nil
}

// adminError maps service failures to JSON API statuses and logs the cause.
func (s *Server) adminError(ctx context.Context, err error, action string) (int, string) {
	switch {
	case eris.Is(err, content.ErrSlugExists):
		return stdhttp.StatusConflict, "a post with this title already exists"
	case eris.Is(err, content.ErrStoreUnconfigured):
		return stdhttp.StatusServiceUnavailable, "content store is not configured"
	case eris.Is(err, docstore.ErrNotFound):
		return stdhttp.StatusNotFound, "document not found"
	}

	cause := strings.ToLower(eris.Cause(err).Error())
	if strings.Contains(cause, "is required") {
		return stdhttp.StatusBadRequest, eris.Cause(err).Error()
	}

	s.recordError(ctx, err, action, nil)
	return stdhttp.StatusInternalServerError, "internal server error"
}

func decodeDocument(body map[string]any, target any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "encoding document body")
	}
	if err := json.Unmarshal(data, target); err != nil {
		return eris.Wrap(err, "decoding document body")
	}
	return nil
}
