package http

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"stacknova/site/internal/assets"
	"stacknova/site/internal/content"
	"stacknova/site/internal/db"
	"stacknova/site/internal/http/templates"
)

const (
	htmlContentType      = "text/html; charset=utf-8"
	jsonContentType      = "application/json; charset=utf-8"
	errorFallbackMessage = "We couldn't process your request right now."

	homeTagline = "We build digital products that move businesses forward."
	homeIntro   = "StackNova is a full-service digital agency. From strategy to launch, our team designs, builds, and scales web and mobile products for ambitious companies."

	dateLabelFormat = "January 2, 2006"
)

var defaultServiceOptions = []string{
	"Web Development",
	"Mobile App Development",
	"UI/UX Design",
	"Cloud Solutions",
	"SEO Optimization",
	"Digital Marketing",
}

var defaultBudgetOptions = []string{
	"Under $5,000",
	"$5,000 - $10,000",
	"$10,000 - $25,000",
	"$25,000+",
}

var openPositions = []string{
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"UI/UX Designer",
	"DevOps Engineer",
}

type htmlResponse struct {
	Status      int
	ContentType string `header:"Content-Type"`
	Location    string `header:"Location"`
	Body        []byte
}

type serviceDetailInput struct {
	ID string `path:"id"`
}

type blogPostInput struct {
	Slug string `path:"slug"`
}

type healthResponse struct {
	Status int
	Body   struct {
		Status   string `json:"status"`
		Database string `json:"database"`
		Docstore string `json:"docstore"`
	}
}

func (s *Server) registerSiteRoutes() {
	huma.Get(s.api, "/", s.homeHandler, htmlOperation("StackNova home", stdhttp.StatusInternalServerError))
	huma.Get(s.api, "/services", s.servicesHandler, htmlOperation("Service catalog", stdhttp.StatusInternalServerError))
	huma.Get(s.api, "/services/{id}", s.serviceDetailHandler, htmlOperation(
		"Service detail",
		stdhttp.StatusNotFound,
		stdhttp.StatusInternalServerError,
	))
	huma.Get(s.api, "/blog", s.blogHandler, htmlOperation("Blog listing", stdhttp.StatusInternalServerError))
	huma.Get(s.api, "/blog/{slug}", s.blogPostHandler, htmlOperation(
		"Blog article",
		stdhttp.StatusNotFound,
		stdhttp.StatusInternalServerError,
	))
	huma.Get(s.api, "/about", s.aboutHandler, htmlOperation("About the agency", stdhttp.StatusInternalServerError))
	huma.Get(s.api, "/contact", s.contactPageHandler, htmlOperation("Contact form", stdhttp.StatusInternalServerError))
	huma.Get(s.api, "/get-started", s.getStartedPageHandler, htmlOperation("Project quote wizard", stdhttp.StatusInternalServerError))
	huma.Get(s.api, "/careers", s.careersPageHandler, htmlOperation("Open positions", stdhttp.StatusInternalServerError))
	huma.Get(s.api, "/privacy", s.privacyHandler, htmlOperation("Privacy policy", stdhttp.StatusInternalServerError))
	huma.Get(s.api, "/terms", s.termsHandler, htmlOperation("Terms of service", stdhttp.StatusInternalServerError))
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) homeHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	services, err := s.content.ListServices(ctx)
	if err != nil {
		s.recordError(ctx, err, "listing services", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't load the homepage right now.")
	}

	testimonials, err := s.content.ListTestimonials(ctx)
	if err != nil {
		s.recordError(ctx, err, "listing testimonials", nil)
		testimonials = nil
	}

	data := templates.HomePageData{
		Tagline:      homeTagline,
		Intro:        homeIntro,
		Services:     s.serviceViews(services),
		Testimonials: s.testimonialViews(testimonials),
	}

	body, err := renderComponent(ctx, templates.HomePage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering home page", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the homepage.")
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) servicesHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	services, err := s.content.ListServices(ctx)
	if err != nil {
		s.recordError(ctx, err, "listing services", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't load our services right now.")
	}

	data := templates.ServicesPageData{Services: s.serviceViews(services)}

	body, err := renderComponent(ctx, templates.ServicesPage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering services page", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the services page.")
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) serviceDetailHandler(ctx context.Context, input *serviceDetailInput) (*htmlResponse, error) {
	id := strings.TrimSpace(input.ID)

	offering, err := s.content.GetService(ctx, id)
	if err != nil {
		status, message := classifyError(err)
		s.recordError(ctx, err, "loading service", logrus.Fields{"id": id})
		return s.renderErrorResponse(ctx, status, message)
	}
	if offering == nil {
		return s.renderErrorResponse(ctx, stdhttp.StatusNotFound, "We couldn't find that service.")
	}

	data := templates.ServiceDetailData{Service: s.serviceView(*offering)}

	body, err := renderComponent(ctx, templates.ServiceDetailPage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering service page", logrus.Fields{"id": id})
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the service page.")
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) blogHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	posts := s.content.ListPosts(ctx)

	data := templates.BlogPageData{Posts: make([]templates.PostCardView, 0, len(posts))}
	for _, post := range posts {
		data.Posts = append(data.Posts, templates.PostCardView{
			Slug:      post.Slug,
			Title:     post.Title,
			Excerpt:   post.Excerpt,
			Author:    post.Author,
			DateLabel: post.Date.Format(dateLabelFormat),
			ImageURL:  s.assets.Resolve(assets.KindBlogs, post.Image),
			Tags:      post.Tags,
		})
	}

	body, err := renderComponent(ctx, templates.BlogPage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering blog page", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the blog right now.")
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) blogPostHandler(ctx context.Context, input *blogPostInput) (*htmlResponse, error) {
	slug := strings.TrimSpace(input.Slug)

	post, err := s.content.GetPostBySlug(ctx, slug)
	if err != nil {
		status, message := classifyError(err)
		s.recordError(ctx, err, "loading blog post", logrus.Fields{"slug": slug})
		return s.renderErrorResponse(ctx, status, message)
	}
	if post == nil {
		return s.renderErrorResponse(ctx, stdhttp.StatusNotFound, "We couldn't find that article.")
	}

	data := templates.BlogPostData{Post: templates.PostView{
		Title:     post.Title,
		Author:    post.Author,
		DateLabel: post.Date.Format(dateLabelFormat),
		HTML:      post.Content,
		ImageURL:  s.assets.Resolve(assets.KindBlogs, post.Image),
		Tags:      post.Tags,
	}}

	body, err := renderComponent(ctx, templates.BlogPostPage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering blog post", logrus.Fields{"slug": slug})
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render this article.")
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) aboutHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	team, err := s.content.ListTeam(ctx)
	if err != nil {
		s.recordError(ctx, err, "listing team members", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't load the about page right now.")
	}

	testimonials, err := s.content.ListTestimonials(ctx)
	if err != nil {
		s.recordError(ctx, err, "listing testimonials", nil)
		testimonials = nil
	}

	data := templates.AboutPageData{
		Team:         make([]templates.TeamMemberView, 0, len(team)),
		Testimonials: s.testimonialViews(testimonials),
	}
	for _, member := range team {
		data.Team = append(data.Team, templates.TeamMemberView{
			Name:      member.Name,
			Role:      member.Role,
			Bio:       member.Bio,
			AvatarURL: s.assets.Resolve(assets.KindTeam, member.Avatar),
			LinkedIn:  member.LinkedIn,
			Twitter:   member.Twitter,
		})
	}

	body, err := renderComponent(ctx, templates.AboutPage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering about page", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the about page.")
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) contactPageHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	body, err := renderComponent(ctx, templates.ContactPage())
	if err != nil {
		s.recordError(ctx, err, "rendering contact page", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the contact page.")
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) getStartedPageHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	options := defaultServiceOptions
	if services, err := s.content.ListServices(ctx); err == nil && len(services) > 0 {
		options = make([]string, 0, len(services))
		for _, offering := range services {
			options = append(options, offering.Title)
		}
	} else if err != nil {
		s.recordError(ctx, err, "listing services for wizard", nil)
	}

	data := templates.GetStartedPageData{
		ServiceOptions: options,
		BudgetOptions:  defaultBudgetOptions,
	}

	body, err := renderComponent(ctx, templates.GetStartedPage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering get started page", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the quote wizard.")
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) careersPageHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	data := templates.CareersPageData{Positions: openPositions}

	body, err := renderComponent(ctx, templates.CareersPage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering careers page", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the careers page.")
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) privacyHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	return s.simplePage(ctx, "Privacy Policy", []string{
		"StackNova collects only the information you submit through our forms: your name, contact details, and the content of your message.",
		"We use this information to respond to inquiries, prepare quotes, and process job applications. We never sell your data to third parties.",
		"Form submissions are stored on our own infrastructure. You can request deletion of your data at any time by contacting us.",
	})
}

func (s *Server) termsHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	return s.simplePage(ctx, "Terms of Service", []string{
		"By using this website you agree to use it for lawful purposes only.",
		"Content published on this site, including articles and imagery, remains the property of StackNova unless stated otherwise.",
		"Project estimates produced by the quote wizard are indicative and not a binding offer. A formal proposal follows every inquiry.",
	})
}

func (s *Server) simplePage(ctx context.Context, heading string, paragraphs []string) (*htmlResponse, error) {
	data := templates.SimplePageData{
		Heading:    heading,
		Paragraphs: paragraphs,
	}

	body, err := renderComponent(ctx, templates.SimplePage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering static page", logrus.Fields{"heading": heading})
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, errorFallbackMessage)
	}

	return newHTMLResponse(stdhttp.StatusOK, body), nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthResponse, error) {
	resp := &healthResponse{}
	resp.Body.Status = "ok"
	resp.Body.Database = "ok"
	resp.Body.Docstore = "ok"

	sqlDB, err := db.SQLDB(s.db)
	if err != nil {
		s.recordError(ctx, err, "obtaining sql db", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		s.recordError(ctx, pingErr, "pinging database", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	}

	if s.docstore == nil {
		resp.Body.Docstore = "fallback"
	}

	if resp.Status == 0 {
		resp.Status = stdhttp.StatusOK
	}

	return resp, nil
}

func (s *Server) serviceView(offering content.ServiceOffering) templates.ServiceView {
	return templates.ServiceView{
		ID:          offering.ID,
		Title:       offering.Title,
		Description: offering.Description,
		Details:     offering.Details,
		ImageURL:    s.assets.Resolve(assets.KindServices, offering.Image),
	}
}

func (s *Server) serviceViews(services []content.ServiceOffering) []templates.ServiceView {
	views := make([]templates.ServiceView, 0, len(services))
	for _, offering := range services {
		views = append(views, s.serviceView(offering))
	}
	return views
}

func (s *Server) testimonialViews(testimonials []content.Testimonial) []templates.TestimonialView {
	views := make([]templates.TestimonialView, 0, len(testimonials))
	for _, testimonial := range testimonials {
		views = append(views, templates.TestimonialView{
			Name:      testimonial.Name,
			Title:     testimonial.Title,
			Quote:     testimonial.Quote,
			AvatarURL: s.assets.Resolve(assets.KindTestimonials, testimonial.Avatar),
		})
	}
	return views
}

func newHTMLResponse(status int, body []byte) *htmlResponse {
	return &htmlResponse{
		Status:      status,
		ContentType: htmlContentType,
		Body:        body,
	}
}

func htmlOperation(summary string, statuses ...int) func(op *huma.Operation) {
	return func(op *huma.Operation) {
		if summary != "" {
			op.Summary = summary
		}
		if op.Responses == nil {
			op.Responses = map[string]*huma.Response{}
		}

		statusCodes := append([]int{stdhttp.StatusOK}, statuses...)
		for _, status := range statusCodes {
			code := strconv.Itoa(status)
			op.Responses[code] = &huma.Response{
				Description: stdhttp.StatusText(status),
				Content: map[string]*huma.MediaType{
					htmlContentType: {
						Schema: &huma.Schema{Type: "string"},
					},
				},
			}
		}
	}
}

func classifyError(err error) (int, string) {
	if err == nil {
		return stdhttp.StatusInternalServerError, errorFallbackMessage
	}

	cause := strings.ToLower(eris.Cause(err).Error())
	switch {
	case strings.Contains(cause, "is required"):
		return stdhttp.StatusBadRequest, "Some required information is missing from your request."
	case strings.Contains(cause, "not found"):
		return stdhttp.StatusNotFound, "We couldn't find what you were looking for."
	default:
		return stdhttp.StatusInternalServerError, errorFallbackMessage
	}
}

func (s *Server) renderErrorResponse(ctx context.Context, status int, message string) (*htmlResponse, error) {
	label := fmt.Sprintf("%d %s", status, stdhttp.StatusText(status))
	template := templates.ErrorPage(templates.ErrorPageData{
		StatusLabel: label,
		Message:     message,
	})

	body, err := renderComponent(ctx, template)
	if err != nil {
		s.recordError(ctx, err, "rendering error page", logrus.Fields{"status": status})
		fallback := []byte(fmt.Sprintf("<html><body><h1>%s</h1><p>%s</p></body></html>", label, message))
		return newHTMLResponse(status, fallback), nil
	}

	return newHTMLResponse(status, body), nil
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
