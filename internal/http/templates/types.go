package templates

// SiteName is used in titles and the shared layout.
const SiteName = "StackNova"

// ServiceView is a service offering prepared for rendering.
type ServiceView struct {
	ID          string
	Title       string
	Description string
	Details     []string
	ImageURL    string
}

// PostCardView is a blog post summary shown on the listing page.
type PostCardView struct {
	Slug      string
	Title     string
	Excerpt   string
	Author    string
	DateLabel string
	ImageURL  string
	Tags      []string
}

// PostView is a full blog article.
type PostView struct {
	Title     string
	Author    string
	DateLabel string
	HTML      string
	ImageURL  string
	Tags      []string
}

// TeamMemberView is a person shown on the about page.
type TeamMemberView struct {
	Name      string
	Role      string
	Bio       string
	AvatarURL string
	LinkedIn  string
	Twitter   string
}

// TestimonialView is a client quote.
type TestimonialView struct {
	Name      string
	Title     string
	Quote     string
	AvatarURL string
}

// HomePageData contains dynamic values rendered on the landing page.
type HomePageData struct {
	Tagline      string
	Intro        string
	Services     []ServiceView
	Testimonials []TestimonialView
}

// ServicesPageData bundles data for the services listing.
type ServicesPageData struct {
	Services []ServiceView
}

// ServiceDetailData bundles data for a single service page.
type ServiceDetailData struct {
	Service ServiceView
}

// BlogPageData bundles data for the blog listing.
type BlogPageData struct {
	Posts []PostCardView
}

// BlogPostData bundles data for a single article.
type BlogPostData struct {
	Post PostView
}

// AboutPageData bundles data for the about page.
type AboutPageData struct {
	Team         []TeamMemberView
	Testimonials []TestimonialView
}

// GetStartedPageData lists the selectable wizard options.
type GetStartedPageData struct {
	ServiceOptions []string
	BudgetOptions  []string
}

// CareersPageData lists the open positions offered on the application form.
type CareersPageData struct {
	Positions []string
}

// SimplePageData holds a heading plus plain paragraphs (privacy, terms).
type SimplePageData struct {
	Heading    string
	Paragraphs []string
}

// ErrorPageData holds information for rendering an error view.
type ErrorPageData struct {
	StatusLabel string
	Message     string
}
