package content

import "time"

// Collection names used in the document store.
const (
	CollectionPosts        = "posts"
	CollectionServices     = "services"
	CollectionTeam         = "teamMembers"
	CollectionTestimonials = "testimonials"
)

// Post is a blog entry. Posts are stored under their slug, which is derived
// from the title at creation time and never changes afterwards.
type Post struct {
	ID      string    `json:"id,omitempty"`
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Excerpt string    `json:"excerpt"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Image   string    `json:"image,omitempty"`
	Tags    []string  `json:"tags"`
}

// ServiceOffering describes one service the agency sells.
type ServiceOffering struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
	Image       string   `json:"image,omitempty"`
}

// TeamMember is a person shown on the about page.
type TeamMember struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Testimonial is a client quote shown on the home and about pages.
type Testimonial struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Quote  string `json:"quote"`
	Avatar string `json:"avatar,omitempty"`
}
