package content

import "time"

// fallbackPosts are served for blog reads when no document store is configured,
// so the public site stays browsable out of the box. Writes never touch them.
var fallbackPosts = []Post{
	{
		ID:      "the-future-of-ai-in-web-development",
		Slug:    "the-future-of-ai-in-web-development",
		Title:   "The Future of AI in Web Development",
		Excerpt: "How machine learning is changing the way teams design, build and ship for the web.",
		Content: "<p>Artificial intelligence has moved from research labs into everyday engineering practice. " +
			"Code assistants draft boilerplate, models summarise user feedback, and recommendation systems " +
			"personalise whole storefronts in real time.</p>" +
			"<p>For agencies, the shift is practical rather than theoretical: delivery timelines shrink when " +
			"routine work is automated, and budgets move towards the parts of a product only humans can shape.</p>",
		Author: "Benjamin Carter",
		Date:   time.Date(2023, time.October, 26, 0, 0, 0, 0, time.UTC),
		Image:  "https://placehold.co/1200x600",
		Tags:   []string{"AI", "Web Development", "Future Tech"},
	},
	{
		ID:      "mastering-cloud-native-technologies",
		Slug:    "mastering-cloud-native-technologies",
		Title:   "Mastering Cloud-Native: A Guide for Modern Businesses",
		Excerpt: "Containers, microservices and CI/CD — the building blocks of resilient modern platforms.",
		Content: "<p>Cloud-native is more than a buzzword; it is a different way of structuring software. " +
			"Containers package applications with their dependencies, and microservices split monoliths into " +
			"independently deployable parts.</p>" +
			"<p>None of it works without a delivery pipeline. Continuous integration and deployment keep " +
			"release cycles short and make rollbacks boring, which is exactly what you want them to be.</p>",
		Author: "David Singh",
		Date:   time.Date(2023, time.November, 15, 0, 0, 0, 0, time.UTC),
		Image:  "https://placehold.co/1200x600",
		Tags:   []string{"Cloud", "DevOps", "Microservices"},
	},
	{
		ID:      "designing-for-conversion",
		Slug:    "designing-for-conversion",
		Title:   "Designing for Conversion: UX That Earns Trust",
		Excerpt: "Good design is not decoration. It is the shortest path between a visitor and a decision.",
		Content: "<p>Every marketing site has one job: turn attention into action. That starts with clarity — " +
			"a visitor should know within seconds what you do and why it matters to them.</p>" +
			"<p>Trust signals, fast pages and forms that respect people's time do more for conversion than " +
			"any animation ever will.</p>",
		Author: "Priya Raman",
		Date:   time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
		Image:  "https://placehold.co/1200x600",
		Tags:   []string{"Design", "UX"},
	},
}

// FallbackPosts returns a copy of the built-in demo posts.
func FallbackPosts() []Post {
	posts := make([]Post, len(fallbackPosts))
	copy(posts, fallbackPosts)
	return posts
}
