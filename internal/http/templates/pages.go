package templates

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// HomePage renders the landing page.
func HomePage(data HomePageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<section><h1>` + esc(data.Tagline) + `</h1>`)
	b.WriteString(`<p>` + esc(data.Intro) + `</p>`)
	b.WriteString(`<p><a href="/get-started">Get started</a> or <a href="/services">explore our services</a>.</p></section>`)

	if len(data.Services) > 0 {
		b.WriteString(`<section><h2>What we do</h2>`)
		for _, svc := range data.Services {
			writeServiceCard(&b, svc)
		}
		b.WriteString(`</section>`)
	}

	writeTestimonials(&b, data.Testimonials)

	return layout(SiteName, static(b.String()))
}

// ServicesPage renders the services listing.
func ServicesPage(data ServicesPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<h1>Services</h1>`)
	if len(data.Services) == 0 {
		b.WriteString(`<p>Our service catalogue is being updated. Check back soon.</p>`)
	}
	for _, svc := range data.Services {
		writeServiceCard(&b, svc)
	}

	return layout("Services • "+SiteName, static(b.String()))
}

// ServiceDetailPage renders one service offering.
func ServiceDetailPage(data ServiceDetailData) templ.Component {
	svc := data.Service
	var b strings.Builder

	b.WriteString(`<article><h1>` + esc(svc.Title) + `</h1>`)
	if svc.ImageURL != "" {
		b.WriteString(`<img src="` + esc(svc.ImageURL) + `" alt="` + esc(svc.Title) + `" width="640">`)
	}
	b.WriteString(`<p>` + esc(svc.Description) + `</p>`)
	if len(svc.Details) > 0 {
		b.WriteString(`<ul>`)
		for _, detail := range svc.Details {
			b.WriteString(`<li>` + esc(detail) + `</li>`)
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`<p><a href="/get-started">Start a project with us</a></p></article>`)

	return layout(svc.Title+" • "+SiteName, static(b.String()))
}

// BlogPage renders the article listing.
func BlogPage(data BlogPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<h1>Insights</h1>`)
	if len(data.Posts) == 0 {
		b.WriteString(`<p>No articles published yet.</p>`)
	}
	for _, post := range data.Posts {
		b.WriteString(`<article class="card">`)
		fmt.Fprintf(&b, `<a href="/blog/%s"><h2>%s</h2></a>`, url.PathEscape(post.Slug), esc(post.Title))
		fmt.Fprintf(&b, `<p class="meta">%s &middot; %s</p>`, esc(post.Author), esc(post.DateLabel))
		b.WriteString(`<p>` + esc(post.Excerpt) + `</p>`)
		writeTags(&b, post.Tags)
		b.WriteString(`</article>`)
	}

	return layout("Blog • "+SiteName, static(b.String()))
}

// BlogPostPage renders a full article. The body HTML is admin-authored and
// rendered unescaped.
func BlogPostPage(data BlogPostData) templ.Component {
	post := data.Post
	var b strings.Builder

	b.WriteString(`<article><h1>` + esc(post.Title) + `</h1>`)
	fmt.Fprintf(&b, `<p class="meta">%s &middot; %s</p>`, esc(post.Author), esc(post.DateLabel))
	if post.ImageURL != "" {
		b.WriteString(`<img src="` + esc(post.ImageURL) + `" alt="` + esc(post.Title) + `" width="800">`)
	}
	b.WriteString(post.HTML)
	writeTags(&b, post.Tags)
	b.WriteString(`<p><a href="/blog">&larr; All articles</a></p></article>`)

	return layout(post.Title+" • "+SiteName, static(b.String()))
}

// AboutPage renders the team and testimonials.
func AboutPage(data AboutPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<h1>About us</h1>`)
	b.WriteString(`<p>We are a digital agency building websites, platforms and cloud infrastructure for ambitious teams.</p>`)

	if len(data.Team) > 0 {
		b.WriteString(`<section><h2>The team</h2>`)
		for _, member := range data.Team {
			b.WriteString(`<div class="card">`)
			if member.AvatarURL != "" {
				b.WriteString(`<img src="` + esc(member.AvatarURL) + `" alt="` + esc(member.Name) + `" width="96" height="96">`)
			}
			fmt.Fprintf(&b, `<h3>%s</h3><p class="meta">%s</p><p>%s</p>`, esc(member.Name), esc(member.Role), esc(member.Bio))
			if member.LinkedIn != "" {
				b.WriteString(`<a href="` + esc(member.LinkedIn) + `">LinkedIn</a> `)
			}
			if member.Twitter != "" {
				b.WriteString(`<a href="` + esc(member.Twitter) + `">Twitter</a>`)
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</section>`)
	}

	writeTestimonials(&b, data.Testimonials)

	return layout("About • "+SiteName, static(b.String()))
}

// ContactPage renders the contact form.
func ContactPage() templ.Component {
	var b strings.Builder

	b.WriteString(`<h1>Contact us</h1>
<form id="contact-form">
<label for="name">Name</label><input id="name" name="name" required>
<label for="email">Email</label><input id="email" name="email" type="email" required>
<label for="phoneNumber">Phone (optional)</label><input id="phoneNumber" name="phoneNumber">
<label for="message">Message</label><textarea id="message" name="message" rows="6" required></textarea>
<button type="submit">Send message</button>
<p id="contact-result"></p>
</form>`)
	b.WriteString(formScript("contact-form", "/api/contact", "contact-result", "Your message has been received!"))

	return layout("Contact • "+SiteName, static(b.String()))
}

// GetStartedPage renders the project quote wizard.
func GetStartedPage(data GetStartedPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<h1>Start a project</h1>
<form id="quote-form">
<label for="name">Name</label><input id="name" name="name" required>
<label for="email">Email</label><input id="email" name="email" type="email" required>
<label for="company">Company (optional)</label><input id="company" name="company">
<fieldset><legend>Services you need</legend>`)
	for _, option := range data.ServiceOptions {
		fmt.Fprintf(&b, `<label><input type="checkbox" name="services" value="%s"> %s</label>`, esc(option), esc(option))
	}
	b.WriteString(`</fieldset>
<label for="details">Project details</label><textarea id="details" name="details" rows="6" required></textarea>
<label for="budget">Budget (optional)</label><select id="budget" name="budget"><option value="">Prefer not to say</option>`)
	for _, option := range data.BudgetOptions {
		fmt.Fprintf(&b, `<option value="%s">%s</option>`, esc(option), esc(option))
	}
	b.WriteString(`</select>
<button type="submit">Request a quote</button>
<p id="quote-result"></p>
</form>`)
	b.WriteString(formScript("quote-form", "/api/get-started", "quote-result", "Quote request received!"))

	return layout("Get Started • "+SiteName, static(b.String()))
}

// CareersPage renders the job application form.
func CareersPage(data CareersPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<h1>Join our team</h1>
<p>We hire engineers, designers and project leads who care about craft.</p>
<form id="apply-form">
<label for="name">Name</label><input id="name" name="name" required>
<label for="email">Email</label><input id="email" name="email" type="email" required>
<label for="phone">Phone</label><input id="phone" name="phone" required>
<label for="gender">Gender</label><select id="gender" name="gender"><option value="male">Male</option><option value="female">Female</option><option value="other">Other</option></select>
<label for="position">Position</label><select id="position" name="position">`)
	for _, position := range data.Positions {
		fmt.Fprintf(&b, `<option value="%s">%s</option>`, esc(position), esc(position))
	}
	b.WriteString(`</select>
<label for="resume">Resume URL (optional)</label><input id="resume" name="resume" type="url">
<label for="linkedin">LinkedIn (optional)</label><input id="linkedin" name="linkedin" type="url">
<label for="github">GitHub (optional)</label><input id="github" name="github" type="url">
<label for="portfolio">Portfolio (optional)</label><input id="portfolio" name="portfolio" type="url">
<label for="expectedCTC">Expected compensation</label><input id="expectedCTC" name="expectedCTC" required>
<label for="noticePeriod">Notice period</label><input id="noticePeriod" name="noticePeriod" required>
<label for="skills">Skills (comma-separated)</label><input id="skills" name="skills" required>
<button type="submit">Apply</button>
<p id="apply-result"></p>
</form>`)
	b.WriteString(formScript("apply-form", "/api/job/apply", "apply-result", "Application received."))

	return layout("Careers • "+SiteName, static(b.String()))
}

// SimplePage renders heading-plus-paragraph pages (privacy policy, terms).
func SimplePage(data SimplePageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<h1>` + esc(data.Heading) + `</h1>`)
	for _, paragraph := range data.Paragraphs {
		b.WriteString(`<p>` + esc(paragraph) + `</p>`)
	}

	return layout(data.Heading+" • "+SiteName, static(b.String()))
}

// ErrorPage renders an error view.
func ErrorPage(data ErrorPageData) templ.Component {
	var b strings.Builder

	b.WriteString(`<h1>` + esc(data.StatusLabel) + `</h1>`)
	b.WriteString(`<p>` + esc(data.Message) + `</p>`)
	b.WriteString(`<p><a href="/">Back to the homepage</a></p>`)

	return layout(data.StatusLabel+" • "+SiteName, static(b.String()))
}

func writeServiceCard(b *strings.Builder, svc ServiceView) {
	b.WriteString(`<div class="card">`)
	fmt.Fprintf(b, `<a href="/services/%s"><h3>%s</h3></a>`, url.PathEscape(svc.ID), esc(svc.Title))
	b.WriteString(`<p>` + esc(svc.Description) + `</p>`)
	b.WriteString(`</div>`)
}

func writeTestimonials(b *strings.Builder, testimonials []TestimonialView) {
	if len(testimonials) == 0 {
		return
	}

	b.WriteString(`<section><h2>What clients say</h2>`)
	for _, testimonial := range testimonials {
		b.WriteString(`<blockquote class="card"><p>` + esc(testimonial.Quote) + `</p>`)
		fmt.Fprintf(b, `<cite>%s, %s</cite></blockquote>`, esc(testimonial.Name), esc(testimonial.Title))
	}
	b.WriteString(`</section>`)
}

func writeTags(b *strings.Builder, tags []string) {
	if len(tags) == 0 {
		return
	}

	b.WriteString(`<p>`)
	for _, tag := range tags {
		b.WriteString(`<span class="tag">` + esc(tag) + `</span>`)
	}
	b.WriteString(`</p>`)
}

// formScript wires a form to its JSON API endpoint. Checkbox groups become
// arrays; the skills field is split on commas.
func formScript(formID, endpoint, resultID, successMessage string) string {
	return fmt.Sprintf(`<script>
document.getElementById(%q).addEventListener('submit', async function (event) {
  event.preventDefault();
  const form = event.target;
  const result = document.getElementById(%q);
  const payload = {};
  for (const field of form.elements) {
    if (!field.name) continue;
    if (field.type === 'checkbox') {
      payload[field.name] = payload[field.name] || [];
      if (field.checked) payload[field.name].push(field.value);
    } else if (field.name === 'skills') {
      payload[field.name] = field.value.split(',').map(function (s) { return s.trim(); }).filter(Boolean);
    } else {
      payload[field.name] = field.value;
    }
  }
  try {
    const response = await fetch(%q, {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(payload)
    });
    const body = await response.json();
    if (response.ok) {
      result.className = 'notice';
      result.textContent = %q;
      form.reset();
    } else {
      result.className = 'error';
      result.textContent = body.message || 'Something went wrong.';
    }
  } catch (err) {
    result.className = 'error';
    result.textContent = 'Network error. Please try again.';
  }
});
</script>`, formID, resultID, endpoint, successMessage)
}
