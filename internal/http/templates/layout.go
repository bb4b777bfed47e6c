package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const headTop = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>`

const headBottom = `</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;color:#1a1a2e;background:#fff}
header{display:flex;justify-content:space-between;align-items:center;padding:1rem 2rem;border-bottom:1px solid #eee}
header nav a{margin-left:1.25rem;text-decoration:none;color:#1a1a2e}
main{max-width:960px;margin:0 auto;padding:2rem}
footer{border-top:1px solid #eee;padding:1.5rem 2rem;color:#666;font-size:.9rem}
.card{border:1px solid #eee;border-radius:8px;padding:1.25rem;margin:1rem 0}
.tag{display:inline-block;background:#f0f0f5;border-radius:4px;padding:.1rem .5rem;margin-right:.4rem;font-size:.8rem}
form label{display:block;margin:.75rem 0 .25rem}
form input,form textarea,form select{width:100%;padding:.5rem;border:1px solid #ccc;border-radius:4px;box-sizing:border-box}
form button{margin-top:1rem;padding:.6rem 1.4rem;border:0;border-radius:4px;background:#1a1a2e;color:#fff;cursor:pointer}
.error{color:#b00020}
.notice{color:#0a7d33}
</style>
</head>
<body>
<header>
<a href="/"><strong>` + SiteName + `</strong></a>
<nav>
<a href="/services">Services</a>
<a href="/blog">Blog</a>
<a href="/about">About</a>
<a href="/careers">Careers</a>
<a href="/contact">Contact</a>
<a href="/get-started">Get Started</a>
</nav>
</header>
<main>
`

const footerHTML = `</main>
<footer>
<p>&copy; ` + SiteName + `. Digital products, delivered.</p>
<p><a href="/privacy">Privacy</a> &middot; <a href="/terms">Terms</a></p>
</footer>
</body>
</html>
`

// layout wraps page content in the shared chrome.
func layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if _, err := io.WriteString(w, headTop+esc(title)+headBottom); err != nil {
			return err
		}

		if err := content.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, footerHTML)
		return err
	})
}
