// Package render turns a feed state into the HTML card grid.
package render

import (
	"html/template"
	"io"
	"time"

	"github.com/yt-feed/internal/models"
)

// FeedTemplate is the name of the feed page template.
const FeedTemplate = "feed.html"

// ConfigHint is shown under every error message.
const ConfigHint = "Please check your API key and ensure the YouTube Data API v3 is enabled."

// Page is the data the feed template renders.
type Page struct {
	State            models.FeedState
	Category         string
	SidebarCollapsed bool
	Now              time.Time
}

// Left and Width position the grid next to the sidebar.
func (p Page) Left() string {
	if p.SidebarCollapsed {
		return "5%"
	}
	return "15%"
}

func (p Page) Width() string {
	if p.SidebarCollapsed {
		return "95%"
	}
	return "85%"
}

func (p Page) Hint() string { return ConfigHint }

var templates = template.Must(template.New(FeedTemplate).Funcs(template.FuncMap{
	"views": FormatViews,
	"age":   FormatAge,
}).Parse(feedHTML))

// Templates returns the parsed page templates, ready for gin's SetHTMLTemplate.
func Templates() *template.Template {
	return templates
}

// Feed writes the page to w. Exactly one of the loading, error, grid or empty
// branches is rendered.
func Feed(w io.Writer, page Page) error {
	if page.Now.IsZero() {
		page.Now = time.Now()
	}
	return templates.ExecuteTemplate(w, FeedTemplate, page)
}

const feedHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if .State.IsLoading}}
<meta http-equiv="refresh" content="1">
{{- end}}
<title>Trending</title>
<style>
.feed{position:fixed;top:0;right:0;bottom:0;overflow-y:auto;background:#f9fafb}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(280px,1fr));gap:1.5rem;padding:1.5rem}
.card{display:flex;flex-direction:column;background:#fff;border-radius:.5rem;overflow:hidden;text-decoration:none;box-shadow:0 1px 2px rgba(0,0,0,.05)}
.card img{width:100%;height:12rem;object-fit:cover}
.card h2{font-size:.875rem;color:#000;display:-webkit-box;-webkit-line-clamp:2;-webkit-box-orient:vertical;overflow:hidden;margin:0 0 .5rem}
.card h3,.card p{font-size:.875rem;color:#808484;margin:0 0 .25rem}
.status{display:flex;justify-content:center;align-items:center;height:24rem;color:#4b5563}
.error{padding:1.5rem;margin:1.5rem;background:#fef2f2;border:1px solid #fecaca;border-radius:.5rem;color:#991b1b}
</style>
</head>
<body>
<div class="feed" data-category="{{.Category}}" style="left: {{.Left}}; width: {{.Width}};">
<div style="padding-top:5rem">
{{- if .State.IsLoading}}
<div class="status loading">Loading videos...</div>
{{- else if .State.IsFailed}}
<div class="error">
<p><strong>Error loading videos:</strong> {{.State.Message}}</p>
<p class="hint">{{.Hint}}</p>
</div>
{{- else if .State.Items}}
<div class="grid">
{{- range .State.Items}}
<a class="card" href="{{.Link}}">
<img src="{{.ThumbnailURL}}" alt="Thumbnail Not Found">
<div style="padding:1rem">
<h2>{{.Title}}</h2>
<h3>{{.ChannelTitle}}</h3>
<p>{{views .ViewCount}} views &middot; {{age .PublishedAt $.Now}}</p>
</div>
</a>
{{- end}}
</div>
{{- else}}
<div class="status empty">No videos found</div>
{{- end}}
</div>
</div>
</body>
</html>
`
