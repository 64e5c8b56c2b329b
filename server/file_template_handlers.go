package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/portfolio-lab/theme"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

var (
	pageTemplates map[string]*template.Template
	parseOnce     sync.Once
	parseErr      error
)

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("January 2, 2006") },
	"price": func(d decimal.Decimal) string {
		return "$" + d.StringFixed(2)
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a page together with the shared layout.
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

// parsePageTemplates parses every page once per process.
func parsePageTemplates() error {
	parseOnce.Do(func() {
		names, err := fs.Glob(TemplateFilesFS(), "*.html")
		if err != nil {
			parseErr = err
			return
		}
		pageTemplates = make(map[string]*template.Template, len(names))
		for _, name := range names {
			if name == layoutTemplate {
				continue
			}
			tmpl, err := ParseTemplate(name)
			if err != nil {
				parseErr = fmt.Errorf("parsing %s: %w", name, err)
				return
			}
			pageTemplates[name] = tmpl
		}
	})
	return parseErr
}

// PageData is the model every page renders with. Data carries the page's
// own content.
type PageData struct {
	AppName       string
	Title         string
	Path          string
	Theme         theme.Mode
	ThemeCSS      template.CSS
	Authenticated bool
	Admin         bool
	Practice      bool
	Role          string
	Data          any
}

func (s *Server) pageData(r *http.Request, title string, data any) PageData {
	pd := PageData{
		AppName: s.config.GetAppName(),
		Title:   title,
		Path:    r.URL.Path,
		Theme:   theme.Light,
		Data:    data,
	}
	tokens := theme.TokensFor(theme.Light)
	if c, ok := clientFromContext(r.Context()); ok {
		pd.Theme = c.theme.Mode()
		tokens = c.theme.Tokens()
		pd.Authenticated = c.auth.IsAuthenticated()
		pd.Admin = c.auth.IsAdmin()
		pd.Practice = c.auth.IsPracticeUser()
		pd.Role = c.auth.Role().String()
	}
	pd.ThemeCSS = template.CSS(tokens.CSS())
	return pd
}

// renderPage executes a page into a buffer first so a template error can
// still produce a clean 500.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	tmpl, ok := pageTemplates[name]
	if !ok {
		zerolog.Ctx(r.Context()).Error().Str("template", name).Msg("[renderPage] unknown template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s.pageData(r, title, data)); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("[renderPage] failed to render")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func pageTitle(parts ...string) string {
	return strings.Join(parts, " | ")
}
