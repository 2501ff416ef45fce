package main

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"interviewsim/internal/contexthelpers"
	"interviewsim/internal/errors"
)

type BaseTemplateData struct {
	Authenticated bool
	UserName      string
	CurrentPath   string
	CSRFToken     string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	ctx := r.Context()
	return BaseTemplateData{
		Authenticated: contexthelpers.IsAuthenticated(ctx),
		UserName:      contexthelpers.UserDisplayName(ctx),
		CurrentPath:   contexthelpers.CurrentPath(ctx),
		CSRFToken:     contexthelpers.CSRFToken(ctx),
	}
}

var templateFuncs = template.FuncMap{
	// csrf renders the hidden token input from the request-scoped token in
	// the template data, so parsed templates can be shared across requests.
	"csrf": func(token string) template.HTML {
		input := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>",
			template.HTMLEscapeString(token))
		return template.HTML(input) //nolint:gosec // the token is escaped above
	},
	"add": func(a, b int) int {
		return a + b
	},
	"duration": func(d time.Duration) string {
		return d.Round(time.Second).String()
	},
}

// newTemplateCache parses every page once at startup. Each directory inside
// templates/pages is one page and has to include a template named "page".
func newTemplateCache(templatePath string) (map[string]*template.Template, error) {
	pages, err := os.ReadDir(filepath.Join(templatePath, "pages"))
	if err != nil {
		return nil, errors.Wrap(err, "read pages directory")
	}

	cache := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if !page.IsDir() {
			continue
		}
		name := page.Name()
		files := []string{filepath.Join(templatePath, "base.gohtml")}
		pageTemplateFiles, err := filepath.Glob(filepath.Join(templatePath, "pages", name, "*.gohtml"))
		if err != nil {
			return nil, errors.Wrap(err, "glob page template files")
		}
		files = append(files, pageTemplateFiles...)

		t, err := template.New(name).Funcs(templateFuncs).ParseFiles(files...)
		if err != nil {
			return nil, errors.Wrap(err, "parse page template")
		}
		cache[name] = t
	}
	return cache, nil
}

// render writes the named page wrapped in the base template. templateName
// selects which defined template to execute, so htmx requests can render just
// a page fragment.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page, templateName string, data any) {
	t, ok := app.templates[page]
	if !ok {
		app.serverError(w, r, errors.New("unknown page template: "+page))
		return
	}

	buf := new(bytes.Buffer)
	if err := t.ExecuteTemplate(buf, templateName, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template"))
		return
	}

	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderPage writes a full page.
func (app *application) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	app.render(w, r, status, page, "base", data)
}
