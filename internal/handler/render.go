// Package handler contains the HTTP handlers for the student-records pages.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming form into a typed service input
// 2. Call the service layer
// 3. Either render a page (with a status message) or set a one-shot status
//    and redirect
//
// Handlers hold no business rules; those live in internal/service.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/sakif/student-records/internal/auth"
	"github.com/sakif/student-records/internal/flash"
	"github.com/sakif/student-records/internal/model"
)

// Views rendered by the handlers. Each maps to templates/<view>.html.
const (
	ViewSignup = "signup"
	ViewLogin  = "login"
	ViewList   = "list"
	ViewNew    = "new"
	ViewEdit   = "edit"
)

var viewTitles = map[string]string{
	ViewSignup: "Sign up",
	ViewLogin:  "Log in",
	ViewList:   "Students",
	ViewNew:    "Add student",
	ViewEdit:   "Edit student",
}

// Page is the data every template receives.
//
// Status is the explicit status payload of this response. When a handler
// leaves it empty, Render fills it from the one-shot status cookie set by
// the previous request.
type Page struct {
	Title    string
	Status   flash.Status
	User     *auth.Identity
	Students []model.Student
	Student  *model.Student
}

// Renderer holds one parsed template set per view. Templates are parsed
// once at startup and reused for every request.
type Renderer struct {
	views  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses base.html together with each view file from fsys.
//
// TEMPLATE COMPOSITION:
// base.html defines "base" with a {{template "content" .}} placeholder; each
// view defines "content". Every view gets its own set so the "content"
// definitions don't overwrite each other.
func NewRenderer(fsys fs.FS, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		views:  make(map[string]*template.Template, len(viewTitles)),
		logger: logger,
	}
	for view := range viewTitles {
		tmpl, err := template.ParseFS(fsys, "templates/base.html", "templates/"+view+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", view, err)
		}
		r.views[view] = tmpl
	}
	return r, nil
}

// Render writes view with the given HTTP status code.
//
// The page is executed into a buffer first so a template error can still
// become a clean 500 instead of a half-written page.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, code int, view string, page Page) {
	tmpl, ok := rd.views[view]
	if !ok {
		rd.logger.Error("unknown view", slog.String("view", view))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if page.Title == "" {
		page.Title = viewTitles[view]
	}
	if page.Status.IsZero() {
		page.Status, _ = flash.Pop(w, r)
	}
	if page.User == nil {
		page.User, _ = auth.IdentityFromContext(r.Context())
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("view", view),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		rd.logger.Warn("failed to write response", slog.String("error", err.Error()))
	}
}
