package handlers

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"blog-service/models"
	"blog-service/session"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageList     = "list.html"
	pageAdd      = "add.html"
	pageEdit     = "edit.html"
	pageLogin    = "login.html"
	pageRegister = "register.html"
	pageError    = "error.html"
)

// pages holds one template set per page, each parsed together with the base layout
var pages = mustParsePages(pageList, pageAdd, pageEdit, pageLogin, pageRegister, pageError)

// pageData is what every page template receives
type pageData struct {
	Title     string
	Status    int
	FormError string
	Email     string
	Accounts  bool
	Identity  *models.Identity
	Post      *models.Post
	Posts     []models.Post
}

func mustParsePages(names ...string) map[string]*template.Template {
	m := make(map[string]*template.Template, len(names))
	for _, name := range names {
		m[name] = template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+name))
	}
	return m
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response
func render(ctx context.Context, w http.ResponseWriter, status int, page string, data *pageData) {
	if identity, ok := session.IdentityFrom(ctx); ok && data.Identity == nil {
		data.Identity = &identity
	}

	buf := new(bytes.Buffer)
	if err := pages[page].ExecuteTemplate(buf, "base", data); err != nil {
		logRequest(ctx, "error", "Failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
