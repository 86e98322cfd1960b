package handlers

import (
	"context"
	"embed"
	"io/fs"
	"net/http"

	"blog-service/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/umakantv/go-utils/httpserver"
)

// Route pairs an httpserver route with its handler pipeline
type Route struct {
	httpserver.Route
	Handler httpserver.HandlerFunc
}

func route(name, method, path string, h httpserver.HandlerFunc) Route {
	return Route{
		Route: httpserver.Route{
			Name:     name,
			Method:   method,
			Path:     path,
			AuthType: "none",
		},
		Handler: h,
	}
}

// Health handles GET /health
func Health(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy", "service": "blog-service"}`))
}

var metricsHandler = promhttp.Handler()

//go:embed public
var publicFS embed.FS

var staticHandler = http.StripPrefix("/public/", http.FileServer(http.FS(mustSub(publicFS, "public"))))

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Static handles GET /public/{file} - stylesheet and other page assets
func Static(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	staticHandler.ServeHTTP(w, r)
}

// Metrics handles GET /metrics
func Metrics(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	metricsHandler.ServeHTTP(w, r)
}

// AnonymousRoutes is the route table without accounts: one implicit author,
// nothing gated, and delete reachable by GET.
func AnonymousRoutes(posts *PostHandler) []Route {
	return []Route{
		route("HealthCheck", "GET", "/health", Health),
		route("Metrics", "GET", "/metrics", Metrics),
		route("Static", "GET", "/public/{file}", Static),
		route("ListPosts", "GET", "/", posts.List),
		route("AddPostForm", "GET", "/add", posts.AddForm),
		route("EditPostForm", "GET", "/edit/{id}", posts.EditForm),
		route("CreatePost", "POST", "/newPost", posts.Create),
		route("UpdatePost", "POST", "/update/{id}", posts.Update),
		route("DeletePost", "GET", "/delete/{id}", posts.Delete),
	}
}

// AuthenticatedRoutes is the route table with accounts. Every route first
// resolves the session identity; post routes then require one.
func AuthenticatedRoutes(posts *PostHandler, accounts *AccountHandler, sessions *session.Manager) []Route {
	resolve := ResolveIdentity(sessions)
	toLogin := RequireIdentity("/login")
	toHome := RequireIdentity("/")

	return []Route{
		route("HealthCheck", "GET", "/health", Health),
		route("Metrics", "GET", "/metrics", Metrics),
		route("Static", "GET", "/public/{file}", Static),

		route("ListPosts", "GET", "/", Chain(posts.List, resolve, toLogin)),
		route("LoginForm", "GET", "/login", Chain(accounts.LoginForm, resolve)),
		route("RegisterForm", "GET", "/register", Chain(accounts.RegisterForm, resolve)),
		route("Register", "POST", "/register", Chain(accounts.Register, resolve)),
		route("Login", "POST", "/login", Chain(accounts.Login, resolve)),
		route("Logout", "POST", "/logout", Chain(accounts.Logout, resolve, toHome)),

		route("AddPostForm", "GET", "/add", Chain(posts.AddForm, resolve, toHome)),
		route("EditPostForm", "GET", "/edit/{id}", Chain(posts.EditForm, resolve, toHome)),
		route("CreatePost", "POST", "/newPost", Chain(posts.Create, resolve, toHome)),
		route("UpdatePost", "POST", "/update/{id}", Chain(posts.Update, resolve, toHome)),
		route("DeletePost", "POST", "/delete/{id}", Chain(posts.Delete, resolve, toHome)),
	}
}
