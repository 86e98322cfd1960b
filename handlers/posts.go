package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"blog-service/metrics"
	"blog-service/models"
	"blog-service/repository"
	"blog-service/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PostService is implemented by the in-memory PostStore and the SQL PostRepository.
// Every call is scoped by the owning user id.
type PostService interface {
	List(ctx context.Context, userID int64) ([]models.Post, error)
	Get(ctx context.Context, postID, userID int64) (models.Post, error)
	Create(ctx context.Context, userID int64, title, body string) (models.Post, error)
	Update(ctx context.Context, postID, userID int64, title, body string) error
	Delete(ctx context.Context, postID, userID int64) error
}

// PostHandler serves the post pages and mutations
type PostHandler struct {
	posts    PostService
	accounts bool
}

// NewPostHandler creates a post handler. accounts tells the pages whether
// login/registration exist, which changes the navigation and delete form.
func NewPostHandler(posts PostService, accounts bool) *PostHandler {
	return &PostHandler{posts: posts, accounts: accounts}
}

// owner is the signed-in user, or the implicit author in anonymous mode
func owner(ctx context.Context) int64 {
	if identity, ok := session.IdentityFrom(ctx); ok {
		return identity.UserID
	}
	return models.AnonymousAuthor
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, repository.ErrPostNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func postForm(r *http.Request) (models.PostForm, error) {
	if err := r.ParseForm(); err != nil {
		return models.PostForm{}, err
	}
	return models.PostForm{
		Title: r.PostForm.Get("title"),
		Body:  r.PostForm.Get("body"),
	}, nil
}

// List handles GET / - render the owner's posts, newest first
func (h *PostHandler) List(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(ctx, owner(ctx))
	metrics.PostOperation("list", outcome(err))
	if err != nil {
		logRequest(ctx, "error", "Failed to list posts", zap.Error(err))
		writeError(ctx, w, r, http.StatusInternalServerError, "Could not load posts")
		return
	}

	logRequest(ctx, "debug", "Listing posts", zap.Int("count", len(posts)))
	render(ctx, w, http.StatusOK, pageList, &pageData{
		Title:    "Posts",
		Accounts: h.accounts,
		Posts:    posts,
	})
}

// AddForm handles GET /add
func (h *PostHandler) AddForm(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	render(ctx, w, http.StatusOK, pageAdd, &pageData{Title: "New post", Accounts: h.accounts})
}

// EditForm handles GET /edit/{id} - the form is pre-filled with the stored post
func (h *PostHandler) EditForm(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		writeError(ctx, w, r, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.posts.Get(ctx, id, owner(ctx))
	metrics.PostOperation("get", outcome(err))
	if err != nil {
		if !errors.Is(err, repository.ErrPostNotFound) {
			logRequest(ctx, "error", "Failed to load post", zap.Error(err), zap.Int64("post_id", id))
		}
		writeError(ctx, w, r, statusFor(err), messageFor(err))
		return
	}

	render(ctx, w, http.StatusOK, pageEdit, &pageData{
		Title:    "Edit post",
		Accounts: h.accounts,
		Post:     &post,
	})
}

// Create handles POST /newPost
func (h *PostHandler) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	form, err := postForm(r)
	if err != nil {
		writeError(ctx, w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	post, err := h.posts.Create(ctx, owner(ctx), form.Title, form.Body)
	metrics.PostOperation("create", outcome(err))
	if err != nil {
		logRequest(ctx, "error", "Failed to create post", zap.Error(err))
		writeError(ctx, w, r, http.StatusInternalServerError, "Could not create post")
		return
	}

	logRequest(ctx, "info", "Post created", zap.Int64("post_id", post.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Update handles POST /update/{id}
func (h *PostHandler) Update(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		writeError(ctx, w, r, http.StatusNotFound, "Post not found")
		return
	}
	form, err := postForm(r)
	if err != nil {
		writeError(ctx, w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	err = h.posts.Update(ctx, id, owner(ctx), form.Title, form.Body)
	metrics.PostOperation("update", outcome(err))
	if err != nil {
		if !errors.Is(err, repository.ErrPostNotFound) {
			logRequest(ctx, "error", "Failed to update post", zap.Error(err), zap.Int64("post_id", id))
		}
		writeError(ctx, w, r, statusFor(err), messageFor(err))
		return
	}

	logRequest(ctx, "info", "Post updated", zap.Int64("post_id", id))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete handles /delete/{id}: GET in anonymous mode, POST with accounts
func (h *PostHandler) Delete(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		writeError(ctx, w, r, http.StatusNotFound, "Post not found")
		return
	}

	err := h.posts.Delete(ctx, id, owner(ctx))
	metrics.PostOperation("delete", outcome(err))
	if err != nil {
		if !errors.Is(err, repository.ErrPostNotFound) {
			logRequest(ctx, "error", "Failed to delete post", zap.Error(err), zap.Int64("post_id", id))
		}
		writeError(ctx, w, r, statusFor(err), messageFor(err))
		return
	}

	logRequest(ctx, "info", "Post deleted", zap.Int64("post_id", id))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func messageFor(err error) string {
	if errors.Is(err, repository.ErrPostNotFound) {
		return "Post not found"
	}
	return "Something went wrong"
}
