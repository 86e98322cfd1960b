package handlers

import (
	"context"
	"errors"
	"net/http"

	"blog-service/auth"
	"blog-service/models"
	"blog-service/repository"
	"blog-service/session"

	"go.uber.org/zap"
)

// AccountHandler serves registration, login and logout
type AccountHandler struct {
	auth     *auth.Service
	sessions *session.Manager
}

// NewAccountHandler creates an account handler
func NewAccountHandler(svc *auth.Service, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{auth: svc, sessions: sessions}
}

// credentialsForm reads the login/registration form; "username" carries the email
func credentialsForm(r *http.Request) (models.CredentialsForm, error) {
	if err := r.ParseForm(); err != nil {
		return models.CredentialsForm{}, err
	}
	return models.CredentialsForm{
		Email:    r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}, nil
}

// LoginForm handles GET /login
func (h *AccountHandler) LoginForm(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	render(ctx, w, http.StatusOK, pageLogin, &pageData{Title: "Log in", Accounts: true})
}

// RegisterForm handles GET /register
func (h *AccountHandler) RegisterForm(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	render(ctx, w, http.StatusOK, pageRegister, &pageData{Title: "Register", Accounts: true})
}

// Register handles POST /register - create the account and sign it in
func (h *AccountHandler) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	form, err := credentialsForm(r)
	if err != nil {
		h.formError(ctx, w, r, pageRegister, http.StatusBadRequest, "", "Invalid form")
		return
	}

	identity, err := h.auth.Register(ctx, form.Email, form.Password)
	switch {
	case errors.Is(err, repository.ErrEmailTaken):
		logRequest(ctx, "info", "Email already registered")
		h.formError(ctx, w, r, pageRegister, http.StatusConflict, form.Email, "That email is already registered")
		return
	case errors.Is(err, auth.ErrMissingCredentials):
		h.formError(ctx, w, r, pageRegister, http.StatusBadRequest, form.Email, "Email and password are required")
		return
	case errors.Is(err, auth.ErrPasswordTooLong):
		h.formError(ctx, w, r, pageRegister, http.StatusBadRequest, form.Email, "Password must be at most 72 bytes")
		return
	case err != nil:
		logRequest(ctx, "error", "Registration failed", zap.Error(err))
		writeError(ctx, w, r, http.StatusInternalServerError, "Could not register")
		return
	}

	if err := h.startSession(ctx, w, r, identity); err != nil {
		logRequest(ctx, "error", "Failed to create session", zap.Error(err), zap.Int64("user_id", identity.UserID))
		writeError(ctx, w, r, http.StatusInternalServerError, "Could not sign in")
		return
	}

	logRequest(ctx, "info", "User registered", zap.Int64("user_id", identity.UserID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Login handles POST /login
func (h *AccountHandler) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	form, err := credentialsForm(r)
	if err != nil {
		h.formError(ctx, w, r, pageLogin, http.StatusBadRequest, "", "Invalid form")
		return
	}

	identity, err := h.auth.Authenticate(ctx, form.Email, form.Password)
	switch {
	case errors.Is(err, repository.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		logRequest(ctx, "info", "Login rejected")
		h.formError(ctx, w, r, pageLogin, http.StatusUnauthorized, form.Email, "Invalid email or password")
		return
	case errors.Is(err, auth.ErrMissingCredentials):
		h.formError(ctx, w, r, pageLogin, http.StatusBadRequest, form.Email, "Email and password are required")
		return
	case err != nil:
		logRequest(ctx, "error", "Login failed", zap.Error(err))
		writeError(ctx, w, r, http.StatusInternalServerError, "Could not sign in")
		return
	}

	if err := h.startSession(ctx, w, r, identity); err != nil {
		logRequest(ctx, "error", "Failed to create session", zap.Error(err), zap.Int64("user_id", identity.UserID))
		writeError(ctx, w, r, http.StatusInternalServerError, "Could not sign in")
		return
	}

	logRequest(ctx, "info", "Login successful", zap.Int64("user_id", identity.UserID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *AccountHandler) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(ctx, w, r); err != nil {
		logRequest(ctx, "error", "Failed to destroy session", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// startSession replaces whatever session the browser held with a new one
func (h *AccountHandler) startSession(ctx context.Context, w http.ResponseWriter, r *http.Request, identity models.Identity) error {
	if err := h.sessions.Revoke(ctx, r); err != nil {
		logRequest(ctx, "error", "Failed to revoke previous session", zap.Error(err))
	}
	return h.sessions.Create(ctx, w, identity)
}

// formError re-renders a credentials form with an inline message
func (h *AccountHandler) formError(ctx context.Context, w http.ResponseWriter, r *http.Request, page string, status int, email, message string) {
	if wantsJSON(r) {
		writeError(ctx, w, r, status, message)
		return
	}
	title := "Log in"
	if page == pageRegister {
		title = "Register"
	}
	render(ctx, w, status, page, &pageData{
		Title:     title,
		Accounts:  true,
		Email:     email,
		FormError: message,
	})
}
