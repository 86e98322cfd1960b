package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"blog-service/auth"
	"blog-service/repository"

	"github.com/umakantv/go-utils/errs"
)

// statusFor maps service errors onto the HTTP status shown to the client
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, repository.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrMissingCredentials), errors.Is(err, auth.ErrPasswordTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// writeError answers with the error page, or an errs body for JSON clients
func writeError(ctx context.Context, w http.ResponseWriter, r *http.Request, status int, message string) {
	if !wantsJSON(r) {
		render(ctx, w, status, pageError, &pageData{
			Title:     http.StatusText(status),
			Status:    status,
			FormError: message,
		})
		return
	}

	var body interface{}
	switch status {
	case http.StatusNotFound:
		body = errs.NewNotFoundError(message)
	case http.StatusUnauthorized:
		body = errs.NewAuthenticationError(message)
	case http.StatusBadRequest, http.StatusConflict:
		body = errs.NewValidationError(message)
	default:
		body = errs.NewInternalServerError(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
