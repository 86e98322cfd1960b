package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blog-service/models"

	jw "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the signed session id
const CookieName = "session_id"

// ErrInvalidCookie is returned when the cookie is missing, tampered with or expired
var ErrInvalidCookie = errors.New("invalid session cookie")

// Manager issues, resolves and destroys browser sessions.
// The cookie holds an HS256 token whose subject is the session id;
// the identity itself lives in the Store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager creates a session manager
func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

// Create starts a session for identity and sets the cookie on w
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, identity models.Identity) error {
	id := uuid.New().String()
	if err := m.store.Save(ctx, id, identity, m.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	token, err := m.sign(id)
	if err != nil {
		m.store.Delete(ctx, id)
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
	return nil
}

// Resolve returns the identity behind the request's session cookie
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (models.Identity, error) {
	id, err := m.sessionID(r)
	if err != nil {
		return models.Identity{}, err
	}
	return m.store.Load(ctx, id)
}

// Destroy removes the session and expires the cookie
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	return m.Revoke(ctx, r)
}

// Revoke drops the request's current session from the store, if it has one,
// without touching the cookie. Used before issuing a fresh session on login.
func (m *Manager) Revoke(ctx context.Context, r *http.Request) error {
	id, err := m.sessionID(r)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, id)
}

func (m *Manager) sign(id string) (string, error) {
	now := m.now()
	claims := jw.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jw.NewNumericDate(now),
		ExpiresAt: jw.NewNumericDate(now.Add(m.ttl)),
	}
	return jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) sessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrInvalidCookie
	}

	claims := &jw.RegisteredClaims{}
	t, err := jw.ParseWithClaims(cookie.Value, claims,
		func(t *jw.Token) (any, error) { return m.secret, nil },
		jw.WithValidMethods([]string{jw.SigningMethodHS256.Alg()}),
		jw.WithTimeFunc(m.now),
	)
	if err != nil || !t.Valid || claims.Subject == "" {
		return "", ErrInvalidCookie
	}
	return claims.Subject, nil
}
