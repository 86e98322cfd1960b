package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWith(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestCreateAndResolve(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "test-secret", time.Hour, false)
	identity := models.Identity{UserID: 7, Email: "a@x.com"}

	rec := httptest.NewRecorder()
	require.NoError(t, m.Create(ctx, rec, identity))

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)

	got, err := m.Resolve(ctx, requestWith(cookie))
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestResolveWithoutCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), "test-secret", time.Hour, false)

	_, err := m.Resolve(context.Background(), requestWith())
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	issuer := NewManager(store, "other-secret", time.Hour, false)
	m := NewManager(store, "test-secret", time.Hour, false)

	rec := httptest.NewRecorder()
	require.NoError(t, issuer.Create(ctx, rec, models.Identity{UserID: 1, Email: "a@x.com"}))

	_, err := m.Resolve(ctx, requestWith(sessionCookie(t, rec)))
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestResolveRejectsGarbageCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), "test-secret", time.Hour, false)

	_, err := m.Resolve(context.Background(), requestWith(&http.Cookie{Name: CookieName, Value: "not-a-token"}))
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestDestroy(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "test-secret", time.Hour, false)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Create(ctx, rec, models.Identity{UserID: 1, Email: "a@x.com"}))
	cookie := sessionCookie(t, rec)

	out := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, out, requestWith(cookie)))
	assert.Equal(t, -1, sessionCookie(t, out).MaxAge)

	_, err := m.Resolve(ctx, requestWith(cookie))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "abc", models.Identity{UserID: 1}, time.Minute))
	_, err := store.Load(ctx, "abc")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestIdentityFromMap(t *testing.T) {
	identity, err := identityFromMap(map[string]interface{}{"user_id": float64(3), "email": "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: 3, Email: "a@x.com"}, identity)

	_, err = identityFromMap(map[string]interface{}{"email": "a@x.com"})
	assert.Error(t, err)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), models.Identity{UserID: 2, Email: "b@x.com"})
	identity, ok := IdentityFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(2), identity.UserID)
}

func TestRevokeKeepsCookieButDropsSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "test-secret", time.Hour, false)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Create(ctx, rec, models.Identity{UserID: 1, Email: "a@x.com"}))
	cookie := sessionCookie(t, rec)

	require.NoError(t, m.Revoke(ctx, requestWith(cookie)))
	_, err := m.Resolve(ctx, requestWith(cookie))
	assert.ErrorIs(t, err, ErrNoSession)

	assert.NoError(t, m.Revoke(ctx, requestWith()), "no cookie is not an error")
}
