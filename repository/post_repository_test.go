package repository

import (
	"context"
	"testing"
	"time"

	"blog-service/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostRepository(t *testing.T) (*PostRepository, *UserRepository) {
	db := dbtest.Open(t, "../database/migrations")
	return NewPostRepository(db), NewUserRepository(db)
}

func TestPostRepositoryCreateAndList(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	posts, users := newPostRepository(t)
	posts.now = fixedClock(&now)

	owner, err := users.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)

	first, err := posts.Create(ctx, owner.ID, "first", "one")
	require.NoError(t, err)
	second, err := posts.Create(ctx, owner.ID, "second", "two")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	list, err := posts.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "second", list[0].Title)
	assert.False(t, list[0].Updated)
	assert.Equal(t, "Wed Oct 14 2026", list[0].DateCreated)
	assert.Equal(t, owner.ID, list[0].UserID)
}

func TestPostRepositoryListEmpty(t *testing.T) {
	posts, _ := newPostRepository(t)

	list, err := posts.List(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPostRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	posts, users := newPostRepository(t)
	posts.now = fixedClock(&now)

	owner, _ := users.Create(ctx, "a@x.com", "hash")
	post, err := posts.Create(ctx, owner.ID, "T", "B")
	require.NoError(t, err)

	now = now.AddDate(0, 0, 1)
	require.NoError(t, posts.Update(ctx, post.ID, owner.ID, "T2", "B2"))

	got, err := posts.Get(ctx, post.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, "T2", got.Title)
	assert.True(t, got.Updated)
	assert.Equal(t, "Thu Oct 15 2026", got.DateCreated)
}

func TestPostRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	posts, users := newPostRepository(t)

	owner, _ := users.Create(ctx, "a@x.com", "hash")
	post, _ := posts.Create(ctx, owner.ID, "T", "B")

	require.NoError(t, posts.Delete(ctx, post.ID, owner.ID))

	_, err := posts.Get(ctx, post.ID, owner.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.ErrorIs(t, posts.Delete(ctx, post.ID, owner.ID), ErrPostNotFound)

	list, err := posts.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostRepositoryOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	posts, users := newPostRepository(t)

	alice, _ := users.Create(ctx, "alice@x.com", "hash")
	bob, _ := users.Create(ctx, "bob@x.com", "hash")
	post, err := posts.Create(ctx, alice.ID, "mine", "private")
	require.NoError(t, err)

	list, err := posts.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = posts.Get(ctx, post.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.ErrorIs(t, posts.Update(ctx, post.ID, bob.ID, "x", "y"), ErrPostNotFound)
	assert.ErrorIs(t, posts.Delete(ctx, post.ID, bob.ID), ErrPostNotFound)

	got, err := posts.Get(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
	assert.False(t, got.Updated)
}
