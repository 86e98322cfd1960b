package repository

import (
	"context"
	"testing"

	"blog-service/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(dbtest.Open(t, "../database/migrations"))

	exists, err := users.ExistsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := users.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	exists, err = users.ExistsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUserRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(dbtest.Open(t, "../database/migrations"))

	_, err := users.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)

	_, err = users.Create(ctx, "a@x.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserRepositoryGetMissing(t *testing.T) {
	users := NewUserRepository(dbtest.Open(t, "../database/migrations"))

	_, err := users.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMigrationsAreRecorded(t *testing.T) {
	db := dbtest.Open(t, "../database/migrations")

	var versions []string
	require.NoError(t, db.Select(&versions, "SELECT version FROM schema_migrations ORDER BY version"))
	assert.Equal(t, []string{
		"20240101000000_create_users",
		"20240101000100_create_posts",
	}, versions)
}
