package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog-service/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var postColumns = []string{"id", "title", "body", "date_created", "updated", "user_id"}

// PostRepository stores posts in the posts table.
// Every statement is scoped by the owning user id.
type PostRepository struct {
	db  *sqlx.DB
	sb  sq.StatementBuilderType
	now func() time.Time
}

// NewPostRepository creates a post repository over an open connection
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{
		db:  db,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
		now: time.Now,
	}
}

// List returns every post owned by userID, newest first
func (r *PostRepository) List(ctx context.Context, userID int64) ([]models.Post, error) {
	query, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get returns the post when it exists and is owned by userID
func (r *PostRepository) Get(ctx context.Context, postID, userID int64) (models.Post, error) {
	query, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(sq.Eq{"id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("build get query: %w", err)
	}

	var post models.Post
	err = r.db.GetContext(ctx, &post, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("get post %d: %w", postID, err)
	}
	return post, nil
}

// Create inserts a post dated today with updated=false
func (r *PostRepository) Create(ctx context.Context, userID int64, title, body string) (models.Post, error) {
	post := models.Post{
		Title:       title,
		Body:        body,
		DateCreated: r.now().Format(models.DateLayout),
		Updated:     false,
		UserID:      userID,
	}

	query, args, err := r.sb.Insert("posts").
		Columns("title", "body", "date_created", "updated", "user_id").
		Values(post.Title, post.Body, post.DateCreated, post.Updated, post.UserID).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("build insert: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	post.ID, err = result.LastInsertId()
	if err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

// Update rewrites title, body and date of an owned post and marks it updated
func (r *PostRepository) Update(ctx context.Context, postID, userID int64, title, body string) error {
	query, args, err := r.sb.Update("posts").
		Set("title", title).
		Set("body", body).
		Set("date_created", r.now().Format(models.DateLayout)).
		Set("updated", true).
		Where(sq.Eq{"id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update post %d: %w", postID, err)
	}
	return requireRow(result)
}

// Delete removes an owned post
func (r *PostRepository) Delete(ctx context.Context, postID, userID int64) error {
	query, args, err := r.sb.Delete("posts").
		Where(sq.Eq{"id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}
