package repository

import (
	"context"
	"sync"
	"time"

	"blog-service/models"
)

// PostStore keeps posts in memory for the lifetime of the process.
// Posts are held newest first and identified by a counter that is never reused.
type PostStore struct {
	mu     sync.RWMutex
	posts  []models.Post
	nextID int64
	now    func() time.Time
}

// NewPostStore creates an empty in-memory post store
func NewPostStore() *PostStore {
	return &PostStore{
		nextID: 1,
		now:    time.Now,
	}
}

// List returns the posts owned by userID, most recently created first
func (s *PostStore) List(ctx context.Context, userID int64) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

// Get returns a copy of the post, or ErrPostNotFound
func (s *PostStore) Get(ctx context.Context, postID, userID int64) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(postID, userID)
	if i < 0 {
		return models.Post{}, ErrPostNotFound
	}
	return s.posts[i], nil
}

// Create prepends a new post dated today
func (s *PostStore) Create(ctx context.Context, userID int64, title, body string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := models.Post{
		ID:          s.nextID,
		Title:       title,
		Body:        body,
		DateCreated: s.now().Format(models.DateLayout),
		Updated:     false,
		UserID:      userID,
	}
	s.nextID++

	s.posts = append([]models.Post{post}, s.posts...)
	return post, nil
}

// Update overwrites title, body and date in place and marks the post as updated
func (s *PostStore) Update(ctx context.Context, postID, userID int64, title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(postID, userID)
	if i < 0 {
		return ErrPostNotFound
	}

	p := &s.posts[i]
	p.Title = title
	p.Body = body
	p.DateCreated = s.now().Format(models.DateLayout)
	p.Updated = true
	return nil
}

// Delete removes the post; remaining ids are unaffected
func (s *PostStore) Delete(ctx context.Context, postID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(postID, userID)
	if i < 0 {
		return ErrPostNotFound
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

// indexOf must be called with mu held
func (s *PostStore) indexOf(postID, userID int64) int {
	for i, p := range s.posts {
		if p.ID == postID && p.UserID == userID {
			return i
		}
	}
	return -1
}
