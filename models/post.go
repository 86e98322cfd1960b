package models

// DateLayout renders dates the way posts display them, e.g. "Tue Oct 14 2026"
const DateLayout = "Mon Jan 02 2006"

// Post is a title/body record owned by a user.
// In anonymous mode every post belongs to AnonymousAuthor.
type Post struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Body        string `json:"body" db:"body"`
	DateCreated string `json:"date_created" db:"date_created"` // overwritten on every update
	Updated     bool   `json:"updated" db:"updated"`
	UserID      int64  `json:"user_id" db:"user_id"`
}

// AnonymousAuthor owns every post when the service runs without accounts
const AnonymousAuthor int64 = 0

// PostForm is the body of POST /newPost and POST /update/{id}
type PostForm struct {
	Title string
	Body  string
}
