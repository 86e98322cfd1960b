package models

// User represents a registered author
// Password is stored hashed (bcrypt); never return plain in JSON responses
type User struct {
	ID       int64  `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"` // Hashed; omitted from JSON
}

// Identity is the part of a User kept in session state
type Identity struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// Identity projects the user onto the session identity, dropping the hash
func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email}
}

// CredentialsForm is the body of POST /login and POST /register.
// The form field is named "username" but carries an email address.
type CredentialsForm struct {
	Email    string
	Password string
}
