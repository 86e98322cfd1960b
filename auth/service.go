package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog-service/metrics"
	"blog-service/models"
	"blog-service/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingCredentials is returned when email or password is blank
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidPassword is returned when the password does not match the stored hash
	ErrInvalidPassword = errors.New("invalid password")
	// ErrPasswordTooLong is returned for passwords over bcrypt's 72 byte limit
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// UserStore is the persistence the credential service needs
type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, email, passwordHash string) (models.User, error)
}

// Service registers and authenticates accounts
type Service struct {
	users UserStore
	cost  int
}

// NewService creates a credential service hashing with the given bcrypt cost
func NewService(users UserStore, cost int) *Service {
	return &Service{users: users, cost: cost}
}

// Register creates an account and returns its session identity.
// An existing email yields repository.ErrEmailTaken, whether caught by the
// lookup or by the UNIQUE constraint on insert.
func (s *Service) Register(ctx context.Context, email, password string) (models.Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.AuthAttempt("register", metrics.OutcomeRejected)
		return models.Identity{}, ErrMissingCredentials
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		metrics.AuthAttempt("register", metrics.OutcomeError)
		return models.Identity{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		metrics.AuthAttempt("register", metrics.OutcomeRejected)
		return models.Identity{}, repository.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		metrics.AuthAttempt("register", metrics.OutcomeRejected)
		return models.Identity{}, ErrPasswordTooLong
	}
	if err != nil {
		metrics.AuthAttempt("register", metrics.OutcomeError)
		return models.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if errors.Is(err, repository.ErrEmailTaken) {
		metrics.AuthAttempt("register", metrics.OutcomeRejected)
		return models.Identity{}, err
	}
	if err != nil {
		metrics.AuthAttempt("register", metrics.OutcomeError)
		return models.Identity{}, fmt.Errorf("create user: %w", err)
	}

	metrics.AuthAttempt("register", metrics.OutcomeOK)
	return user.Identity(), nil
}

// Authenticate checks a login attempt. Unknown emails yield
// repository.ErrUserNotFound, wrong passwords ErrInvalidPassword.
func (s *Service) Authenticate(ctx context.Context, email, password string) (models.Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.AuthAttempt("login", metrics.OutcomeRejected)
		return models.Identity{}, ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		metrics.AuthAttempt("login", metrics.OutcomeRejected)
		return models.Identity{}, err
	}
	if err != nil {
		metrics.AuthAttempt("login", metrics.OutcomeError)
		return models.Identity{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		metrics.AuthAttempt("login", metrics.OutcomeRejected)
		return models.Identity{}, ErrInvalidPassword
	}

	metrics.AuthAttempt("login", metrics.OutcomeOK)
	return user.Identity(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
