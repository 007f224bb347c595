package store

import (
	"context"
	"errors"
	"fmt"

	"auth-service/internal/models"
	"auth-service/internal/util"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means no account matched the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials is the single error for every failed login,
	// so callers cannot tell an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ConflictError reports a uniqueness violation during account creation.
type ConflictError struct {
	Field string // "username" or "email"
}

func (e *ConflictError) Error() string {
	return e.Field + " already registered"
}

// UserStore owns account persistence and uniqueness. Construct one at
// startup and inject it into handlers; it holds no state beyond the
// gorm connection pool.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore wraps the given database handle.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername fetches an account by exact username.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find by username: %w", err)
	}
	return &user, nil
}

// FindByEmail fetches an account by email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find by email: %w", err)
	}
	return &user, nil
}

// FindByID fetches an account by its surrogate key.
func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find by id: %w", err)
	}
	return &user, nil
}

// Create registers a new account. The pre-checks exist only to name the
// conflicting field; the unique indexes are what make the operation safe
// against concurrent creators — a duplicate insert surfaces as
// gorm.ErrDuplicatedKey and is reported as a ConflictError, never as a
// second success.
func (s *UserStore) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	if _, err := s.FindByUsername(ctx, username); err == nil {
		return nil, &ConflictError{Field: "username"}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := s.FindByEmail(ctx, email); err == nil {
		return nil, &ConflictError{Field: "email"}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.conflictField(ctx, username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// conflictField decides which key lost a create race.
func (s *UserStore) conflictField(ctx context.Context, username string) *ConflictError {
	if _, err := s.FindByUsername(ctx, username); err == nil {
		return &ConflictError{Field: "username"}
	}
	return &ConflictError{Field: "email"}
}

// Authenticate verifies a username/password pair. Unknown username,
// inactive account and wrong password all collapse into
// ErrInvalidCredentials.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
