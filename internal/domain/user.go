package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered user. FavoriteArtists is a comma-separated
// list, mirroring the profile form.
// swagger:model User
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Salt            string    `json:"-"`
	FullName        string    `json:"full_name"`
	City            string    `json:"city"`
	FavoriteArtists string    `json:"favorite_artists"`
	FavoriteGenre   string    `json:"favorite_genre"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserStats are the profile counters: saved favorites, journal entries, and
// distinct badge labels earned across those entries.
// swagger:model UserStats
type UserStats struct {
	Favorites int `json:"favorites"`
	Journals  int `json:"journals"`
	Badges    int `json:"badges"`
}

// ProfileUpdate holds the editable profile fields. Nil fields are left
// untouched.
type ProfileUpdate struct {
	FullName        *string
	City            *string
	FavoriteArtists *string
	FavoriteGenre   *string
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
	GetStats(ctx context.Context, userID string) (*UserStats, error)
}

// SignUpParams are the inputs for account creation.
type SignUpParams struct {
	Email           string
	Password        string
	FullName        string
	City            string
	FavoriteArtists string
	FavoriteGenre   string
}

// AuthService defines signup and login.
type AuthService interface {
	SignUp(ctx context.Context, params SignUpParams) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
}

// UserService defines profile reads and updates.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*User, *UserStats, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*User, error)
}
