package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUsername    = errors.New("username must be 3-32 characters")
	ErrInvalidPassword    = errors.New("password must be 8-72 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Tier         string
	CreatedAt    time.Time
}

type Repository interface {
	// Insert persists a new user. Returns ErrUserExists when the username
	// is already registered.
	Insert(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// TokenSigner issues an authentication token carrying the user's identity
// and subscription tier.
type TokenSigner interface {
	Sign(userID, username, tier string) (string, error)
}

type Service struct {
	repo        Repository
	tokens      TokenSigner
	defaultTier string
	now         func() time.Time
}

func NewService(repo Repository, tokens TokenSigner, defaultTier string) *Service {
	if defaultTier == "" {
		defaultTier = "free"
	}

	return &Service{
		repo:        repo,
		tokens:      tokens,
		defaultTier: defaultTier,
		now:         time.Now,
	}
}

// Register creates a user on the default tier with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 32 {
		return nil, ErrInvalidUsername
	}
	// bcrypt rejects inputs over 72 bytes.
	if len(password) < 8 || len(password) > 72 {
		return nil, ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Tier:         s.defaultTier,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the password and returns a signed token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, *User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.ID, user.Username, user.Tier)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
