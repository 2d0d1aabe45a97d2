package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type mockRepo struct {
	insertFn         func(ctx context.Context, user *User) error
	findByUsernameFn func(ctx context.Context, username string) (*User, error)
}

func (m *mockRepo) Insert(ctx context.Context, user *User) error {
	return m.insertFn(ctx, user)
}
func (m *mockRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	return m.findByUsernameFn(ctx, username)
}

type mockSigner struct {
	signFn func(userID, username, tier string) (string, error)
}

func (m *mockSigner) Sign(userID, username, tier string) (string, error) {
	if m.signFn == nil {
		return "signed-token", nil
	}
	return m.signFn(userID, username, tier)
}

func TestRegister_HappyPath(t *testing.T) {
	var inserted *User
	repo := &mockRepo{
		insertFn: func(_ context.Context, user *User) error {
			inserted = user
			return nil
		},
	}

	svc := NewService(repo, &mockSigner{}, "free")

	user, err := svc.Register(context.Background(), "alice", "sup3rsecret")
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "alice" {
		t.Errorf("got username %q, want %q", user.Username, "alice")
	}
	if user.Tier != "free" {
		t.Errorf("got tier %q, want %q", user.Tier, "free")
	}
	if user.ID == "" {
		t.Error("expected a generated user ID")
	}
	if inserted == nil {
		t.Fatal("expected the user to be persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(inserted.PasswordHash), []byte("sup3rsecret")); err != nil {
		t.Errorf("stored hash does not verify the password: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockSigner{}, "free")

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"username too short", "ab", "sup3rsecret", ErrInvalidUsername},
		{"username too long", strings.Repeat("a", 33), "sup3rsecret", ErrInvalidUsername},
		{"password too short", "alice", "short", ErrInvalidPassword},
		{"password too long", "alice", strings.Repeat("x", 73), ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tt.username, tt.password); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := &mockRepo{
		insertFn: func(_ context.Context, _ *User) error { return ErrUserExists },
	}

	svc := NewService(repo, &mockSigner{}, "free")

	if _, err := svc.Register(context.Background(), "alice", "sup3rsecret"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got: %v", err)
	}
}

func TestLogin_HappyPath(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sup3rsecret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	stored := &User{ID: "id-1", Username: "alice", PasswordHash: string(hash), Tier: "free"}
	repo := &mockRepo{
		findByUsernameFn: func(_ context.Context, username string) (*User, error) {
			if username == "alice" {
				return stored, nil
			}
			return nil, ErrUserNotFound
		},
	}
	signer := &mockSigner{
		signFn: func(userID, username, tier string) (string, error) {
			if userID != "id-1" || username != "alice" || tier != "free" {
				t.Errorf("unexpected claims: %s %s %s", userID, username, tier)
			}
			return "signed-token", nil
		},
	}

	svc := NewService(repo, signer, "free")

	token, user, err := svc.Login(context.Background(), "alice", "sup3rsecret")
	if err != nil {
		t.Fatal(err)
	}
	if token != "signed-token" {
		t.Errorf("got token %q, want %q", token, "signed-token")
	}
	if user.ID != "id-1" {
		t.Errorf("got user ID %q, want %q", user.ID, "id-1")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sup3rsecret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &mockRepo{
		findByUsernameFn: func(_ context.Context, _ string) (*User, error) {
			return &User{ID: "id-1", Username: "alice", PasswordHash: string(hash)}, nil
		},
	}

	svc := NewService(repo, &mockSigner{}, "free")

	if _, _, err := svc.Login(context.Background(), "alice", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLogin_UnknownUserIsIndistinguishable(t *testing.T) {
	repo := &mockRepo{
		findByUsernameFn: func(_ context.Context, _ string) (*User, error) {
			return nil, ErrUserNotFound
		},
	}

	svc := NewService(repo, &mockSigner{}, "free")

	if _, _, err := svc.Login(context.Background(), "nobody", "whatever123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestNewService_DefaultTierFallback(t *testing.T) {
	repo := &mockRepo{
		insertFn: func(_ context.Context, _ *User) error { return nil },
	}

	svc := NewService(repo, &mockSigner{}, "")

	user, err := svc.Register(context.Background(), "alice", "sup3rsecret")
	if err != nil {
		t.Fatal(err)
	}
	if user.Tier != "free" {
		t.Errorf("got tier %q, want fallback %q", user.Tier, "free")
	}
}
