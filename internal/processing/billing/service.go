package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPackageNotFound = errors.New("subscription package not found")
	ErrPackageExists   = errors.New("subscription package already exists")
	ErrInvalidPackage  = errors.New("invalid subscription package")
)

// Package is a named subscription tier: MaxURLs creations per 24-hour window
// at the given price.
type Package struct {
	ID                 string
	Name               string
	MaxURLs            int
	Price              float64
	TotalSubscriptions int
	CreatedAt          time.Time
}

type CreatePackageInput struct {
	Name    string
	MaxURLs int
	Price   float64
}

// UpdatePackageInput carries a partial update; nil fields are left untouched.
type UpdatePackageInput struct {
	Name    *string
	MaxURLs *int
	Price   *float64
}

type Repository interface {
	Insert(ctx context.Context, pkg *Package) error
	List(ctx context.Context) ([]*Package, error)
	FindByID(ctx context.Context, id string) (*Package, error)
	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, name string) (*Package, error)
	Update(ctx context.Context, pkg *Package) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) CreatePackage(ctx context.Context, in CreatePackageInput) (*Package, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.MaxURLs <= 0 || in.Price < 0 {
		return nil, ErrInvalidPackage
	}

	pkg := &Package{
		ID:        uuid.NewString(),
		Name:      name,
		MaxURLs:   in.MaxURLs,
		Price:     in.Price,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, pkg); err != nil {
		return nil, err
	}

	return pkg, nil
}

func (s *Service) ListPackages(ctx context.Context) ([]*Package, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdatePackage(ctx context.Context, id string, in UpdatePackageInput) (*Package, error) {
	pkg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrInvalidPackage
		}
		pkg.Name = name
	}
	if in.MaxURLs != nil {
		if *in.MaxURLs <= 0 {
			return nil, ErrInvalidPackage
		}
		pkg.MaxURLs = *in.MaxURLs
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, ErrInvalidPackage
		}
		pkg.Price = *in.Price
	}

	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, err
	}

	return pkg, nil
}

// MaxURLs resolves a tier name to its per-window entitlement.
func (s *Service) MaxURLs(ctx context.Context, tierName string) (int, error) {
	pkg, err := s.repo.FindByName(ctx, tierName)
	if err != nil {
		return 0, err
	}
	return pkg.MaxURLs, nil
}
