package category

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/auth"
	"github.com/expensio/expensio-backend/internal/domain"
	"github.com/expensio/expensio-backend/internal/paging"
)

const maxNameLen = 100

// Store is the persistence surface the service needs; *Repository satisfies
// it, tests use an in-memory fake.
type Store interface {
	Insert(ctx context.Context, c *Category) error
	GetByIDAndOwner(ctx context.Context, ownerID, id uuid.UUID) (*Category, error)
	Update(ctx context.Context, c *Category) error
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error
	ExistsActiveName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
	ListActive(ctx context.Context, ownerID uuid.UUID, typ *domain.CategoryType, p paging.Params) ([]Category, int64, error)
}

type Service struct {
	store       Store
	maxPageSize int
}

func NewService(store Store, maxPageSize int) *Service {
	return &Service{store: store, maxPageSize: maxPageSize}
}

// List returns one page of the principal's active categories, optionally
// narrowed by type.
func (s *Service) List(ctx context.Context, p auth.Principal, rawType string, params paging.Params) (paging.Page[Category], error) {
	var typ *domain.CategoryType
	if strings.TrimSpace(rawType) != "" {
		t, err := domain.ParseCategoryType(rawType)
		if err != nil {
			return paging.Page[Category]{}, err
		}
		typ = &t
	}

	params = params.Normalize(s.maxPageSize)
	items, total, err := s.store.ListActive(ctx, p.ID, typ, params)
	if err != nil {
		return paging.Page[Category]{}, err
	}
	return paging.NewPage(items, params, total), nil
}

// Create stamps the principal as owner regardless of anything in the
// request body.
func (s *Service) Create(ctx context.Context, p auth.Principal, req CreateRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxNameLen {
		return nil, apperr.Validationf("name must be between 1 and %d characters", maxNameLen)
	}
	typ, err := domain.ParseCategoryType(req.Type)
	if err != nil {
		return nil, err
	}

	// Name uniqueness is scoped to this owner's active categories only;
	// soft-deleted names are free to reuse.
	taken, err := s.store.ExistsActiveName(ctx, p.ID, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrCategoryNameTaken
	}

	c := &Category{
		UserID:      p.ID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IconName:    strings.TrimSpace(req.IconName),
		ColorCode:   strings.TrimSpace(req.ColorCode),
		Type:        typ,
		IsActive:    true,
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies only the supplied patch fields over the stored row.
func (s *Service) Update(ctx context.Context, p auth.Principal, id uuid.UUID, patch Patch) (*Category, error) {
	c, err := s.store.GetByIDAndOwner(ctx, p.ID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" || len(name) > maxNameLen {
			return nil, apperr.Validationf("name must be between 1 and %d characters", maxNameLen)
		}
		if name != c.Name {
			taken, err := s.store.ExistsActiveName(ctx, p.ID, name)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.ErrCategoryNameTaken
			}
		}
		c.Name = name
	}
	if patch.Description != nil {
		c.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.IconName != nil {
		c.IconName = strings.TrimSpace(*patch.IconName)
	}
	if patch.ColorCode != nil {
		c.ColorCode = strings.TrimSpace(*patch.ColorCode)
	}
	if patch.Type != nil {
		typ, err := domain.ParseCategoryType(*patch.Type)
		if err != nil {
			return nil, err
		}
		c.Type = typ
	}

	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete soft-deletes: the row stays resolvable for existing expense
// references. Deleting an already-inactive category succeeds again.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	c, err := s.store.GetByIDAndOwner(ctx, p.ID, id)
	if err != nil {
		return err
	}
	if !c.IsActive {
		return nil
	}
	return s.store.SoftDelete(ctx, p.ID, id)
}
