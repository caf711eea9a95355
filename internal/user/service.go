package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/auth"
	"github.com/expensio/expensio-backend/internal/domain"
)

// Store is the persistence surface the service needs; *Repository satisfies
// it, tests use an in-memory fake.
type Store interface {
	Insert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsernameOrEmail(ctx context.Context, ident string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type Service struct {
	store  Store
	hasher auth.Hasher
	tokens *auth.Tokens
}

func NewService(store Store, hasher auth.Hasher, tokens *auth.Tokens) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

// Register creates a new account. Username and email collisions are checked
// independently, each with its own conflict error, before the password is
// hashed or anything is persisted.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validationf("username, email and password are required")
	}
	if len(req.Username) < 3 || len(req.Username) > 50 {
		return nil, apperr.Validationf("username must be between 3 and 50 characters")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, apperr.Validationf("invalid email address")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Validationf("password must be at least 8 characters")
	}

	taken, err := s.store.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrUsernameTaken
	}
	taken, err = s.store.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a session token. Unknown identifier,
// wrong password and deactivated account all fail identically.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	ident := strings.TrimSpace(req.UsernameOrEmail)
	if ident == "" || req.Password == "" {
		return nil, apperr.ErrUnauthenticated
	}

	u, err := s.store.GetByUsernameOrEmail(ctx, ident)
	if err != nil {
		// Only a missing account folds into the uniform failure;
		// infrastructure errors must surface as such.
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthenticated
		}
		return nil, err
	}
	if !u.IsActive || !s.hasher.Verify(req.Password, u.PasswordHash) {
		return nil, apperr.ErrUnauthenticated
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

// Me returns the profile of the authenticated principal.
func (s *Service) Me(ctx context.Context, p auth.Principal) (*User, error) {
	return s.store.GetByID(ctx, p.ID)
}
