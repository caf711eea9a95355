package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/auth"
	"github.com/expensio/expensio-backend/internal/domain"
	"github.com/expensio/expensio-backend/internal/paging"
)

const dateLayout = "2006-01-02"

// Store is the persistence surface the service needs; *Repository satisfies
// it, tests use an in-memory fake. Insert and Update must validate the
// category reference atomically with the write.
type Store interface {
	Insert(ctx context.Context, e *Expense) error
	GetByIDAndOwner(ctx context.Context, ownerID, id uuid.UUID) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, f Filter, p paging.Params) ([]Expense, int64, error)
}

type Service struct {
	store       Store
	maxPageSize int
}

func NewService(store Store, maxPageSize int) *Service {
	return &Service{store: store, maxPageSize: maxPageSize}
}

// List returns one page of the principal's records matching the filter.
func (s *Service) List(ctx context.Context, p auth.Principal, f Filter, params paging.Params) (paging.Page[Expense], error) {
	params = params.Normalize(s.maxPageSize)
	items, total, err := s.store.List(ctx, p.ID, f, params)
	if err != nil {
		return paging.Page[Expense]{}, err
	}
	return paging.NewPage(items, params, total), nil
}

func (s *Service) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*Expense, error) {
	return s.store.GetByIDAndOwner(ctx, p.ID, id)
}

// Create validates the request and stamps the principal as owner. The
// category ownership check happens inside the store's insert transaction.
func (s *Service) Create(ctx context.Context, p auth.Principal, req CreateRequest) (*Expense, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validationf("title is required")
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.CategoryID == uuid.Nil {
		return nil, apperr.Validationf("category_id is required")
	}

	date, err := time.Parse(dateLayout, req.ExpenseDate)
	if err != nil {
		return nil, apperr.Validationf("expense_date must be YYYY-MM-DD")
	}

	typ := domain.TypeExpense
	if strings.TrimSpace(req.Type) != "" {
		if typ, err = domain.ParseRecordType(req.Type); err != nil {
			return nil, err
		}
	}

	var method *domain.PaymentMethod
	if strings.TrimSpace(req.PaymentMethod) != "" {
		m, err := domain.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			return nil, err
		}
		method = &m
	}

	freq, err := parseFrequency(req.Frequency, req.IsRecurring)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		UserID:        p.ID,
		Title:         title,
		Description:   strings.TrimSpace(req.Description),
		Amount:        req.Amount,
		ExpenseDate:   date,
		Type:          typ,
		PaymentMethod: method,
		Notes:         strings.TrimSpace(req.Notes),
		ReceiptURL:    strings.TrimSpace(req.ReceiptURL),
		IsRecurring:   req.IsRecurring,
		Frequency:     freq,
		CategoryID:    req.CategoryID,
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update applies only the supplied patch fields over the stored row, then
// rewrites it. The category reference is re-validated in the update
// transaction whether or not it changed.
func (s *Service) Update(ctx context.Context, p auth.Principal, id uuid.UUID, patch Patch) (*Expense, error) {
	e, err := s.store.GetByIDAndOwner(ctx, p.ID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperr.Validationf("title is required")
		}
		e.Title = title
	}
	if patch.Description != nil {
		e.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount); err != nil {
			return nil, err
		}
		e.Amount = *patch.Amount
	}
	if patch.ExpenseDate != nil {
		date, err := time.Parse(dateLayout, *patch.ExpenseDate)
		if err != nil {
			return nil, apperr.Validationf("expense_date must be YYYY-MM-DD")
		}
		e.ExpenseDate = date
	}
	if patch.Type != nil {
		typ, err := domain.ParseRecordType(*patch.Type)
		if err != nil {
			return nil, err
		}
		e.Type = typ
	}
	if patch.PaymentMethod != nil {
		m, err := domain.ParsePaymentMethod(*patch.PaymentMethod)
		if err != nil {
			return nil, err
		}
		e.PaymentMethod = &m
	}
	if patch.Notes != nil {
		e.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.ReceiptURL != nil {
		e.ReceiptURL = strings.TrimSpace(*patch.ReceiptURL)
	}
	if patch.IsRecurring != nil {
		e.IsRecurring = *patch.IsRecurring
		if !e.IsRecurring {
			e.Frequency = nil
		}
	}
	if patch.Frequency != nil {
		freq, err := parseFrequency(*patch.Frequency, e.IsRecurring)
		if err != nil {
			return nil, err
		}
		e.Frequency = freq
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == uuid.Nil {
			return nil, apperr.Validationf("category_id is required")
		}
		e.CategoryID = *patch.CategoryID
	}

	// The recurrence pair is validated on the merged result so that turning
	// the flag on without a stored or supplied frequency cannot slip through.
	if e.IsRecurring && e.Frequency == nil {
		return nil, apperr.Validationf("recurring_frequency is required for recurring records")
	}

	if err := s.store.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the record permanently.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	return s.store.Delete(ctx, p.ID, id)
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.Validationf("amount must be greater than 0")
	}
	if amount.Exponent() < -2 {
		return apperr.Validationf("amount supports at most 2 decimal places")
	}
	return nil
}

// parseFrequency enforces that a recurring frequency is only set together
// with the recurrence flag.
func parseFrequency(raw string, recurring bool) (*domain.Frequency, error) {
	if strings.TrimSpace(raw) == "" {
		if recurring {
			return nil, apperr.Validationf("recurring_frequency is required for recurring records")
		}
		return nil, nil
	}
	if !recurring {
		return nil, apperr.Validationf("recurring_frequency requires is_recurring")
	}
	f, err := domain.ParseFrequency(raw)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
