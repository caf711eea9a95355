package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expensio/expensio-backend/internal/domain"
)

type Expense struct {
	ID            uuid.UUID             `db:"id" json:"id"`
	UserID        uuid.UUID             `db:"user_id" json:"user_id"`
	Title         string                `db:"title" json:"title"`
	Description   string                `db:"description" json:"description,omitempty"`
	Amount        decimal.Decimal       `db:"amount" json:"amount"`
	ExpenseDate   time.Time             `db:"expense_date" json:"expense_date"`
	Type          domain.RecordType     `db:"type" json:"type"`
	PaymentMethod *domain.PaymentMethod `db:"payment_method" json:"payment_method,omitempty"`
	Notes         string                `db:"notes" json:"notes,omitempty"`
	ReceiptURL    string                `db:"receipt_url" json:"receipt_url,omitempty"`
	IsRecurring   bool                  `db:"is_recurring" json:"is_recurring"`
	Frequency     *domain.Frequency     `db:"recurring_frequency" json:"recurring_frequency,omitempty"`
	CategoryID    uuid.UUID             `db:"category_id" json:"category_id"`
	CategoryName  string                `db:"category_name" json:"category_name"`
	CreatedAt     time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time             `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   string          `json:"expense_date"` // YYYY-MM-DD
	Type          string          `json:"type"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	ReceiptURL    string          `json:"receipt_url"`
	IsRecurring   bool            `json:"is_recurring"`
	Frequency     string          `json:"recurring_frequency"`
	CategoryID    uuid.UUID       `json:"category_id"`
}

// Patch carries partial-update overrides. A nil field means "leave
// unchanged"; required fields cannot be cleared.
type Patch struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	ExpenseDate   *string          `json:"expense_date"`
	Type          *string          `json:"type"`
	PaymentMethod *string          `json:"payment_method"`
	Notes         *string          `json:"notes"`
	ReceiptURL    *string          `json:"receipt_url"`
	IsRecurring   *bool            `json:"is_recurring"`
	Frequency     *string          `json:"recurring_frequency"`
	CategoryID    *uuid.UUID       `json:"category_id"`
}
