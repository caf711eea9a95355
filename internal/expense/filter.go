package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expensio/expensio-backend/internal/domain"
)

// Filter holds the optional list predicates. Absent fields are omitted from
// the query, never treated as "match nothing". All bounds are inclusive.
type Filter struct {
	From       *time.Time
	To         *time.Time
	CategoryID *uuid.UUID
	Type       *domain.RecordType
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

var sortColumns = map[string]string{
	"expense_date": "e.expense_date",
	"date":         "e.expense_date",
	"amount":       "e.amount",
	"title":        "e.title",
	"created_at":   "e.created_at",
}

const defaultOrder = "e.expense_date DESC"

// whereClause composes the mandatory owner predicate with the optional
// filter predicates, conjunctively and in a fixed order, producing
// positional placeholders starting at $1.
func (f Filter) whereClause(ownerID uuid.UUID) (string, []any) {
	conds := []string{"e.user_id = $1"}
	args := []any{ownerID}

	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if f.From != nil {
		add("e.expense_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("e.expense_date <= $%d", *f.To)
	}
	if f.CategoryID != nil {
		add("e.category_id = $%d", *f.CategoryID)
	}
	if f.Type != nil {
		add("e.type = $%d", *f.Type)
	}
	if f.MinAmount != nil {
		add("e.amount >= $%d", f.MinAmount.String())
	}
	if f.MaxAmount != nil {
		add("e.amount <= $%d", f.MaxAmount.String())
	}

	return strings.Join(conds, " AND "), args
}
