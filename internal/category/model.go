package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/expensio/expensio-backend/internal/domain"
)

type Category struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	UserID      uuid.UUID           `db:"user_id" json:"user_id"`
	Name        string              `db:"name" json:"name"`
	Description string              `db:"description" json:"description,omitempty"`
	IconName    string              `db:"icon_name" json:"icon_name,omitempty"`
	ColorCode   string              `db:"color_code" json:"color_code,omitempty"`
	Type        domain.CategoryType `db:"type" json:"type"`
	IsActive    bool                `db:"is_active" json:"is_active"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IconName    string `json:"icon_name"`
	ColorCode   string `json:"color_code"`
	Type        string `json:"type"`
}

// Patch carries partial-update overrides. A nil field means "leave
// unchanged"; explicit clearing of required fields is not supported.
// The active flag is deliberately absent: the only exposed transition is
// the one-way soft delete.
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IconName    *string `json:"icon_name"`
	ColorCode   *string `json:"color_code"`
	Type        *string `json:"type"`
}
