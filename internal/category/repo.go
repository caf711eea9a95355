package category

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/domain"
	"github.com/expensio/expensio-backend/internal/paging"
)

const categoryColumns = `id, user_id, name, COALESCE(description,''), COALESCE(icon_name,''), COALESCE(color_code,''), type, is_active, created_at, updated_at`

var sortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, c *Category) error {
	return r.Pool.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, description, icon_name, color_code, type, is_active)
		VALUES ($1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), $6, $7)
		RETURNING id, created_at, updated_at`,
		c.UserID, c.Name, c.Description, c.IconName, c.ColorCode, c.Type, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByIDAndOwner returns NotFound both for absent rows and rows owned by
// someone else; callers cannot tell the difference.
func (r *Repository) GetByIDAndOwner(ctx context.Context, ownerID, id uuid.UUID) (*Category, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`, id, ownerID)

	var c Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.IconName,
		&c.ColorCode, &c.Type, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("category")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Update(ctx context.Context, c *Category) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE categories
		SET name = $1, description = NULLIF($2,''), icon_name = NULLIF($3,''),
		    color_code = NULLIF($4,''), type = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7`,
		c.Name, c.Description, c.IconName, c.ColorCode, c.Type, c.ID, c.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("category")
	}
	return nil
}

// SoftDelete flips is_active off. Rows already inactive are matched too so
// the operation stays idempotent at the SQL level.
func (r *Repository) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE categories SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("category")
	}
	return nil
}

func (r *Repository) ExistsActiveName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = $1 AND name = $2 AND is_active)`,
		ownerID, name).Scan(&exists)
	return exists, err
}

// ListActive returns one page of the owner's active categories plus the
// total count for the same predicate.
func (r *Repository) ListActive(ctx context.Context, ownerID uuid.UUID, typ *domain.CategoryType, p paging.Params) ([]Category, int64, error) {
	where := `WHERE user_id = $1 AND is_active`
	args := []any{ownerID}
	if typ != nil {
		args = append(args, *typ)
		where += ` AND type = $2`
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := p.OrderBy(sortColumns, "name ASC", "id")
	query := `SELECT ` + categoryColumns + ` FROM categories ` + where +
		` ORDER BY ` + orderBy +
		` LIMIT ` + strconv.Itoa(p.Limit()) + ` OFFSET ` + strconv.Itoa(p.Offset())

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Category, 0, p.Limit())
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.IconName,
			&c.ColorCode, &c.Type, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}
