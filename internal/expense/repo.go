package expense

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/paging"
)

const expenseColumns = `e.id, e.user_id, e.title, COALESCE(e.description,''), e.amount::text,
	e.expense_date, e.type, e.payment_method, COALESCE(e.notes,''), COALESCE(e.receipt_url,''),
	e.is_recurring, e.recurring_frequency, e.category_id, c.name, e.created_at, e.updated_at`

const expenseFrom = ` FROM expenses e JOIN categories c ON c.id = e.category_id `

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

// checkCategory verifies, inside the caller's transaction, that the
// referenced category exists, is active and belongs to ownerID. The FOR
// SHARE lock keeps the category from being soft-deleted between this check
// and the write that follows it.
func checkCategory(ctx context.Context, tx pgx.Tx, ownerID, categoryID uuid.UUID) (string, error) {
	var catOwner uuid.UUID
	var active bool
	var name string
	err := tx.QueryRow(ctx,
		`SELECT user_id, is_active, name FROM categories WHERE id = $1 FOR SHARE`,
		categoryID).Scan(&catOwner, &active, &name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.NotFoundf("category")
	}
	if err != nil {
		return "", err
	}
	if catOwner != ownerID {
		return "", apperr.ErrOwnershipViolation
	}
	if !active {
		// Soft-deleted categories accept no new references; existing
		// expense rows keep resolving through the join.
		return "", apperr.NotFoundf("category")
	}
	return name, nil
}

// Insert creates the expense and validates the category reference in the
// same transaction. The owner stamp comes from e.UserID, which the service
// always sets to the authenticated principal.
func (r *Repository) Insert(ctx context.Context, e *Expense) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	name, err := checkCategory(ctx, tx, e.UserID, e.CategoryID)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO expenses (user_id, title, description, amount, expense_date, type,
			payment_method, notes, receipt_url, is_recurring, recurring_frequency, category_id)
		VALUES ($1, $2, NULLIF($3,''), $4::numeric, $5, $6, $7, NULLIF($8,''), NULLIF($9,''), $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		e.UserID, e.Title, e.Description, e.Amount.String(), e.ExpenseDate, e.Type,
		e.PaymentMethod, e.Notes, e.ReceiptURL, e.IsRecurring, e.Frequency, e.CategoryID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return err
	}

	e.CategoryName = name
	return tx.Commit(ctx)
}

// Update rewrites the row and re-validates the (possibly new) category
// reference in the same transaction.
func (r *Repository) Update(ctx context.Context, e *Expense) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	name, err := checkCategory(ctx, tx, e.UserID, e.CategoryID)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE expenses
		SET title = $1, description = NULLIF($2,''), amount = $3::numeric, expense_date = $4,
		    type = $5, payment_method = $6, notes = NULLIF($7,''), receipt_url = NULLIF($8,''),
		    is_recurring = $9, recurring_frequency = $10, category_id = $11, updated_at = NOW()
		WHERE id = $12 AND user_id = $13`,
		e.Title, e.Description, e.Amount.String(), e.ExpenseDate, e.Type, e.PaymentMethod,
		e.Notes, e.ReceiptURL, e.IsRecurring, e.Frequency, e.CategoryID, e.ID, e.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("expense")
	}

	e.CategoryName = name
	return tx.Commit(ctx)
}

// GetByIDAndOwner returns NotFound both for absent rows and rows owned by
// someone else.
func (r *Repository) GetByIDAndOwner(ctx context.Context, ownerID, id uuid.UUID) (*Expense, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+expenseColumns+expenseFrom+`WHERE e.id = $1 AND e.user_id = $2`, id, ownerID)

	e, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("expense")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Delete is a hard delete.
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("expense")
	}
	return nil
}

// List returns one page of the owner's records matching the filter, plus
// the total count for the same predicate.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID, f Filter, p paging.Params) ([]Expense, int64, error) {
	where, args := f.whereClause(ownerID)

	var total int64
	if err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM expenses e WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + expenseColumns + expenseFrom +
		`WHERE ` + where +
		` ORDER BY ` + p.OrderBy(sortColumns, defaultOrder, "e.id") +
		` LIMIT ` + strconv.Itoa(p.Limit()) + ` OFFSET ` + strconv.Itoa(p.Offset())

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Expense, 0, p.Limit())
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *e)
	}
	return out, total, rows.Err()
}

func scanExpense(row pgx.Row) (*Expense, error) {
	var e Expense
	var amount string
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &amount,
		&e.ExpenseDate, &e.Type, &e.PaymentMethod, &e.Notes, &e.ReceiptURL,
		&e.IsRecurring, &e.Frequency, &e.CategoryID, &e.CategoryName,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
