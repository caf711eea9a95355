// Package admin exposes read-only operational endpoints for principals with
// the ADMIN role. Routes are registered behind the auth middleware plus
// auth.RequireRole.
package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	Pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{Pool: pool}
}

type userRow struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	rows, err := h.Pool.Query(c.UserContext(), `
		SELECT id::text, username, email, role, is_active, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT 100`)
	if err != nil {
		return err
	}
	defer rows.Close()

	out := make([]userRow, 0, 100)
	for rows.Next() {
		var u userRow
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return c.JSON(out)
}

type overviewResponse struct {
	UsersTotal      int64 `json:"users_total"`
	CategoriesTotal int64 `json:"categories_total"`
	ExpensesTotal   int64 `json:"expenses_total"`
}

func (h *Handler) Overview(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var resp overviewResponse
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&resp.UsersTotal); err != nil {
		return err
	}
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&resp.CategoriesTotal); err != nil {
		return err
	}
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&resp.ExpensesTotal); err != nil {
		return err
	}

	return c.JSON(resp)
}
