package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/expensio/expensio-backend/internal/admin"
	"github.com/expensio/expensio-backend/internal/auth"
	"github.com/expensio/expensio-backend/internal/category"
	"github.com/expensio/expensio-backend/internal/domain"
	"github.com/expensio/expensio-backend/internal/expense"
	"github.com/expensio/expensio-backend/internal/user"
)

type Router struct {
	UserHandler     *user.Handler
	CategoryHandler *category.Handler
	ExpenseHandler  *expense.Handler
	AdminHandler    *admin.Handler
	// AuthMW is the principal resolver; every protected route goes
	// through it and nothing else performs authentication.
	AuthMW fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	authLimit := RateLimitAuth()
	writeLimit := RateLimitWrite()

	app.Post("/api/auth/signup", authLimit, r.UserHandler.Signup)
	app.Post("/api/auth/login", authLimit, r.UserHandler.Login)
	app.Get("/api/users/me", r.AuthMW, r.UserHandler.Me)

	app.Get("/api/categories", r.AuthMW, r.CategoryHandler.List)
	app.Post("/api/categories", r.AuthMW, writeLimit, r.CategoryHandler.Create)
	app.Put("/api/categories/:id", r.AuthMW, writeLimit, r.CategoryHandler.Update)
	app.Delete("/api/categories/:id", r.AuthMW, writeLimit, r.CategoryHandler.Delete)

	app.Get("/api/expenses", r.AuthMW, r.ExpenseHandler.List)
	app.Get("/api/expenses/:id", r.AuthMW, r.ExpenseHandler.Get)
	app.Post("/api/expenses", r.AuthMW, writeLimit, r.ExpenseHandler.Create)
	app.Put("/api/expenses/:id", r.AuthMW, writeLimit, r.ExpenseHandler.Update)
	app.Delete("/api/expenses/:id", r.AuthMW, writeLimit, r.ExpenseHandler.Delete)

	if r.AdminHandler != nil {
		adminOnly := auth.RequireRole(domain.RoleAdmin)
		app.Get("/api/admin/users", r.AuthMW, adminOnly, r.AdminHandler.ListUsers)
		app.Get("/api/admin/overview", r.AuthMW, adminOnly, r.AdminHandler.Overview)
	}
}
