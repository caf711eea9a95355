package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/expensio/expensio-backend/internal/admin"
	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/audit"
	"github.com/expensio/expensio-backend/internal/auth"
	"github.com/expensio/expensio-backend/internal/category"
	"github.com/expensio/expensio-backend/internal/config"
	"github.com/expensio/expensio-backend/internal/expense"
	"github.com/expensio/expensio-backend/internal/router"
	"github.com/expensio/expensio-backend/internal/user"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating pgx pool")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("error pinging database")
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid token configuration")
	}
	hasher := auth.NewHasher(cfg.BcryptCost)

	auditLog := audit.NewLog(pool, logger)

	userRepo := user.NewRepository(pool)
	userService := user.NewService(userRepo, hasher, tokens)
	userHandler := user.NewHandler(userService, auditLog)

	categoryRepo := category.NewRepository(pool)
	categoryService := category.NewService(categoryRepo, cfg.MaxPageSize)
	categoryHandler := category.NewHandler(categoryService)

	expenseRepo := expense.NewRepository(pool)
	expenseService := expense.NewService(expenseRepo, cfg.MaxPageSize)
	expenseHandler := expense.NewHandler(expenseService, auditLog)

	adminHandler := admin.NewHandler(pool)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(logger),
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	r := &router.Router{
		UserHandler:     userHandler,
		CategoryHandler: categoryHandler,
		ExpenseHandler:  expenseHandler,
		AdminHandler:    adminHandler,
		AuthMW:          auth.Middleware(tokens, userRepo),
	}
	r.RegisterRoutes(app)

	logger.Info().Str("port", cfg.Port).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// errorHandler translates the service error taxonomy into HTTP responses.
// This is the only place status codes are assigned.
func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		code, msg := apperr.HTTPStatus(err)
		if code == fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}

func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
