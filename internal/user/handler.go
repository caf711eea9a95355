package user

import (
	"github.com/gofiber/fiber/v2"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/audit"
	"github.com/expensio/expensio-backend/internal/auth"
)

type Handler struct {
	Service *Service
	Audit   *audit.Log
}

func NewHandler(service *Service, auditLog *audit.Log) *Handler {
	return &Handler{Service: service, Audit: auditLog}
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid body")
	}

	u, err := h.Service.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	h.Audit.Record(c.UserContext(), audit.Entry{
		UserID: &u.ID,
		Action: audit.ActionRegister,
		IP:     c.IP(),
	})

	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid body")
	}

	resp, err := h.Service.Login(c.UserContext(), req)
	if err != nil {
		h.Audit.Record(c.UserContext(), audit.Entry{
			Action: audit.ActionLoginFailed,
			IP:     c.IP(),
		})
		return err
	}

	h.Audit.Record(c.UserContext(), audit.Entry{
		UserID: &resp.User.ID,
		Action: audit.ActionLogin,
		IP:     c.IP(),
	})

	return c.JSON(resp)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	p, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return apperr.ErrUnauthenticated
	}

	u, err := h.Service.Me(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(u)
}
