package category

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/auth"
	"github.com/expensio/expensio-backend/internal/paging"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) List(c *fiber.Ctx) error {
	p, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return apperr.ErrUnauthenticated
	}

	params := paging.Params{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", paging.DefaultSize),
		Sort: c.Query("sort"),
		Desc: c.Query("order") == "desc",
	}

	page, err := h.Service.List(c.UserContext(), p, c.Query("type"), params)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	p, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return apperr.ErrUnauthenticated
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid body")
	}

	created, err := h.Service.Create(c.UserContext(), p, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	p, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return apperr.ErrUnauthenticated
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Validationf("invalid category id")
	}

	var patch Patch
	if err := c.BodyParser(&patch); err != nil {
		return apperr.Validationf("invalid body")
	}

	updated, err := h.Service.Update(c.UserContext(), p, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	p, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return apperr.ErrUnauthenticated
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Validationf("invalid category id")
	}

	if err := h.Service.Delete(c.UserContext(), p, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
