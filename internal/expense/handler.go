package expense

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/audit"
	"github.com/expensio/expensio-backend/internal/auth"
	"github.com/expensio/expensio-backend/internal/domain"
	"github.com/expensio/expensio-backend/internal/paging"
)

type Handler struct {
	Service *Service
	Audit   *audit.Log
}

func NewHandler(service *Service, auditLog *audit.Log) *Handler {
	return &Handler{Service: service, Audit: auditLog}
}

func (h *Handler) List(c *fiber.Ctx) error {
	p, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return apperr.ErrUnauthenticated
	}

	f, err := parseFilter(c)
	if err != nil {
		return err
	}

	params := paging.Params{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", paging.DefaultSize),
		Sort: c.Query("sort"),
		Desc: c.Query("order", "desc") == "desc",
	}

	page, err := h.Service.List(c.UserContext(), p, f, params)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	p, ok := auth.PrincipalFromCtx(c)
	if !ok {
		return apperr.ErrUnauthenticated
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Validationf("invalid expense id")
	}

	e, err := h.Service.Get(c.UserContext(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(e)
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
		return apperr.Validationf("invalid expense id")
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
		return apperr.Validationf("invalid expense id")
	}

	if err := h.Service.Delete(c.UserContext(), p, id); err != nil {
		return err
	}

	h.Audit.Record(c.UserContext(), audit.Entry{
		UserID:     &p.ID,
		Action:     audit.ActionDelete,
		EntityType: "expense",
		EntityID:   &id,
		IP:         c.IP(),
	})

	return c.SendStatus(fiber.StatusNoContent)
}

func parseFilter(c *fiber.Ctx) (Filter, error) {
	var f Filter

	if v := strings.TrimSpace(c.Query("start_date")); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, apperr.Validationf("start_date must be YYYY-MM-DD")
		}
		f.From = &t
	}
	if v := strings.TrimSpace(c.Query("end_date")); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, apperr.Validationf("end_date must be YYYY-MM-DD")
		}
		f.To = &t
	}
	if v := strings.TrimSpace(c.Query("category_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, apperr.Validationf("invalid category_id")
		}
		f.CategoryID = &id
	}
	if v := strings.TrimSpace(c.Query("type")); v != "" {
		t, err := domain.ParseRecordType(v)
		if err != nil {
			return f, err
		}
		f.Type = &t
	}
	if v := strings.TrimSpace(c.Query("min_amount")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, apperr.Validationf("invalid min_amount")
		}
		f.MinAmount = &d
	}
	if v := strings.TrimSpace(c.Query("max_amount")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, apperr.Validationf("invalid max_amount")
		}
		f.MaxAmount = &d
	}

	return f, nil
}
