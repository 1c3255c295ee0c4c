package controller

import (
	"firecheck-be/internal/dto"
	"firecheck-be/internal/pkg/serverutils"
	"firecheck-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILockController interface {
	RegisterRoutes(r fiber.Router)
	Acquire(ctx *fiber.Ctx) error
	Release(ctx *fiber.Ctx) error
	TakeOver(ctx *fiber.Ctx) error
	ListForSession(ctx *fiber.Ctx) error
}

type lockController struct {
	service service.ILockService
}

func NewLockController(svc service.ILockService) ILockController {
	return &lockController{service: svc}
}

func (c *lockController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lock/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/acquire", c.Acquire)
	h.Post("/release", c.Release)
	h.Post("/takeover", c.TakeOver)
	h.Get("/sessions/:id", c.ListForSession)
}

func (c *lockController) Acquire(ctx *fiber.Ctx) error {
	var req dto.AcquireLockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Acquire(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Lock request processed", res))
}

func (c *lockController) Release(ctx *fiber.Ctx) error {
	var req dto.ReleaseLockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Release(ctx.Context(), serverutils.UserID(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Lock released", nil))
}

func (c *lockController) TakeOver(ctx *fiber.Ctx) error {
	var req dto.TakeOverLockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.TakeOver(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Lock taken over", res))
}

func (c *lockController) ListForSession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.service.ListForSession(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get locks", res))
}
