package controller

import (
	"context"

	"firecheck-be/internal/dto"
	"firecheck-be/internal/pkg/serverutils"
	"firecheck-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInspectionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	RecordOutcome(ctx *fiber.Ctx) error
	ListOutcomes(ctx *fiber.Ctx) error
	Pause(ctx *fiber.Ctx) error
	Resume(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Abandon(ctx *fiber.Ctx) error
}

// inspectionController serves one ceremony's lifecycle under its own route
// prefix; the audit and shift-check instances differ only in prefix and
// injected service.
type inspectionController struct {
	prefix  string
	service service.IInspectionService
}

func NewAuditController(svc service.IInspectionService) IInspectionController {
	return &inspectionController{prefix: "/audit/v1", service: svc}
}

func NewShiftCheckController(svc service.IInspectionService) IInspectionController {
	return &inspectionController{prefix: "/shiftcheck/v1", service: svc}
}

func (c *inspectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group(c.prefix)
	h.Use(serverutils.JwtMiddleware)
	h.Post("/sessions", c.Start)
	h.Get("/sessions", c.List)
	h.Get("/sessions/:id", c.Show)
	h.Post("/sessions/:id/outcomes", c.RecordOutcome)
	h.Get("/sessions/:id/outcomes", c.ListOutcomes)
	h.Post("/sessions/:id/pause", c.Pause)
	h.Post("/sessions/:id/resume", c.Resume)
	h.Post("/sessions/:id/complete", c.Complete)
	h.Post("/sessions/:id/abandon", c.Abandon)
}

func (c *inspectionController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), serverutils.UserID(ctx), serverutils.StationID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session started", res))
}

func (c *inspectionController) List(ctx *fiber.Ctx) error {
	var req dto.ListSessionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), serverutils.StationID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *inspectionController) Show(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.service.Show(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *inspectionController) RecordOutcome(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.RecordOutcomeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RecordOutcome(ctx.Context(), serverutils.UserID(ctx), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Outcome recorded", res))
}

func (c *inspectionController) ListOutcomes(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.service.ListOutcomes(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get outcomes", res))
}

func (c *inspectionController) Pause(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.service.Pause, "Session paused")
}

func (c *inspectionController) Resume(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.service.Resume, "Session resumed")
}

func (c *inspectionController) Complete(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.service.Complete, "Session completed")
}

func (c *inspectionController) Abandon(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.AbandonSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Abandon(ctx.Context(), serverutils.UserID(ctx), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session abandoned", res))
}

func (c *inspectionController) transition(ctx *fiber.Ctx, fn func(ctx context.Context, inspectorId, sessionId uuid.UUID) (*dto.SessionResponse, error), message string) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := fn(ctx.Context(), serverutils.UserID(ctx), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
