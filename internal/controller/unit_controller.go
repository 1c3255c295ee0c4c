package controller

import (
	"firecheck-be/internal/pkg/serverutils"
	"firecheck-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUnitController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type unitController struct {
	service service.IUnitService
}

func NewUnitController(svc service.IUnitService) IUnitController {
	return &unitController{service: svc}
}

func (c *unitController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/unit/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
}

func (c *unitController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context(), serverutils.StationID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get units", res))
}

func (c *unitController) Show(ctx *fiber.Ctx) error {
	unitId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid unit id")
	}

	res, err := c.service.Show(ctx.Context(), serverutils.StationID(ctx), unitId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get unit", res))
}
