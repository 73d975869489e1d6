package controller

import (
	"project-intake-be/internal/dto"
	"project-intake-be/internal/pkg/serverutils"
	"project-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIntakeController interface {
	RegisterRoutes(r fiber.Router)
}

type intakeController struct {
	service service.IIntakeService
}

func NewIntakeController(service service.IIntakeService) IIntakeController {
	return &intakeController{
		service: service,
	}
}

func (c *intakeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/intake/v1")
	h.Post("/sessions", c.Start)
	h.Get("/sessions", c.List)
	h.Get("/usage", c.Usage)
	h.Post("/sessions/:id/answer", c.Answer)
	h.Post("/sessions/:id/skip", c.Skip)
	h.Post("/sessions/:id/finish", c.Finish)
	h.Get("/sessions/:id/summary", c.Summary)
}

func (c *intakeController) Start(ctx *fiber.Ctx) error {
	var req dto.StartIntakeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session started", res))
}

func (c *intakeController) Answer(ctx *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.SubmitAnswer(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Answer recorded", res))
}

func (c *intakeController) Skip(ctx *fiber.Ctx) error {
	res, err := c.service.Skip(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Question skipped", res))
}

func (c *intakeController) Finish(ctx *fiber.Ctx) error {
	res, err := c.service.Finish(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session finished", res))
}

func (c *intakeController) Summary(ctx *fiber.Ctx) error {
	res, err := c.service.Summary(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session summary", res))
}

func (c *intakeController) List(ctx *fiber.Ctx) error {
	res, err := c.service.ListSessions(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session list", res))
}

func (c *intakeController) Usage(ctx *fiber.Ctx) error {
	res, err := c.service.Usage(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Daily usage", res))
}
