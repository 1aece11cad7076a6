package controller

import (
	"notestack-be/internal/dto"
	"notestack-be/internal/pkg/serverutils"
	"notestack-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const invalidNotebookIdMessage = "Invalid notebook ID"

type INotebookController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetNotes(ctx *fiber.Ctx) error
}

type notebookController struct {
	notebookService service.INotebookService
	jwtMiddleware   fiber.Handler
}

func NewNotebookController(notebookService service.INotebookService, jwtMiddleware fiber.Handler) INotebookController {
	return &notebookController{
		notebookService: notebookService,
		jwtMiddleware:   jwtMiddleware,
	}
}

func (c *notebookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebooks", c.jwtMiddleware)
	h.Get("/", c.GetAll)
	h.Post("/", c.Create)
	h.Get("/:id/notes", c.GetNotes)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *notebookController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.notebookService.GetAll(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{
		"count":     len(res),
		"notebooks": res,
	}))
}

func (c *notebookController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNotebookRequest
	if err := serverutils.ParseBody(ctx, &req, "Notebook name is required"); err != nil {
		return err
	}

	res, err := c.notebookService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(fiber.Map{"notebook": res}))
}

func (c *notebookController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseID(ctx, "id", invalidNotebookIdMessage)
	if err != nil {
		return err
	}

	res, err := c.notebookService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"notebook": res}))
}

func (c *notebookController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseID(ctx, "id", invalidNotebookIdMessage)
	if err != nil {
		return err
	}

	var req dto.UpdateNotebookRequest
	if err := serverutils.ParseBody(ctx, &req, "Notebook name is required"); err != nil {
		return err
	}
	req.Id = id

	res, err := c.notebookService.Update(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"notebook": res}))
}

func (c *notebookController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseID(ctx, "id", invalidNotebookIdMessage)
	if err != nil {
		return err
	}

	res, err := c.notebookService.Delete(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{
		"message":    res.Message,
		"movedNotes": res.MovedNotes,
	}))
}

func (c *notebookController) GetNotes(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseID(ctx, "id", invalidNotebookIdMessage)
	if err != nil {
		return err
	}

	res, err := c.notebookService.GetNotes(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{
		"notebook":   res.Notebook,
		"notebookId": res.NotebookId,
		"count":      len(res.Notes),
		"notes":      res.Notes,
	}))
}
