package controller

import (
	"strings"

	"notestack-be/internal/dto"
	"notestack-be/internal/pkg/serverutils"
	"notestack-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	invalidNoteIdMessage = "Invalid note ID"
	titleRequiredMessage = "Title is required"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Share(ctx *fiber.Ctx) error
	Receive(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService   service.INoteService
	shareService  service.IShareService
	jwtMiddleware fiber.Handler
}

func NewNoteController(noteService service.INoteService, shareService service.IShareService, jwtMiddleware fiber.Handler) INoteController {
	return &noteController{
		noteService:   noteService,
		shareService:  shareService,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes", c.jwtMiddleware)
	// share routes go first so "share" and "receive" never match :id
	h.Get("/share/:id", c.Share)
	h.Post("/receive", c.Receive)

	h.Get("/", c.GetAll)
	h.Post("/", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *noteController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}

	var notebookId *uuid.UUID
	if raw := strings.TrimSpace(ctx.Query("notebookId")); raw != "" {
		id, err := serverutils.ParseUUID(raw, invalidNotebookIdMessage)
		if err != nil {
			return err
		}
		notebookId = &id
	}

	res, err := c.noteService.GetAll(ctx.UserContext(), userId, notebookId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{
		"count": len(res),
		"notes": res,
	}))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := serverutils.ParseBody(ctx, &req, titleRequiredMessage); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req, titleRequiredMessage); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(fiber.Map{"note": res}))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseID(ctx, "id", invalidNoteIdMessage)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"note": res}))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseID(ctx, "id", invalidNoteIdMessage)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := serverutils.ParseBody(ctx, &req, "Invalid note data"); err != nil {
		return err
	}
	req.Id = id

	res, err := c.noteService.Update(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"note": res}))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseID(ctx, "id", invalidNoteIdMessage)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{
		"message": "Note has been deleted successfully",
	}))
}

// Share returns the portable payload, or the same payload as a PNG QR code
// with ?format=qr.
func (c *noteController) Share(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParseID(ctx, "id", invalidNoteIdMessage)
	if err != nil {
		return err
	}

	if strings.EqualFold(ctx.Query("format"), "qr") {
		png, err := c.shareService.QRCode(ctx.UserContext(), userId, id, ctx.QueryInt("size", service.DefaultQRSize))
		if err != nil {
			return err
		}
		ctx.Set(fiber.HeaderContentType, "image/png")
		return ctx.Send(png)
	}

	res, err := c.shareService.BuildShareable(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"shareData": res}))
}

func (c *noteController) Receive(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.ShareData
	if err := serverutils.ParseBody(ctx, &req, "Invalid share data"); err != nil {
		return err
	}

	res, err := c.shareService.Receive(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(fiber.Map{
		"message": "Note added successfully!",
		"note":    res,
	}))
}
