package controller

import (
	"notestack-be/internal/dto"
	"notestack-be/internal/pkg/serverutils"
	"notestack-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	registerFieldsMessage = "Please provide name, email, and password"
	loginFieldsMessage    = "Please provide email and password"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service       service.IAuthService
	jwtMiddleware fiber.Handler
}

func NewAuthController(service service.IAuthService, jwtMiddleware fiber.Handler) IAuthController {
	return &authController{service: service, jwtMiddleware: jwtMiddleware}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/me", c.jwtMiddleware, c.Me)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.ParseBody(ctx, &req, registerFieldsMessage); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req, registerFieldsMessage); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(fiber.Map{
		"token": res.Token,
		"user":  res.User,
	}))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseBody(ctx, &req, loginFieldsMessage); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req, loginFieldsMessage); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{
		"token": res.Token,
		"user":  res.User,
	}))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Me(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"user": res}))
}
