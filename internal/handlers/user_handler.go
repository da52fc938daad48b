package handlers

import (
	"github.com/gofiber/fiber/v2"

	"journal/internal/models"
	"journal/internal/services"
	"journal/internal/validation"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validation.Validator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, validate *validation.Validator) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Put("/:id", h.HandleReplaceUser)
	userRoutes.Patch("/:id", h.HandlePatchUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(models.NewUserReads(users))
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.service.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return detail(c, fiber.StatusNotFound, userNotFound)
	}
	return c.JSON(models.NewUserRead(user))
}

// HandleCreateUser creates a new user. A taken username answers 400.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var draft models.UserCreate
	if err := bind(c, h.validate, &draft); err != nil {
		return respondError(c, err)
	}
	user, err := h.service.CreateUser(c.UserContext(), draft)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewUserRead(user))
}

// HandleReplaceUser overwrites every editable field; an omitted email is
// cleared.
func (h *UserHandler) HandleReplaceUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body models.UserUpdate
	if err := bind(c, h.validate, &body); err != nil {
		return respondError(c, err)
	}
	return h.update(c, id, body.Patch(), false)
}

// HandlePatchUser changes only the fields present in the body.
func (h *UserHandler) HandlePatchUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var patch models.UserPatch
	if err := bind(c, h.validate, &patch); err != nil {
		return respondError(c, err)
	}
	return h.update(c, id, patch, true)
}

func (h *UserHandler) update(c *fiber.Ctx, id uint, patch models.UserPatch, partial bool) error {
	user, err := h.service.UpdateUser(c.UserContext(), id, patch, partial)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return detail(c, fiber.StatusNotFound, userNotFound)
	}
	return c.JSON(models.NewUserRead(user))
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.service.DeleteUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return detail(c, fiber.StatusNotFound, userNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
