package handlers

import (
	"github.com/gofiber/fiber/v2"

	"journal/internal/models"
	"journal/internal/services"
	"journal/internal/validation"
)

// NoteHandler handles HTTP requests for notes.
type NoteHandler struct {
	service  *services.NoteService
	validate *validation.Validator
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service *services.NoteService, validate *validation.Validator) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the note routes, including the notes of a
// single user under /users/:id/notes.
func (h *NoteHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users/:id/notes", h.HandleListUserNotes)

	noteRoutes := router.Group("/notes")
	noteRoutes.Get("/", h.HandleListNotes)
	noteRoutes.Get("/:id", h.HandleGetNote)
	noteRoutes.Post("/", h.HandleCreateNote)
	noteRoutes.Put("/:id", h.HandleReplaceNote)
	noteRoutes.Patch("/:id", h.HandlePatchNote)
	noteRoutes.Delete("/:id", h.HandleDeleteNote)
}

func (h *NoteHandler) HandleListNotes(c *fiber.Ctx) error {
	notes, err := h.service.ListNotes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(models.NewNoteReads(notes))
}

func (h *NoteHandler) HandleListUserNotes(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	notes, err := h.service.ListUserNotes(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.NewNoteReads(notes))
}

func (h *NoteHandler) HandleGetNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	note, err := h.service.GetNote(c.UserContext(), id)
	if err != nil {
		return err
	}
	if note == nil {
		return detail(c, fiber.StatusNotFound, noteNotFound)
	}
	return c.JSON(models.NewNoteRead(note))
}

func (h *NoteHandler) HandleCreateNote(c *fiber.Ctx) error {
	var draft models.NoteCreate
	if err := bind(c, h.validate, &draft); err != nil {
		return respondError(c, err)
	}
	note, err := h.service.CreateNote(c.UserContext(), draft)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewNoteRead(note))
}

func (h *NoteHandler) HandleReplaceNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body models.NoteUpdate
	if err := bind(c, h.validate, &body); err != nil {
		return respondError(c, err)
	}
	return h.update(c, id, body.Patch(), false)
}

func (h *NoteHandler) HandlePatchNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var patch models.NotePatch
	if err := bind(c, h.validate, &patch); err != nil {
		return respondError(c, err)
	}
	return h.update(c, id, patch, true)
}

func (h *NoteHandler) update(c *fiber.Ctx, id uint, patch models.NotePatch, partial bool) error {
	note, err := h.service.UpdateNote(c.UserContext(), id, patch, partial)
	if err != nil {
		return respondError(c, err)
	}
	if note == nil {
		return detail(c, fiber.StatusNotFound, noteNotFound)
	}
	return c.JSON(models.NewNoteRead(note))
}

func (h *NoteHandler) HandleDeleteNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	note, err := h.service.DeleteNote(c.UserContext(), id)
	if err != nil {
		return err
	}
	if note == nil {
		return detail(c, fiber.StatusNotFound, noteNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
