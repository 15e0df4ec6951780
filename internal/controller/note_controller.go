package controller

import (
	"swipenotes/internal/dto"
	"swipenotes/internal/pkg/serverutils"
	"swipenotes/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	NestingLevel(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Put(":id/move", c.Move)
	h.Put(":id/archive", c.Archive)
	h.Delete(":id", c.Delete)
	h.Get(":id/level", c.NestingLevel)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(&req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create note", res))
}

// List returns the top-level view by default; ?view=archived returns the
// archive, ?parent_id=<id> returns active children of that note.
func (c *noteController) List(ctx *fiber.Ctx) error {
	if parentId := ctx.Query("parent_id"); parentId != "" {
		return ctx.JSON(serverutils.SuccessResponse("Success list notes", c.noteService.ChildrenOf(parentId)))
	}
	if ctx.Query("view") == "archived" {
		return ctx.JSON(serverutils.SuccessResponse("Success list notes", c.noteService.Archived()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list notes", c.noteService.TopLevel()))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	res, err := c.noteService.Show(ctx.Params("id"))
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "note not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := c.noteService.Update(ctx.Params("id"), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update note", nil))
}

func (c *noteController) Move(ctx *fiber.Ctx) error {
	var req dto.MoveNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := c.noteService.Move(ctx.Params("id"), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success move note", nil))
}

func (c *noteController) Archive(ctx *fiber.Ctx) error {
	if err := c.noteService.Archive(ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success archive note", nil))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	cascade := ctx.Query("cascade") == "true"
	if err := c.noteService.Delete(ctx.Params("id"), cascade); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete note", nil))
}

func (c *noteController) NestingLevel(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get nesting level",
		c.noteService.NestingLevel(ctx.Params("id"))))
}
