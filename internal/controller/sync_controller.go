package controller

import (
	"time"

	"swipenotes/internal/common"
	"swipenotes/internal/dto"
	"swipenotes/internal/entity"
	"swipenotes/internal/pkg/serverutils"
	"swipenotes/internal/repository/memory"
	"swipenotes/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISyncController interface {
	RegisterRoutes(r fiber.Router)
	Trigger(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Conflicts(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	UpdateSettings(ctx *fiber.Ctx) error
}

type syncController struct {
	syncService      service.ISyncService
	schedulerService service.ISchedulerService
	store            *memory.NoteStore
}

func NewSyncController(
	syncService service.ISyncService,
	schedulerService service.ISchedulerService,
	store *memory.NoteStore,
) ISyncController {
	return &syncController{
		syncService:      syncService,
		schedulerService: schedulerService,
		store:            store,
	}
}

func (c *syncController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sync/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Trigger)
	h.Get("status", c.Status)
	h.Get("conflicts", c.Conflicts)
	h.Post("conflicts/:id/resolve", c.Resolve)
	h.Put("settings", c.UpdateSettings)
}

func (c *syncController) Trigger(ctx *fiber.Ctx) error {
	settings := c.syncService.Settings()
	if !settings.Enabled {
		return common.ErrSyncDisabled
	}
	if settings.User == nil {
		return common.ErrNoUser
	}
	if c.syncService.Status() == entity.EngineStatusSyncing {
		// The engine would no-op anyway; tell the caller why.
		return common.ErrSyncInFlight
	}

	result := c.syncService.SyncNotes(ctx.Context())

	res := dto.SyncTriggerResponse{
		Success:   result.Success,
		Conflicts: make([]dto.ConflictResponse, 0, len(result.Conflicts)),
	}
	for _, conflict := range result.Conflicts {
		res.Conflicts = append(res.Conflicts, toConflictResponse(conflict))
	}
	return ctx.JSON(serverutils.SuccessResponse("Sync finished", res))
}

func (c *syncController) Status(ctx *fiber.Ctx) error {
	settings := c.syncService.Settings()

	res := dto.SyncStatusResponse{
		Status:           string(c.syncService.Status()),
		Enabled:          settings.Enabled,
		AutoSync:         settings.AutoSync,
		SyncIntervalMs:   settings.SyncInterval.Milliseconds(),
		LastSyncAt:       settings.LastSyncAt,
		PendingConflicts: len(c.syncService.PendingConflicts()),
		UnsyncedNotes:    len(c.store.NeedingUpload()),
	}
	if settings.User != nil {
		res.UserId = settings.User.Id
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get sync status", res))
}

func (c *syncController) Conflicts(ctx *fiber.Ctx) error {
	conflicts := c.syncService.PendingConflicts()
	res := make([]dto.ConflictResponse, 0, len(conflicts))
	for _, conflict := range conflicts {
		res = append(res, toConflictResponse(conflict))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list conflicts", res))
}

func (c *syncController) Resolve(ctx *fiber.Ctx) error {
	var req dto.ResolveConflictRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	resolved, err := c.syncService.ResolveConflict(ctx.Context(), ctx.Params("id"), *req.UseLocal)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resolve conflict", toNoteResponse(resolved)))
}

func (c *syncController) UpdateSettings(ctx *fiber.Ctx) error {
	var req dto.UpdateSyncSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	settings := c.syncService.Settings()
	autoSync := settings.AutoSync
	interval := settings.SyncInterval
	if req.AutoSync != nil {
		autoSync = *req.AutoSync
	}
	if req.SyncIntervalMs != nil {
		interval = time.Duration(*req.SyncIntervalMs) * time.Millisecond
	}

	c.syncService.SetAutoSync(autoSync, interval)
	c.schedulerService.ApplySettings()

	return ctx.JSON(serverutils.SuccessResponse("Success update sync settings", nil))
}

func toConflictResponse(conflict *entity.NoteConflict) dto.ConflictResponse {
	return dto.ConflictResponse{
		NoteId: conflict.Note.Id,
		Local:  toNoteResponse(conflict.Note),
		Server: toNoteResponse(conflict.ServerNote),
	}
}

func toNoteResponse(n *entity.Note) dto.NoteResponse {
	return dto.NoteResponse{
		Id:               n.Id,
		Title:            n.Title,
		Content:          n.Content,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
		ParentId:         n.ParentId,
		OriginalParentId: n.OriginalParentId,
		IsArchived:       n.IsArchived,
		SyncStatus:       string(n.SyncStatus),
		LastSyncedAt:     n.LastSyncedAt,
	}
}
