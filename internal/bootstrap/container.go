package bootstrap

import (
	"log"

	"swipenotes/internal/config"
	"swipenotes/internal/controller"
	"swipenotes/internal/entity"
	"swipenotes/internal/pkg/logger"
	"swipenotes/internal/repository/memory"
	"swipenotes/internal/repository/unitofwork"
	"swipenotes/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	NoteController controller.INoteController
	SyncController controller.ISyncController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	SchedulerService service.ISchedulerService

	// Shared infrastructure
	NoteStore *memory.NoteStore
	Logger    logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Local Store
	noteStore, err := memory.NewNoteStore(cfg.Store.Path)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open local note store: %v", err)
	}
	settingsStore := memory.NewSettingsStore(cfg.Store.SettingsPath)

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(cfg.Sync.EventTopic, pubSub)

	eventLogger := logger.NewIsolatedLogger("logs/sync_events.log")
	consumerService := service.NewConsumerService(pubSub, cfg.Sync.EventTopic, eventLogger)

	// 4. Services
	identityService := service.NewIdentityService()

	settings := entity.SyncSettings{
		Enabled:      cfg.Sync.Enabled,
		AutoSync:     cfg.Sync.AutoSync,
		SyncInterval: cfg.Sync.Interval,
	}
	syncService := service.NewSyncService(
		uowFactory,
		noteStore,
		settingsStore,
		identityService,
		publisherService,
		sysLogger,
		settings,
		cfg.Sync.CallTimeout,
	)

	schedulerService := service.NewSchedulerService(syncService, sysLogger)
	noteService := service.NewNoteService(noteStore)
	authService := service.NewAuthService(syncService, identityService, cfg.App.JwtSecret)

	// 5. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		NoteController:   controller.NewNoteController(noteService),
		SyncController:   controller.NewSyncController(syncService, schedulerService, noteStore),
		ConsumerService:  consumerService,
		SchedulerService: schedulerService,
		NoteStore:        noteStore,
		Logger:           sysLogger,
	}
}
