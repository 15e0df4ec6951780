package service

import (
	"context"
	"sync"
	"time"

	"swipenotes/internal/pkg/logger"
)

// ISchedulerService triggers full sync passes on a repeating timer. It is an
// explicit long-lived object constructed once per session; callers hold a
// reference instead of relying on ambient global state. Timer ticks share the
// engine's single-flight latch with manual triggers, so the two never run a
// pass concurrently.
type ISchedulerService interface {
	Start(interval time.Duration)
	Stop()
	Running() bool
	// ApplySettings reconciles the timer with the current sync settings:
	// starts it, stops it, or restarts it with a changed interval.
	ApplySettings()
}

type schedulerService struct {
	syncService ISyncService
	logger      logger.ILogger

	mu       sync.Mutex
	ticker   *time.Ticker
	stop     chan struct{}
	interval time.Duration
}

func NewSchedulerService(syncService ISyncService, sysLogger logger.ILogger) ISchedulerService {
	return &schedulerService{
		syncService: syncService,
		logger:      sysLogger,
	}
}

// Start launches the repeating timer. Starting while running restarts with
// the new interval; two timers never run concurrently.
func (s *schedulerService) Start(interval time.Duration) {
	if interval <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.interval = interval
	s.ticker = time.NewTicker(interval)
	s.stop = make(chan struct{})

	go s.run(s.ticker, s.stop)

	s.logger.Info("scheduler", "auto-sync started", map[string]interface{}{
		"interval_ms": interval.Milliseconds(),
	})
}

func (s *schedulerService) run(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-ticker.C:
			s.syncService.SyncNotes(context.Background())
		case <-stop:
			return
		}
	}
}

func (s *schedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *schedulerService) stopLocked() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.ticker = nil
	s.stop = nil
	s.logger.Info("scheduler", "auto-sync stopped", nil)
}

func (s *schedulerService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticker != nil
}

func (s *schedulerService) ApplySettings() {
	settings := s.syncService.Settings()
	wantRunning := settings.Enabled && settings.AutoSync && settings.User != nil

	s.mu.Lock()
	running := s.ticker != nil
	sameInterval := s.interval == settings.SyncInterval
	s.mu.Unlock()

	switch {
	case wantRunning && (!running || !sameInterval):
		s.Start(settings.SyncInterval)
	case !wantRunning && running:
		s.Stop()
	}
}
