package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/internal/infrastructure/audit"
)

// RecorderConfig controls how the audit queue is drained.
type RecorderConfig struct {
	FlushInterval time.Duration
	QueueSize     int
}

// AuditRecorder decouples request handling from audit persistence: events go
// into an in-memory queue and a scheduled job flushes them to the BoltDB log.
// Recording never blocks a request; under backpressure events are dropped and
// counted.
type AuditRecorder struct {
	store    *audit.Store
	queue    chan domain.AuditEvent
	cron     *cron.Cron
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	dropped int64
}

func NewAuditRecorder(store *audit.Store, cfg RecorderConfig, logger *zap.Logger) *AuditRecorder {
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 30 * time.Second
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditRecorder{
		store:    store,
		queue:    make(chan domain.AuditEvent, cfg.QueueSize),
		cron:     cron.New(),
		interval: cfg.FlushInterval,
		logger:   logger,
	}
}

// Start schedules the periodic flush.
func (r *AuditRecorder) Start() error {
	if _, err := r.cron.AddFunc(fmt.Sprintf("@every %s", r.interval), r.flush); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the scheduler and flushes whatever is still queued.
func (r *AuditRecorder) Stop(ctx context.Context) {
	stopped := r.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
	r.flush()
}

// Record enqueues an event without blocking the caller.
func (r *AuditRecorder) Record(ctx context.Context, event domain.AuditEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	select {
	case r.queue <- event:
	default:
		r.mu.Lock()
		r.dropped++
		dropped := r.dropped
		r.mu.Unlock()
		r.logger.Warn("audit queue full, event dropped", zap.Int64("dropped_total", dropped))
	}
}

// Dropped returns how many events were lost to backpressure.
func (r *AuditRecorder) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

func (r *AuditRecorder) flush() {
	var batch []domain.AuditEvent
	for {
		select {
		case event := <-r.queue:
			batch = append(batch, event)
		default:
			if len(batch) == 0 {
				return
			}
			if err := r.store.Append(batch); err != nil {
				r.logger.Error("audit flush failed", zap.Int("events", len(batch)), zap.Error(err))
				return
			}
			r.logger.Debug("audit events flushed", zap.Int("events", len(batch)))
			return
		}
	}
}
