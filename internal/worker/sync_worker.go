package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jetpack-ops/jetpack/internal/events"
	"github.com/jetpack-ops/jetpack/internal/service"
	"github.com/jetpack-ops/jetpack/internal/upstream"
)

// dequeueTimeout bounds each blocking pop so shutdown is noticed promptly.
const dequeueTimeout = 5 * time.Second

// SyncTrigger is the slice of the upstream client the worker needs.
type SyncTrigger interface {
	TriggerSync(ctx context.Context) (*upstream.SyncResult, error)
}

// SyncWorker drains the sync queue and runs one upstream sync per job.
type SyncWorker struct {
	sync       *service.SyncService
	trigger    SyncTrigger
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSyncWorker builds the worker.
func NewSyncWorker(syncService *service.SyncService, trigger SyncTrigger, dispatcher events.Dispatcher, logger *zap.Logger) *SyncWorker {
	return &SyncWorker{sync: syncService, trigger: trigger, dispatcher: dispatcher, logger: logger}
}

// Start runs the consume loop until the context is cancelled.
func (w *SyncWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SyncWorker) run(ctx context.Context) {
	w.logger.Info("sync worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sync worker stopped")
			return
		default:
		}

		job, err := w.sync.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Warn("sync dequeue failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}
		w.process(ctx, job)
	}
}

func (w *SyncWorker) process(ctx context.Context, job *service.SyncJob) {
	logger := w.logger.With(zap.String("job_id", job.ID))

	job.State = service.SyncStateRunning
	if err := w.sync.SaveStatus(ctx, job); err != nil {
		logger.Warn("sync status update failed", zap.Error(err))
	}

	result, err := w.trigger.TriggerSync(ctx)
	now := time.Now()
	job.FinishedAt = &now
	if err != nil {
		job.State = service.SyncStateFailed
		job.Error = err.Error()
		logger.Error("sync run failed", zap.Error(err))
	} else {
		job.State = service.SyncStateDone
		job.Shipments = result.Shipments
		job.Orders = result.Orders
		logger.Info("sync run finished",
			zap.Int("shipments", result.Shipments),
			zap.Int("orders", result.Orders))
	}

	if err := w.sync.SaveStatus(ctx, job); err != nil {
		logger.Warn("sync status update failed", zap.Error(err))
	}

	_ = w.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventSyncCompleted,
		ActorID: job.RequestedBy,
		Payload: events.SyncCompletedPayload{
			JobID:     job.ID,
			Shipments: job.Shipments,
			Orders:    job.Orders,
			Failed:    job.State == service.SyncStateFailed,
		},
	})
}
