package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/jetpack-ops/jetpack/pkg/util"
)

const syncStatusKeyPrefix = "jetpack:sync:status:"

// syncStatusTTL keeps finished job records around long enough for the admin
// panel to poll them.
const syncStatusTTL = 24 * time.Hour

// SyncJobState enumerates sync job lifecycle states.
type SyncJobState string

const (
	SyncStateQueued  SyncJobState = "QUEUED"
	SyncStateRunning SyncJobState = "RUNNING"
	SyncStateDone    SyncJobState = "DONE"
	SyncStateFailed  SyncJobState = "FAILED"
)

// SyncJob is one queued sync request.
type SyncJob struct {
	ID          string       `json:"id"`
	RequestedBy string       `json:"requested_by"`
	State       SyncJobState `json:"state"`
	Shipments   int          `json:"shipments,omitempty"`
	Orders      int          `json:"orders,omitempty"`
	Error       string       `json:"error,omitempty"`
	EnqueuedAt  time.Time    `json:"enqueued_at"`
	FinishedAt  *time.Time   `json:"finished_at,omitempty"`
}

// SyncService enqueues sync jobs onto a Redis list and tracks their status.
// The background worker is the sole consumer.
type SyncService struct {
	client   *redis.Client
	queueKey string
}

// NewSyncService builds the service.
func NewSyncService(client *redis.Client, queueKey string) *SyncService {
	return &SyncService{client: client, queueKey: queueKey}
}

// Enqueue schedules a sync run.
func (s *SyncService) Enqueue(ctx context.Context, requestedBy string) (*SyncJob, error) {
	if s.client == nil {
		return nil, apperrors.NewInternalError(nil)
	}

	job := &SyncJob{
		ID:          uuid.NewString(),
		RequestedBy: requestedBy,
		State:       SyncStateQueued,
		EnqueuedAt:  time.Now(),
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}

	if err := s.client.LPush(ctx, s.queueKey, raw).Err(); err != nil {
		return nil, err
	}
	if err := s.SaveStatus(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Dequeue blocks for up to timeout waiting for the next job.
func (s *SyncService) Dequeue(ctx context.Context, timeout time.Duration) (*SyncJob, error) {
	res, err := s.client.BRPop(ctx, timeout, s.queueKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// BRPop returns [key, value].
	var job SyncJob
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SaveStatus records the job's current state.
func (s *SyncService) SaveStatus(ctx context.Context, job *SyncJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, syncStatusKeyPrefix+job.ID, raw, syncStatusTTL).Err()
}

// GetStatus returns a job's last recorded state.
func (s *SyncService) GetStatus(ctx context.Context, jobID string) (*SyncJob, error) {
	raw, err := s.client.Get(ctx, syncStatusKeyPrefix+jobID).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NewNotFound("sync job", map[string]any{"job_id": jobID})
	}
	if err != nil {
		return nil, err
	}
	var job SyncJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
