// Package jobstore defines the persistence contract for Busy-Beaver sweep
// jobs (spec §4.H, surfaced over HTTP by internal/searchapi). It follows the
// repository-interface-plus-driver-packages shape of server/dao: one Store
// interface, one map-backed implementation for tests and small deployments
// (jobstore/inmem), and one modernc.org/sqlite-backed implementation for
// anything that must survive a restart (jobstore/sqlite).
package jobstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a job ID has no matching record.
	ErrNotFound = errors.New("the requested job was not found")
)

// Status is the lifecycle state of a sweep job. Jobs in this reference
// implementation run synchronously on creation, so in practice a caller only
// ever observes StatusCompleted or StatusFailed, but the field exists for
// drivers that choose to queue work.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Job is one Busy-Beaver sweep request and, once run, its result.
type Job struct {
	ID         uuid.UUID
	Size       int
	ScanRange  int
	StepBudget int
	Status     Status

	Best          int
	Winners       []string // printed program text, per spec §4.B
	OverflowCount int
	FailureReason string

	Created   time.Time
	Completed time.Time
}

// Store persists Jobs. Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, job Job) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	GetAll(ctx context.Context) ([]Job, error)
	Update(ctx context.Context, id uuid.UUID, job Job) (Job, error)
	Close() error
}
