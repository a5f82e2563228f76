// Package inmem is a map-backed jobstore.Store, grounded on
// server/dao/inmem: a mutex-guarded map plus a secondary creation-order
// index, since jobs are small and the caller needs stable listing order.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/primrec/internal/jobstore"
	"github.com/google/uuid"
)

type store struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]jobstore.Job
}

// New returns an empty in-memory jobstore.Store.
func New() jobstore.Store {
	return &store{jobs: make(map[uuid.UUID]jobstore.Job)}
}

func (s *store) Create(ctx context.Context, job jobstore.Job) (jobstore.Job, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return jobstore.Job{}, fmt.Errorf("could not generate ID: %w", err)
	}

	job.ID = id
	if job.Created.IsZero() {
		job.Created = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = job
	return job, nil
}

func (s *store) GetByID(ctx context.Context, id uuid.UUID) (jobstore.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return jobstore.Job{}, jobstore.ErrNotFound
	}
	return job, nil
}

func (s *store) GetAll(ctx context.Context) ([]jobstore.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]jobstore.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		all = append(all, job)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Created.Before(all[j].Created) })
	return all, nil
}

func (s *store) Update(ctx context.Context, id uuid.UUID, job jobstore.Job) (jobstore.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return jobstore.Job{}, jobstore.ErrNotFound
	}

	job.ID = id
	s.jobs[id] = job
	return job, nil
}

func (s *store) Close() error {
	return nil
}
