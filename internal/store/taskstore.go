package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/JesperIV/TasX/internal/model"
)

// TaskStore is the in-memory authority over the live task collection. All
// mutation goes through ReplaceAll; every successful swap schedules one
// persistence write. Writes run on a dedicated goroutine fed by a depth-1
// queue that always holds the newest collection, so a burst of mutations
// under slow I/O collapses to the latest state and the final stored value
// always matches the final in-memory value.
type TaskStore struct {
	gateway Gateway
	log     *slog.Logger

	mu    sync.RWMutex
	tasks []model.Task
	ready bool

	qmu     sync.Mutex
	closed  bool
	pending chan []model.Task
	done    chan struct{}

	closeOnce sync.Once
}

// NewTaskStore creates a TaskStore over the given gateway and starts its
// write loop. The collection is empty until Load completes.
func NewTaskStore(gateway Gateway, log *slog.Logger) *TaskStore {
	if log == nil {
		log = slog.Default()
	}

	s := &TaskStore{
		gateway: gateway,
		log:     log,
		tasks:   []model.Task{},
		pending: make(chan []model.Task, 1),
		done:    make(chan struct{}),
	}

	go s.writeLoop()
	return s
}

// Load performs the one-time startup load, replacing the in-memory
// collection with the persisted one. Read failures are logged and leave the
// collection empty; the store is ready either way.
func (s *TaskStore) Load(ctx context.Context) {
	tasks, err := s.gateway.LoadTasks(ctx)
	if err != nil {
		s.log.Error("loading tasks from storage", "error", err)
		tasks = []model.Task{}
	}

	s.mu.Lock()
	s.tasks = tasks
	s.ready = true
	s.mu.Unlock()
}

// Ready reports whether the startup load has completed.
func (s *TaskStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// GetAll returns a snapshot of the current collection in insertion order.
func (s *TaskStore) GetAll() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ReplaceAll atomically swaps the entire collection and schedules a
// persistence write of the new state. Readers see either the old or the new
// collection in full, never a partial edit.
func (s *TaskStore) ReplaceAll(tasks []model.Task) {
	s.Mutate(func([]model.Task) ([]model.Task, bool) {
		return tasks, true
	})
}

// Mutate applies fn to a snapshot of the current collection and commits the
// result as a single atomic replacement, holding the store lock across the
// whole read-compute-swap so concurrent mutations cannot lose each other's
// updates. fn reports whether anything changed; returning false commits
// nothing and schedules no write. fn must not call back into the store.
func (s *TaskStore) Mutate(fn func(current []model.Task) ([]model.Task, bool)) {
	s.mu.Lock()

	snapshot := make([]model.Task, len(s.tasks))
	copy(snapshot, s.tasks)

	next, ok := fn(snapshot)
	if !ok {
		s.mu.Unlock()
		return
	}

	committed := make([]model.Task, len(next))
	copy(committed, next)
	s.tasks = committed
	s.mu.Unlock()

	s.enqueue(committed)
}

// enqueue hands a snapshot to the write loop, superseding any pending
// write that has not started yet. After Close it is a no-op.
func (s *TaskStore) enqueue(snapshot []model.Task) {
	s.qmu.Lock()
	defer s.qmu.Unlock()

	if s.closed {
		return
	}

	for {
		select {
		case s.pending <- snapshot:
			return
		default:
		}

		// Queue full: drop the stale pending value and try again.
		select {
		case <-s.pending:
		default:
		}
	}
}

// writeLoop persists snapshots as they arrive. Write failures are logged
// and swallowed: the mutation simply was not durable.
func (s *TaskStore) writeLoop() {
	for snapshot := range s.pending {
		if err := s.gateway.SaveTasks(context.Background(), snapshot); err != nil {
			s.log.Error("saving tasks to storage", "error", err)
		}
	}
	close(s.done)
}

// Close flushes any pending write and stops the write loop. Mutations
// arriving after Close still update the in-memory collection but are no
// longer persisted.
func (s *TaskStore) Close() {
	s.closeOnce.Do(func() {
		s.qmu.Lock()
		s.closed = true
		close(s.pending)
		s.qmu.Unlock()
		<-s.done
	})
}
