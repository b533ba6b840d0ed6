package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/worker"
)

// searcher routes pool results back to the request that submitted them.
type searcher struct {
	pool *worker.Pool
	done chan struct{}

	// closeMu is held shared while submitting, so close never closes the
	// job channel under a sender.
	closeMu sync.RWMutex
	closed  bool

	mu      sync.Mutex
	pending map[string]chan worker.Result
}

func newSearcher(pool *worker.Pool) *searcher {
	s := &searcher{
		pool:    pool,
		done:    make(chan struct{}),
		pending: make(map[string]chan worker.Result),
	}
	pool.Start()
	go s.dispatch()
	return s
}

func (s *searcher) dispatch() {
	defer close(s.done)
	for r := range s.pool.Results() {
		s.mu.Lock()
		ch, ok := s.pending[r.ID]
		delete(s.pending, r.ID)
		s.mu.Unlock()
		if ok {
			ch <- r
		}
	}
}

// search runs job on the pool and waits for its result or for ctx.
func (s *searcher) search(ctx context.Context, job worker.Job) (worker.Result, error) {
	job.ID = uuid.New().String()
	ch := make(chan worker.Result, 1)

	s.mu.Lock()
	s.pending[job.ID] = ch
	s.mu.Unlock()

	s.closeMu.RLock()
	if s.closed {
		s.closeMu.RUnlock()
		s.forget(job.ID)
		return worker.Result{}, errors.ErrPoolStopped
	}
	s.pool.Submit(job)
	s.closeMu.RUnlock()

	select {
	case r := <-ch:
		return r, nil
	case <-ctx.Done():
		s.forget(job.ID)
		return worker.Result{}, ctx.Err()
	}
}

func (s *searcher) forget(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

func (s *searcher) close() {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return
	}
	s.closed = true
	s.closeMu.Unlock()

	s.pool.Stop()
	s.pool.Close()
	<-s.done
}
