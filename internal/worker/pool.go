// Package worker provides a worker pool that runs move searches in the
// background.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/search"
)

// Job asks for a move on Board. Boards are immutable, so a job may share
// its board with the submitter.
type Job struct {
	ID       string          // Caller tag echoed in the result
	Ctx      context.Context // Cancels the search between root moves; nil means no deadline
	Board    *engine.Board
	Strategy string // Registered search strategy name
	Depth    int
}

// Result carries the outcome of one Job.
type Result struct {
	ID    string
	Move  chess.Move // NullMoveSentinel when no move was chosen
	Stats search.Stats
	Err   error
}

// SearchFunc is the function signature for running a job.
type SearchFunc func(job Job) Result

// Search runs job with a fresh strategy instance, so concurrent workers
// never share search state.
func Search(job Job) Result {
	ctx := job.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := search.New(job.Strategy)
	if err != nil {
		return Result{ID: job.ID, Move: chess.NullMoveSentinel, Err: err}
	}
	m, err := s.ChooseMove(ctx, job.Board, job.Depth)
	return Result{ID: job.ID, Move: m, Stats: s.Stats(), Err: err}
}

// Pool manages a pool of search workers.
type Pool struct {
	numWorkers int
	bufferSize int
	jobs       chan Job
	results    chan Result
	searchFunc SearchFunc
	wg         sync.WaitGroup
	stopFlag   int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// WithSearchFunc replaces Search as the job runner.
func WithSearchFunc(fn SearchFunc) PoolOption {
	return func(p *Pool) {
		if fn != nil {
			p.searchFunc = fn
		}
	}
}

// NewPool creates a pool with the given number of workers and buffer size.
// A nil searchFunc selects Search.
func NewPool(numWorkers, bufferSize int, searchFunc SearchFunc) *Pool {
	return NewPoolWithOptions(WithWorkers(numWorkers), WithBufferSize(bufferSize), WithSearchFunc(searchFunc))
}

// NewPoolWithOptions creates a pool using functional options.
// Default: 1 worker, buffer size of 8, jobs run by Search.
func NewPoolWithOptions(opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 8,
		searchFunc: Search,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.jobs = make(chan Job, p.bufferSize)
	p.results = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker runs jobs until the job channel is closed. Once the pool is
// stopped, queued jobs are answered with ErrPoolStopped instead of being
// searched, so every submitted job still yields exactly one result.
func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobs {
		if p.IsStopped() {
			p.results <- Result{ID: job.ID, Move: chess.NullMoveSentinel, Err: errors.ErrPoolStopped}
			continue
		}
		p.results <- p.searchFunc(job)
	}
}

// Submit queues a job. This may block if the job buffer is full.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// TrySubmit attempts to queue a job without blocking.
// Returns false if the job buffer is full or the pool is stopped.
func (p *Pool) TrySubmit(job Job) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop searching. Queued jobs are still answered.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the job channel and waits for all workers to finish, then
// closes the result channel. Results must be drained concurrently.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
