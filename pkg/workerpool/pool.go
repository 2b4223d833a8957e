// Package workerpool bounds concurrent background work. The analytics
// tracker runs its store writes through a Pool so a burst of storefront
// traffic cannot fan out into unbounded goroutines; when the pool is
// saturated Submit fails fast and the caller drops the write.
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull means every worker is busy and the task buffer is at
// capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed means Shutdown has already been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}
}

// New starts a pool with the given worker count. The task buffer holds
// twice that, so short bursts queue instead of dropping.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	p := &Pool{
		tasks:   make(chan func(), workers*2),
		closeCh: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues the task without blocking. ErrPoolFull when the
// buffer is at capacity, ErrPoolClosed after Shutdown.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until a buffer slot frees up or the pool closes.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case p.tasks <- task:
		return nil
	}
}

// Shutdown stops intake and waits for queued tasks to finish. Safe to
// call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closeCh)
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		runTask(task)
	}
}

// runTask isolates panics so one bad task cannot take a worker down.
func runTask(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
