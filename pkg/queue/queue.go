// Package queue runs background jobs through a pluggable driver. The
// in-memory driver is the default; the Redis driver survives restarts
// and feeds standalone worker processes (the queue:work command).
//
//	queue.Register(fmt.Sprintf("%T", &OrderStatsJob{}), func() queue.Job {
//	    return &OrderStatsJob{}
//	})
//	queue.Dispatch(&OrderStatsJob{OrderID: id})
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/putrawardana/warungsaji/pkg/logger"
)

// Job is a unit of background work.
type Job interface {
	Handle() error
}

// FailedJob records a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

// Driver stores serialized jobs. Pop blocks until a job is ready or
// returns (nil, nil) on a poll timeout.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// envelope wraps a job payload with the type name workers use to pick
// the right constructor.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job
	failed   []FailedJob
	maxRetry int
}

var std = &manager{
	registry: map[string]func() Job{},
	maxRetry: 3,
	driver:   NewMemoryDriver(),
}

// SetDriver swaps the storage backend. Call before StartWorkers.
func SetDriver(d Driver) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.driver = d
}

// SetMaxRetry changes how many attempts a job gets before it lands in
// the failed list.
func SetMaxRetry(n int) { std.maxRetry = n }

// Register maps a job type name to its constructor so workers can
// rebuild the job from its serialized payload. Call once per job type
// at boot.
func Register(name string, factory func() Job) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.registry[name] = factory
}

// Dispatch serializes the job and pushes it onto the queue.
func Dispatch(job Job) error {
	name := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal %s: %w", name, err)
	}
	raw, err := json.Marshal(envelope{Type: name, Payload: payload})
	if err != nil {
		return fmt.Errorf("queue: marshal envelope: %w", err)
	}

	std.mu.RLock()
	d := std.driver
	std.mu.RUnlock()
	return d.Push(raw)
}

// DispatchAfter pushes the job after a delay. The delay lives in this
// process; a restart before it elapses loses the job.
func DispatchAfter(job Job, delay time.Duration) {
	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
	}()
}

// StartWorkers launches n worker goroutines that pull and run jobs
// until ctx is cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go worker(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func worker(ctx context.Context) {
	for ctx.Err() == nil {
		std.mu.RLock()
		d := std.driver
		std.mu.RUnlock()

		raw, err := d.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw == nil {
			continue
		}
		run(raw)
	}
}

func run(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	std.mu.RLock()
	factory, ok := std.registry[env.Type]
	std.mu.RUnlock()
	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= std.maxRetry; attempt++ {
		if lastErr = job.Handle(); lastErr == nil {
			logger.Info("queue: job processed", "type", env.Type)
			return
		}
		logger.Warn("queue: job failed",
			"type", env.Type, "attempt", attempt, "error", lastErr)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	std.persistFailed(job, env.Type, lastErr, std.maxRetry)
	logger.Error("queue: job exhausted retries", "type", env.Type, "error", lastErr)
}

// FailedJobs returns a copy of the failed job list.
func FailedJobs() []FailedJob {
	std.mu.RLock()
	defer std.mu.RUnlock()
	out := make([]FailedJob, len(std.failed))
	copy(out, std.failed)
	return out
}
