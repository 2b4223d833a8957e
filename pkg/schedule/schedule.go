// Package schedule runs recurring background tasks on fixed intervals.
//
//	schedule.Every(10).Minutes().Name("cart:purge").Run(purge)
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/putrawardana/warungsaji/pkg/logger"
)

// Task is a scheduled function. Tasks run on their own goroutine.
type Task func()

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
	mu        sync.Mutex
}

// Schedule configures one entry before registration.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every begins a builder for a task that runs every n units.
func Every(n int) *freqBuilder { return &freqBuilder{n: n} }

type freqBuilder struct{ n int }

func (f *freqBuilder) Seconds() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Second}}
}

func (f *freqBuilder) Minutes() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Minute}}
}

func (f *freqBuilder) Hours() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Hour}}
}

// WithoutOverlapping skips a tick while the previous run is still going.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Name sets the identifier used in logs and the schedule listing.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task. Nothing fires until Start.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn

	regMu.Lock()
	defer regMu.Unlock()
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, s.e)
}

// Start launches the dispatch loop. It checks due tasks once per second
// and exits when ctx is cancelled.
func Start(ctx context.Context) {
	logger.Info("schedule: started", "tasks", len(entries))

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			due := make([]*entry, 0, len(entries))
			for _, e := range entries {
				if e.lastRun.IsZero() || now.Sub(e.lastRun) >= e.interval {
					due = append(due, e)
				}
			}
			regMu.Unlock()

			for _, e := range due {
				dispatch(e)
			}
		}
	}
}

func dispatch(e *entry) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: run still in progress, skipping", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
		}()
		e.task()
	}()
}

// List reports registered entries as "<id>  [<interval>]" lines.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, e.interval))
	}
	return out
}
