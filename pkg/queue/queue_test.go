package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putrawardana/warungsaji/pkg/queue"
)

var handled atomic.Int32

type pingJob struct {
	Val string
}

func (j *pingJob) Handle() error {
	handled.Add(1)
	return nil
}

type brokenJob struct{}

func (j *brokenJob) Handle() error {
	return errors.New("always fails")
}

func init() {
	queue.StartWorkers(context.Background(), 2)
	queue.Register("*queue_test.pingJob", func() queue.Job { return &pingJob{} })
	queue.Register("*queue_test.brokenJob", func() queue.Job { return &brokenJob{} })
}

func TestDispatchRunsJob(t *testing.T) {
	before := handled.Load()
	require.NoError(t, queue.Dispatch(&pingJob{Val: "hello"}))

	assert.Eventually(t, func() bool {
		return handled.Load() > before
	}, time.Second, 10*time.Millisecond)
}

func TestExhaustedRetriesLandInFailedJobs(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	require.NoError(t, queue.Dispatch(&brokenJob{}))

	// one attempt plus the 1s backoff
	assert.Eventually(t, func() bool {
		return len(queue.FailedJobs()) > 0
	}, 3*time.Second, 50*time.Millisecond)
}

func TestDispatchIsSafeConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, queue.Dispatch(&pingJob{Val: "c"}))
		}()
	}
	wg.Wait()
}
