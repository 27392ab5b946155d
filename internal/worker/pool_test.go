package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	id      int
	fail    bool
	counter *int32
}

type testResult struct {
	id  int
	err error
}

func (r *testResult) GetError() error { return r.err }

func (j *testJob) Execute(ctx context.Context) Result {
	if j.counter != nil {
		atomic.AddInt32(j.counter, 1)
	}
	if j.fail {
		return &testResult{id: j.id, err: errors.New("job failed")}
	}
	return &testResult{id: j.id}
}

func TestPool_AllJobsExecute(t *testing.T) {
	var counter int32
	pool := NewPool(3)
	pool.Start()

	for i := 0; i < 10; i++ {
		pool.Submit(&testJob{id: i, counter: &counter})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Errorf("expected 10 results, got %d", len(results))
	}
	if atomic.LoadInt32(&counter) != 10 {
		t.Errorf("expected 10 executions, got %d", counter)
	}
}

func TestPool_ErrorsAreResults(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&testJob{id: 0})
	pool.Submit(&testJob{id: 1, fail: true})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}
}

func TestPool_ManyJobsSubmittedBeforeWait(t *testing.T) {
	// A single worker has room for 2 queued jobs and 2 buffered results;
	// submitting well past that must not block Submit before Wait runs
	var counter int32
	pool := NewPool(1)
	pool.Start()

	const jobs = 20
	done := make(chan []Result, 1)
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&testJob{id: i, counter: &counter})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != jobs {
			t.Errorf("expected %d results, got %d", jobs, len(results))
		}
		if atomic.LoadInt32(&counter) != jobs {
			t.Errorf("expected %d executions, got %d", jobs, counter)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("pool stalled with more jobs outstanding than the channel buffers hold")
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&testJob{id: 0})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

type slowJob struct{}

func (j *slowJob) Execute(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return &testResult{err: ctx.Err()}
	case <-time.After(5 * time.Second):
		return &testResult{}
	}
}

func TestPool_ShutdownCancelsJobs(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Submit(&slowJob{})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not cancel the running job")
	}
}
