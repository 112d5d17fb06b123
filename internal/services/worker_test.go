package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker() *worker {
	w := NewWorker(nil, nil, nil, nil, 1, time.Second)
	return w.(*worker)
}

func TestWorkerEnqueueDeduplicatesInFlightJobs(t *testing.T) {
	w := newTestWorker()
	profileID := uuid.New()

	// The poller finding a row still sitting in the queue must not
	// produce a second copy of the job.
	w.EnqueueExtraction(profileID)
	w.EnqueueExtraction(profileID)

	assert.Len(t, w.jobQueue, 1)
}

func TestWorkerEnqueueAcceptsSameIDAfterCompletion(t *testing.T) {
	w := newTestWorker()
	profileID := uuid.New()

	w.EnqueueExtraction(profileID)
	job := <-w.jobQueue
	w.release(job.id)

	w.EnqueueExtraction(profileID)
	assert.Len(t, w.jobQueue, 1)
}

func TestWorkerEnqueueDoesNotBlockWhenQueueFull(t *testing.T) {
	w := newTestWorker()

	capacity := cap(w.jobQueue)
	for i := 0; i < capacity; i++ {
		w.EnqueueExtraction(uuid.New())
	}
	require.Len(t, w.jobQueue, capacity)

	overflow := uuid.New()
	done := make(chan struct{})
	go func() {
		w.EnqueueExtraction(overflow)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}

	// The deferred job is released, so the poller can hand it back in.
	assert.Len(t, w.jobQueue, capacity)
	w.mu.Lock()
	_, held := w.inFlight[overflow]
	w.mu.Unlock()
	assert.False(t, held)
}
