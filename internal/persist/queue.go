package persist

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/kdimtricp/trafficwatch/internal/models"
)

// Sink is the durable store the worker writes to. Writes may be slow or
// fail; the queue exists so the frame path never waits on one.
type Sink interface {
	Insert(ctx context.Context, d *models.Detection) error
}

var (
	ErrQueueClosed = errors.New("persist: queue closed")
	ErrQueueFull   = errors.New("persist: queue full")
)

// Queue decouples detection production from store latency. Enqueue appends
// without ever waiting on a write; a single background worker drains tasks
// in FIFO order, so store writes preserve emission order.
type Queue struct {
	sink  Sink
	tasks chan *models.Detection
	done  chan struct{}

	mu     sync.Mutex
	closed bool

	written atomic.Int64
	failed  atomic.Int64
}

func NewQueue(sink Sink, capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Queue{
		sink:  sink,
		tasks: make(chan *models.Detection, capacity),
		done:  make(chan struct{}),
	}
}

// Start launches the background worker. Call exactly once.
func (q *Queue) Start() {
	go q.run()
}

// run blocks on the task channel until Shutdown closes it; channel close is
// the cancellation signal, so there is no poll interval to tune. A write in
// progress always completes before the worker exits.
func (q *Queue) run() {
	defer close(q.done)

	for d := range q.tasks {
		if err := q.sink.Insert(context.Background(), d); err != nil {
			// Not retried: the event is dropped after logging. A retry with
			// backoff or a dead-letter sink belongs here if loss matters.
			q.failed.Add(1)
			log.Printf("failed to persist detection %s: %v", d.ID, err)
			continue
		}
		q.written.Add(1)
	}
}

// Enqueue appends a detection for background persistence. It never blocks
// on the store: the only failure modes are a shut-down queue and a full
// buffer.
func (q *Queue) Enqueue(d *models.Detection) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- d:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops intake and blocks until every detection enqueued before the
// call has been handed to the sink. ctx bounds only the wait for the worker
// to notice the close; the drain itself is never abandoned, so every
// pre-shutdown enqueue gets at least one write attempt even if the store is
// slow. The caller releases the store connection after Shutdown returns.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		log.Printf("persistence queue still draining %d tasks past deadline", len(q.tasks))
	}

	<-q.done
	return nil
}

// Depth reports how many detections are waiting to be written.
func (q *Queue) Depth() int {
	return len(q.tasks)
}

// Written reports how many detections have been durably handed to the sink.
func (q *Queue) Written() int64 {
	return q.written.Load()
}

// Failed reports how many sink writes were dropped after an error.
func (q *Queue) Failed() int64 {
	return q.failed.Load()
}
