package coaching

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// persistTimeout bounds a single background write.
const persistTimeout = 10 * time.Second

type persistJob struct {
	op     string
	userID string
	run    func(ctx context.Context) error
}

// persistQueue runs store writes on one goroutine in submission order.
// Failures are logged and dropped; they never reach the conversation.
type persistQueue struct {
	log     *zap.Logger
	jobs    chan persistJob
	pending sync.WaitGroup
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

func newPersistQueue(log *zap.Logger) *persistQueue {
	q := &persistQueue{
		log:  log,
		jobs: make(chan persistJob, 64),
		done: make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *persistQueue) loop() {
	defer close(q.done)
	for job := range q.jobs {
		q.exec(job)
		q.pending.Done()
	}
}

func (q *persistQueue) exec(job persistJob) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := job.run(ctx); err != nil {
		q.log.Error("persistence failed",
			zap.String("user_id", job.userID),
			zap.String("operation", job.op),
			zap.Error(err),
		)
	}
}

// submit enqueues a write. After close the write runs inline so nothing
// is lost during shutdown.
func (q *persistQueue) submit(op, userID string, run func(ctx context.Context) error) {
	job := persistJob{op: op, userID: userID, run: run}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.exec(job)
		return
	}
	q.pending.Add(1)
	q.jobs <- job
	q.mu.Unlock()
}

// wait blocks until every submitted write has run.
func (q *persistQueue) wait() {
	q.pending.Wait()
}

// close drains outstanding writes and stops the worker.
func (q *persistQueue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	<-q.done
}
