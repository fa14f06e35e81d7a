package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Runner interface {
	Run(ctx context.Context, kind Kind) Result
}

type Job struct {
	ID          string
	Kind        Kind
	SubmittedAt time.Time

	done   chan struct{}
	result Result
}

func newJob(kind Kind) *Job {
	return &Job{
		ID:          uuid.NewString(),
		Kind:        kind,
		SubmittedAt: time.Now().UTC(),
		done:        make(chan struct{}),
	}
}

func (j *Job) finish(r Result) {
	j.result = r
	close(j.done)
}

// Wait blocks until the job finishes or ctx ends. Giving up only detaches the
// caller; the job keeps running and its result is dropped.
func (j *Job) Wait(ctx context.Context) (Result, error) {
	select {
	case <-j.done:
		return j.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Queue feeds submitted jobs to a fixed set of workers.
type Queue struct {
	runner  Runner
	workers int
	jobs    chan *Job

	mu      sync.Mutex
	closed  bool
	started bool
	group   errgroup.Group
}

func NewQueue(runner Runner, workers, size int) *Queue {
	if workers < 1 {
		workers = 1
	}
	if size < 0 {
		size = 0
	}
	return &Queue{
		runner:  runner,
		workers: workers,
		jobs:    make(chan *Job, size),
	}
}

func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true

	for i := 0; i < q.workers; i++ {
		worker := i
		q.group.Go(func() error {
			for job := range q.jobs {
				q.execute(worker, job)
			}
			return nil
		})
	}
	config.Log.WithField("workers", q.workers).Info("report workers started")
}

func (q *Queue) execute(worker int, job *Job) {
	ctx := config.WithLogFields(context.Background(), logrus.Fields{
		"job_id": job.ID,
		"report": string(job.Kind),
		"worker": worker,
	})
	log := config.WithContext(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Error("report job panicked")
			job.finish(failure(fmt.Sprintf("report job failed: %v", rec)))
		}
	}()

	start := time.Now()
	result := q.runner.Run(ctx, job.Kind)
	log.WithFields(logrus.Fields{
		"status":  result.Status,
		"elapsed": time.Since(start).String(),
	}).Info("report job finished")
	job.finish(result)
}

// Submit enqueues a job without blocking. When the queue is full or closed the
// returned job is already finished with an error result.
func (q *Queue) Submit(kind Kind) *Job {
	job := newJob(kind)

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		job.finish(failure("report queue is shut down"))
		return job
	}

	select {
	case q.jobs <- job:
	default:
		job.finish(failure("report queue is full, try again later"))
	}
	return job
}

// Close stops accepting jobs and waits for queued ones to drain.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	return q.group.Wait()
}
