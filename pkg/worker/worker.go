package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"go.uber.org/multierr"
)

var (
	ErrPreExecute = errors.New("pre-execute job error")
	ErrExecute    = errors.New("execute job error")
	ErrStopped    = errors.New("worker is stopped")
)

// Job holds all information regarding the Job
type Job interface {
	// ID return uint64 unique identifier of the job
	ID() uint64

	// Context to tracks down all Job information that important.
	Context() context.Context

	// PreExecute called before Execute, when error Execute never be called.
	// PostExecute always called after PreExecute or Execute is done.
	PreExecute() error

	// Execute is the real logic of the Job.
	Execute() error

	// PostExecute called after Execute is done.
	// When Execute return error, it will pass to PostExecute, otherwise it returns nil.
	PostExecute(err error)
}

type Service interface {
	AddJob(job Job) error
	Queued() int64
}

type Worker struct {
	mu       sync.RWMutex
	stopped  bool
	jobs     chan Job
	queueNum int64
	running  sync.WaitGroup
}

var _ Service = (*Worker)(nil)

func NewWorker(num, maxJob int) *Worker {
	if num < 1 {
		num = 1
	}

	if maxJob < 1 {
		maxJob = 1
	}

	w := &Worker{
		jobs: make(chan Job, maxJob),
	}

	for i := 0; i < num; i++ {
		w.running.Add(1)
		go w.worker(i + 1)
	}

	return w
}

func (w *Worker) worker(id int) {
	defer w.running.Done()

	for job := range w.jobs {
		t0 := time.Now()
		run(job)
		queue := atomic.AddInt64(&w.queueNum, -1)

		logger.Debug(job.Context(), "worker job done",
			logger.KV("worker", id),
			logger.KV("job_id", job.ID()),
			logger.KV("ongoing_queue", queue),
			logger.KV("duration", time.Since(t0).String()),
		)
	}
}

func run(job Job) {
	err := job.PreExecute()
	if err != nil {
		job.PostExecute(multierr.Append(err, ErrPreExecute))
		return
	}

	err = job.Execute()
	if err != nil {
		err = multierr.Append(err, ErrExecute)
	}

	job.PostExecute(err)
}

// AddJob queues the job. It blocks when the queue is full and returns ErrStopped after Done.
func (w *Worker) AddJob(job Job) error {
	if job == nil {
		return nil
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return ErrStopped
	}

	atomic.AddInt64(&w.queueNum, 1)
	w.jobs <- job
	return nil
}

// Queued returns the number of jobs not yet finished.
func (w *Worker) Queued() int64 {
	return atomic.LoadInt64(&w.queueNum)
}

// Done ensures all registered Job is done before stop the worker.
func (w *Worker) Done() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}

	w.stopped = true
	close(w.jobs)
	w.mu.Unlock()

	w.running.Wait()
}
