package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yusufsyaifudin/appkeeper/pkg/worker"
)

type Job struct {
	id         uint64
	preExecErr error
	execErr    error
	executed   *int64
	postErr    error
}

func (s *Job) ID() uint64 {
	return s.id
}

func (s *Job) Context() context.Context {
	return context.Background()
}

func (s *Job) PreExecute() error {
	return s.preExecErr
}

func (s *Job) Execute() error {
	time.Sleep(10 * time.Millisecond)
	if s.executed != nil {
		atomic.AddInt64(s.executed, 1)
	}

	return s.execErr
}

func (s *Job) PostExecute(err error) {
	s.postErr = err
}

func TestNewWorker(t *testing.T) {
	t.Run("worker lower than 1", func(t *testing.T) {
		t.Parallel()

		dispatcher := worker.NewWorker(0, 100)
		defer dispatcher.Done()
		assert.NoError(t, dispatcher.AddJob(&Job{id: 1}))
	})

	t.Run("max job lower than 1", func(t *testing.T) {
		t.Parallel()

		dispatcher := worker.NewWorker(4, 0)
		defer dispatcher.Done()
		assert.NoError(t, dispatcher.AddJob(&Job{id: 1}))
	})

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		var executed int64
		dispatcher := worker.NewWorker(4, 100)
		for i := 0; i < 100; i++ {
			assert.NoError(t, dispatcher.AddJob(&Job{id: uint64(i), executed: &executed}))
		}

		assert.Greater(t, dispatcher.Queued(), int64(0))

		dispatcher.Done()
		assert.EqualValues(t, 100, atomic.LoadInt64(&executed))
		assert.EqualValues(t, 0, dispatcher.Queued())
	})

	t.Run("job is nil", func(t *testing.T) {
		t.Parallel()

		dispatcher := worker.NewWorker(4, 100)
		defer dispatcher.Done()

		for i := 0; i < 100; i++ {
			assert.NoError(t, dispatcher.AddJob(nil))
		}
	})

	t.Run("pre execute is error", func(t *testing.T) {
		t.Parallel()

		var executed int64
		job := &Job{id: 1, preExecErr: errors.New("stale"), executed: &executed}

		dispatcher := worker.NewWorker(1, 1)
		assert.NoError(t, dispatcher.AddJob(job))
		dispatcher.Done()

		assert.ErrorIs(t, job.postErr, worker.ErrPreExecute)
		assert.EqualValues(t, 0, atomic.LoadInt64(&executed))
	})

	t.Run("execute is error", func(t *testing.T) {
		t.Parallel()

		job := &Job{id: 1, execErr: errors.New("boom")}

		dispatcher := worker.NewWorker(1, 1)
		assert.NoError(t, dispatcher.AddJob(job))
		dispatcher.Done()

		assert.ErrorIs(t, job.postErr, worker.ErrExecute)
	})

	t.Run("add after done", func(t *testing.T) {
		t.Parallel()

		dispatcher := worker.NewWorker(1, 1)
		dispatcher.Done()
		dispatcher.Done()

		assert.ErrorIs(t, dispatcher.AddJob(&Job{id: 1}), worker.ErrStopped)
	})
}
