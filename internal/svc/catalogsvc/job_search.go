package catalogsvc

import (
	"context"
	"sync/atomic"

	"github.com/yusufsyaifudin/appkeeper/pkg/worker"
	"go.uber.org/multierr"
)

var searchJobSeq uint64

type searchJob struct {
	id     uint64
	ctx    context.Context
	dialog *Dialog
	gen    uint64
	input  InputSearch
	out    OutSearch
	done   chan struct{}
}

var _ worker.Job = (*searchJob)(nil)

func nextSearchJobID() uint64 {
	return atomic.AddUint64(&searchJobSeq, 1)
}

func (s *searchJob) ID() uint64 {
	return s.id
}

func (s *searchJob) Context() context.Context {
	return s.ctx
}

func (s *searchJob) PreExecute() error {
	if !s.dialog.isCurrent(s.gen) {
		return ErrStaleSearch
	}

	return s.ctx.Err()
}

func (s *searchJob) Execute() (err error) {
	s.out, err = s.dialog.svc.Search(s.ctx, s.input)
	return
}

func (s *searchJob) PostExecute(err error) {
	defer close(s.done)

	// worker appends its own stage error after the cause
	if errs := multierr.Errors(err); len(errs) > 0 {
		err = errs[0]
	}

	s.dialog.apply(s.ctx, s.gen, s.out, err)
}
