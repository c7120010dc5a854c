package container

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"go.uber.org/multierr"
)

type Closer interface {
	io.Closer

	Name() string
}

type NamedCloser struct {
	name   string
	closer io.Closer
}

var _ Closer = (*NamedCloser)(nil)

func NewNamedCloser(name string, closer io.Closer) *NamedCloser {
	return &NamedCloser{
		name:   name,
		closer: closer,
	}
}

func (d *NamedCloser) Close() error {
	return d.closer.Close()
}

func (d *NamedCloser) Name() string {
	return d.name
}

// closerFunc adapts a shutdown function that cannot fail, such as worker drain.
type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

// closers closes in reverse registration order, dependents before their dependencies.
type closers struct {
	mu   sync.Mutex
	list []Closer
}

func (c *closers) add(cl Closer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.list = append(c.list, cl)
}

func (c *closers) closeAll(ctx context.Context, scope string) error {
	c.mu.Lock()
	list := c.list
	c.list = nil
	c.mu.Unlock()

	logger.Debug(ctx, fmt.Sprintf("%s: trying to close", scope))

	var err error
	for i := len(list) - 1; i >= 0; i-- {
		cl := list[i]
		if cl == nil {
			continue
		}

		if e := cl.Close(); e != nil {
			err = multierr.Append(err, fmt.Errorf("close %s: %w", cl.Name(), e))
			continue
		}

		logger.Debug(ctx, fmt.Sprintf("%s: %s success to close", scope, cl.Name()))
	}

	if err != nil {
		logger.Error(ctx, fmt.Sprintf("%s: some error occurred when closing dep", scope), logger.KV("error", err))
	}

	return err
}
