package sessionsvc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"github.com/yusufsyaifudin/appkeeper/pkg/tracer"
	"github.com/yusufsyaifudin/appkeeper/pkg/uid"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
	"github.com/yusufsyaifudin/appkeeper/pkg/worker"
)

type DefaultServiceConfig struct {
	UID            uid.UID            `validate:"required"`
	AppService     appsvc.Service     `validate:"required"`
	CatalogService catalogsvc.Service `validate:"required"`
	Worker         worker.Service     `validate:"required"`
	Now            func() time.Time   `validate:"-"`
}

type DefaultService struct {
	cfg DefaultServiceConfig

	mu       sync.RWMutex
	sessions map[string]*Session
}

var _ Service = (*DefaultService)(nil)

func New(cfg DefaultServiceConfig) (*DefaultService, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, err
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &DefaultService{
		cfg:      cfg,
		sessions: map[string]*Session{},
	}, nil
}

func (d *DefaultService) Create(ctx context.Context) (sess *Session, err error) {
	ctx, span := tracer.StartSpan(ctx, "sessionsvc.Create")
	defer span.End()

	id, err := uid.NextString(d.cfg.UID)
	if err != nil {
		err = fmt.Errorf("generate session id: %w", err)
		return
	}

	sess = &Session{
		ID:        id,
		CreatedAt: d.cfg.Now().UTC(),
		apps:      d.cfg.AppService,
		board:     NewBoard(d.cfg.AppService),
		dialog:    catalogsvc.NewDialog(d.cfg.CatalogService, d.cfg.Worker),
	}

	d.mu.Lock()
	d.sessions[id] = sess
	d.mu.Unlock()

	logger.Info(ctx, "session created", logger.KV("session_id", id))
	return
}

func (d *DefaultService) Get(ctx context.Context, id string) (sess *Session, err error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sess, exist := d.sessions[id]
	if !exist {
		err = fmt.Errorf("%w: '%s'", ErrSessionNotFound, id)
		return nil, err
	}

	return
}

// Clear clears the session then forgets it.
func (d *DefaultService) Clear(ctx context.Context, id string) (err error) {
	ctx, span := tracer.StartSpan(ctx, "sessionsvc.Clear")
	defer span.End()

	d.mu.Lock()
	sess, exist := d.sessions[id]
	delete(d.sessions, id)
	d.mu.Unlock()

	if !exist {
		err = fmt.Errorf("%w: '%s'", ErrSessionNotFound, id)
		return
	}

	sess.Clear()
	logger.Info(ctx, "session cleared", logger.KV("session_id", id))
	return
}
