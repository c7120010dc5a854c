package sessionsvc

import (
	"context"
)

type Service interface {
	Create(ctx context.Context) (sess *Session, err error)
	Get(ctx context.Context, id string) (sess *Session, err error)
	Clear(ctx context.Context, id string) (err error)
}
