package container

import (
	"context"
	"fmt"

	"github.com/yusufsyaifudin/appkeeper/pkg/cache"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"github.com/yusufsyaifudin/appkeeper/pkg/uid"
	"github.com/yusufsyaifudin/appkeeper/pkg/worker"
)

// Option changes what Setup builds, mostly for tests.
type Option func(*options)

type options struct {
	uidGen uid.UID
}

// WithUID replaces the sonyflake generator, which needs a private ip to start.
func WithUID(gen uid.UID) Option {
	return func(o *options) {
		o.uidGen = gen
	}
}

// Container holds every long living dependency. It must be closed when the process ends.
type Container struct {
	ctx      context.Context
	cfg      Config
	redis    *RedisConnMaker
	worker   *worker.Worker
	services *ServicesImpl
	closer   closers
}

// Setup return pointer because it heavily used.
// This will initialize all required dependencies to run.
// When Setup returns error, everything it already opened is closed.
func Setup(ctx context.Context, cfg Config, opts ...Option) (c *Container, err error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	c = &Container{
		ctx: ctx,
		cfg: cfg,
	}

	defer func() {
		if err == nil {
			return
		}

		if _err := c.Close(); _err != nil {
			err = fmt.Errorf("%w: close container: %s", err, _err)
		}

		c = nil
	}()

	uidGen := o.uidGen
	if uidGen == nil {
		uidGen, err = uid.NewSonyflake()
		if err != nil {
			return
		}
	}

	searchCache, err := c.setupCache()
	if err != nil {
		return
	}

	c.worker = worker.NewWorker(cfg.Services.Import.Workers, cfg.Services.Import.MaxQueue)
	c.closer.add(NewNamedCloser("import worker", closerFunc(c.worker.Done)))

	c.services, err = SetupServices(cfg.Services, ServicesDeps{
		UIDGen: uidGen,
		Cache:  searchCache,
		Worker: c.worker,
	})
	if err != nil {
		return
	}

	return c, nil
}

func (c *Container) setupCache() (cache.Cache, error) {
	switch c.cfg.Cache.Driver {
	case CacheInMemory:
		logger.Info(c.ctx, "cache: using in memory", logger.KV("maxBytes", c.cfg.Cache.MaxBytes))
		return cache.NewInMemory(c.cfg.Cache.MaxBytes)

	case CacheRedis:
		redisConn, err := NewRedisConnMaker(c.ctx, c.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("cache redis: %w", err)
		}

		c.redis = redisConn
		c.closer.add(NewNamedCloser("redis", redisConn))

		conn, err := redisConn.Get(c.cfg.Cache.RedisLabel)
		if err != nil {
			return nil, fmt.Errorf("cache redis: %w", err)
		}

		logger.Info(c.ctx, "cache: using redis", logger.KV("label", c.cfg.Cache.RedisLabel))
		return cache.NewRedis(cache.RedisConfig{DB: conn})
	}

	return nil, fmt.Errorf("unknown cache driver '%s'", c.cfg.Cache.Driver)
}

func (c *Container) Services() Services {
	return c.services
}

func (c *Container) Redis() *RedisConnMaker {
	return c.redis
}

// Close drains the import worker before closing the connections its jobs may use.
func (c *Container) Close() error {
	return c.closer.closeAll(c.ctx, "container")
}
