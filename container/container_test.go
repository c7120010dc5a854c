package container

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/uid"
)

const sampleConfig = `
transport:
  http:
    port: 8080
log:
  level: debug
  format: console
tracing:
  enable: false
cache:
  driver: redis
  redisLabel: main
redis:
  main:
    mode: single
    address: ["127.0.0.1:6379"]
services:
  apps:
    seed: false
  catalog:
    delay: 10ms
    cacheExpiry: 1m
    cachePrefix: search
  import:
    workers: 2
unknownSection:
  foo: bar
`

func TestDecodeConfig(t *testing.T) {
	t.Run("values and defaults", func(t *testing.T) {
		cfg, err := DecodeConfig(strings.NewReader(sampleConfig))
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Transport.HTTP.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, CacheRedis, cfg.Cache.Driver)
		assert.Equal(t, []string{"127.0.0.1:6379"}, cfg.Redis["main"].Address)
		assert.False(t, cfg.Services.Apps.Seed)
		assert.Equal(t, 10*time.Millisecond, cfg.Services.Catalog.Delay)
		assert.Equal(t, time.Minute, cfg.Services.Catalog.CacheExpiry)
		assert.Equal(t, "search", cfg.Services.Catalog.CachePrefix)
		assert.Equal(t, 2, cfg.Services.Import.Workers)
		assert.Equal(t, 100, cfg.Services.Import.MaxQueue)
		assert.Equal(t, "http://localhost:14268/api/traces", cfg.Tracing.JaegerEndpoint)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := DecodeConfig(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := DecodeConfig(strings.NewReader("transport: ["))
		assert.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(file, []byte(sampleConfig), 0o600))

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Transport.HTTP.Port)

	_, err = LoadConfig(filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSetup(t *testing.T) {
	ctx := context.Background()

	t.Run("in memory cache with seed", func(t *testing.T) {
		c, err := Setup(ctx, DefaultConfig(), WithUID(uid.NewSequence(0)))
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, c.Close()) })

		assert.Nil(t, c.Redis())

		out, err := c.Services().App().ListApp(ctx, appsvc.InputListApp{})
		require.NoError(t, err)
		assert.Equal(t, 12, out.Page.TotalItems)

		sess, err := c.Services().Session().Create(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1", sess.ID)
	})

	t.Run("redis cache", func(t *testing.T) {
		s := miniredis.RunT(t)

		cfg := DefaultConfig()
		cfg.Cache.Driver = CacheRedis
		cfg.Cache.RedisLabel = "Main"
		cfg.Redis = ConfigRedis{
			"main": {Mode: "single", Address: []string{s.Addr()}},
		}
		cfg.Services.Catalog.Delay = time.Millisecond

		c, err := Setup(ctx, cfg, WithUID(uid.NewSequence(0)))
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, c.Close()) })

		_, err = c.Redis().GetSingle("main")
		require.NoError(t, err)

		_, err = c.Redis().GetCluster("main")
		assert.Error(t, err)

		_, err = c.Services().Catalog().Search(ctx, catalogsvc.InputSearch{
			Platforms: []appsvc.Platform{appsvc.PlatformAndroid},
			Query:     "fitness",
		})
		require.NoError(t, err)
		assert.True(t, s.Exists("catalog:Android:fitness"))
	})

	t.Run("unknown cache driver", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Cache.Driver = "memcached"

		c, err := Setup(ctx, cfg, WithUID(uid.NewSequence(0)))
		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("unknown redis mode", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Cache.Driver = CacheRedis
		cfg.Cache.RedisLabel = "main"
		cfg.Redis = ConfigRedis{
			"main": {Mode: "ring", Address: []string{"127.0.0.1:0"}},
		}

		c, err := Setup(ctx, cfg, WithUID(uid.NewSequence(0)))
		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("missing redis label", func(t *testing.T) {
		s := miniredis.RunT(t)

		cfg := DefaultConfig()
		cfg.Cache.Driver = CacheRedis
		cfg.Cache.RedisLabel = "other"
		cfg.Redis = ConfigRedis{
			"main": {Address: []string{s.Addr()}},
		}

		c, err := Setup(ctx, cfg, WithUID(uid.NewSequence(0)))
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

type recordCloser struct {
	name  string
	err   error
	order *[]string
}

func (r recordCloser) Close() error {
	*r.order = append(*r.order, r.name)
	return r.err
}

func TestClosers(t *testing.T) {
	var order []string
	errBoom := errors.New("boom")

	var c closers
	c.add(NewNamedCloser("first", recordCloser{name: "first", order: &order}))
	c.add(NewNamedCloser("second", recordCloser{name: "second", err: errBoom, order: &order}))
	c.add(NewNamedCloser("third", recordCloser{name: "third", order: &order}))

	err := c.closeAll(context.Background(), "test")
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"third", "second", "first"}, order)

	// closing twice is a no-op
	assert.NoError(t, c.closeAll(context.Background(), "test"))
	assert.Len(t, order, 3)
}

func TestLoadConfig_Example(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "config.example.yml"))
	require.NoError(t, err)

	assert.Equal(t, 1234, cfg.Transport.HTTP.Port)
	assert.Equal(t, CacheInMemory, cfg.Cache.Driver)
	assert.Equal(t, 500*time.Millisecond, cfg.Services.Catalog.Delay)
	assert.Equal(t, 100, cfg.Log.File.MaxSizeMB)
	assert.True(t, cfg.Services.Apps.Seed)
}
