package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/cache"
)

func prepareMiniRedis(t *testing.T) *redis.Client {
	client, _ := prepareMiniRedisServer(t)
	return client
}

func prepareMiniRedisServer(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
		DB:   1,
	})

	return client, s
}

func TestNewRedis(t *testing.T) {
	t.Run("bad dep", func(t *testing.T) {
		c, err := cache.NewRedis(cache.RedisConfig{})
		assert.Nil(t, c)
		assert.Error(t, err)
	})

	t.Run("ok", func(t *testing.T) {
		redisConn := prepareMiniRedis(t)
		conf := cache.RedisConfig{
			DB: redisConn,
		}

		c, err := cache.NewRedis(conf)
		assert.NotNil(t, c)
		assert.NoError(t, err)
	})
}

func TestRedis_GetAs(t *testing.T) {
	type S struct {
		Value string
	}

	t.Run("no key found", func(t *testing.T) {
		redisConn := prepareMiniRedis(t)
		conf := cache.RedisConfig{
			DB: redisConn,
		}

		c, err := cache.NewRedis(conf)
		assert.NotNil(t, c)
		assert.NoError(t, err)

		var out S
		err = c.GetAs(context.Background(), "key", &out)
		assert.Error(t, err)
		assert.ErrorIs(t, err, cache.ErrKeyNotExist)
	})

	t.Run("redis error: closed connection", func(t *testing.T) {
		redisConn := prepareMiniRedis(t)
		conf := cache.RedisConfig{
			DB: redisConn,
		}

		c, err := cache.NewRedis(conf)
		assert.NotNil(t, c)
		assert.NoError(t, err)

		// close redis to state error
		err = redisConn.Close()

		var out S
		err = c.GetAs(context.Background(), "key", &out)
		assert.Error(t, err)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	t.Run("success", func(t *testing.T) {
		redisConn := prepareMiniRedis(t)
		conf := cache.RedisConfig{
			DB: redisConn,
		}

		c, err := cache.NewRedis(conf)
		assert.NotNil(t, c)
		assert.NoError(t, err)

		in := S{
			Value: "this is value",
		}

		err = c.SetExp(context.Background(), "key", in, time.Second)
		assert.NoError(t, err)

		var out S
		err = c.GetAs(context.Background(), "key", &out)
		assert.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestRedis_SetExp(t *testing.T) {
	t.Run("error marshal data", func(t *testing.T) {
		redisConn := prepareMiniRedis(t)
		conf := cache.RedisConfig{
			DB: redisConn,
		}

		c, err := cache.NewRedis(conf)
		assert.NotNil(t, c)
		assert.NoError(t, err)

		in := map[string]interface{}{
			"key": make(chan int, 1),
		}

		err = c.SetExp(context.Background(), "key", in, time.Second)
		assert.Error(t, err)
	})

	t.Run("success with expiration", func(t *testing.T) {
		redisConn, srv := prepareMiniRedisServer(t)
		conf := cache.RedisConfig{
			DB: redisConn,
		}

		c, err := cache.NewRedis(conf)
		assert.NotNil(t, c)
		assert.NoError(t, err)

		type S struct {
			Value string
		}

		in := S{
			Value: "this is value",
		}

		err = c.SetExp(context.Background(), "key", in, time.Second)
		assert.NoError(t, err)

		srv.Select(1)
		srv.FastForward(2 * time.Second)

		var out S
		err = c.GetAs(context.Background(), "key", &out)
		assert.ErrorIs(t, err, cache.ErrKeyNotExist)
	})

	t.Run("negative expiration keeps key", func(t *testing.T) {
		redisConn, srv := prepareMiniRedisServer(t)
		c, err := cache.NewRedis(cache.RedisConfig{DB: redisConn})
		assert.NoError(t, err)

		err = c.SetExp(context.Background(), "key", []int{1, 2}, -1)
		assert.NoError(t, err)

		srv.Select(1)
		assert.Equal(t, time.Duration(0), srv.TTL("key"))
	})
}

func TestRedis_Delete(t *testing.T) {
	t.Run("success: not exist key", func(t *testing.T) {
		redisConn := prepareMiniRedis(t)
		conf := cache.RedisConfig{
			DB: redisConn,
		}

		c, err := cache.NewRedis(conf)
		assert.NotNil(t, c)
		assert.NoError(t, err)

		err = c.Delete(context.Background(), "key")
		assert.NoError(t, err)
	})

	t.Run("redis error: closed connection", func(t *testing.T) {
		redisConn := prepareMiniRedis(t)
		conf := cache.RedisConfig{
			DB: redisConn,
		}

		c, err := cache.NewRedis(conf)
		assert.NotNil(t, c)
		assert.NoError(t, err)

		type S struct {
			Value string
		}

		in := S{
			Value: "this is value",
		}

		err = c.SetExp(context.Background(), "key", in, time.Second)
		assert.NoError(t, err)

		// close connection
		err = redisConn.Close()
		assert.NoError(t, err)

		err = c.Delete(context.Background(), "key")
		assert.Error(t, err)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	t.Run("success", func(t *testing.T) {
		redisConn := prepareMiniRedis(t)
		conf := cache.RedisConfig{
			DB: redisConn,
		}

		c, err := cache.NewRedis(conf)
		assert.NotNil(t, c)
		assert.NoError(t, err)

		type S struct {
			Value string
		}

		in := S{
			Value: "this is value",
		}

		err = c.SetExp(context.Background(), "key", in, time.Second)
		assert.NoError(t, err)

		err = c.Delete(context.Background(), "key")
		assert.NoError(t, err)
	})
}

func TestRedis_CatalogCandidates(t *testing.T) {
	ctx := context.Background()
	redisConn, srv := prepareMiniRedisServer(t)

	c, err := cache.NewRedis(cache.RedisConfig{DB: redisConn})
	require.NoError(t, err)

	in := []catalogsvc.Candidate{
		{
			Name:        "Fitness Tracker Pro",
			PackageName: "com.fitness.tracker",
			Category:    "Health & Fitness",
			WebsiteURL:  "https://fitnesstracker.com",
		},
		{
			Name:        "Recipe Finder",
			Category:    "Food & Drink",
			WebsiteURL:  "https://recipefinder.io",
			Description: "Find recipes by ingredient",
		},
	}

	tests := []struct {
		name string
		key  string
		in   []catalogsvc.Candidate
	}{
		{name: "listing", key: "catalog:Android:fitness", in: in},
		{name: "no match", key: "catalog:Web:zzz", in: []catalogsvc.Candidate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, c.SetExp(ctx, tt.key, tt.in, time.Minute))
			assert.True(t, srv.Exists(tt.key))

			var out []catalogsvc.Candidate
			require.NoError(t, c.GetAs(ctx, tt.key, &out))
			assert.Equal(t, tt.in, out)
		})
	}

	t.Run("expired listing", func(t *testing.T) {
		require.NoError(t, c.SetExp(ctx, "catalog:iOS:fitness", in, time.Minute))
		srv.FastForward(2 * time.Minute)

		var out []catalogsvc.Candidate
		assert.ErrorIs(t, c.GetAs(ctx, "catalog:iOS:fitness", &out), cache.ErrKeyNotExist)
	})
}
