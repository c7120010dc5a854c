package container

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
)

// RedisConnMaker opens every configured redis connection up front.
type RedisConnMaker struct {
	ctx           context.Context
	conf          ConfigRedis
	redisSingle   map[string]*redis.Client
	redisSentinel map[string]*redis.Client
	redisCluster  map[string]*redis.ClusterClient
	closer        closers
}

func NewRedisConnMaker(ctx context.Context, conf ConfigRedis) (*RedisConnMaker, error) {
	instance := &RedisConnMaker{
		ctx:           ctx,
		conf:          conf,
		redisSingle:   map[string]*redis.Client{},
		redisSentinel: map[string]*redis.Client{},
		redisCluster:  map[string]*redis.ClusterClient{},
	}

	err := instance.connect()
	if err != nil {
		// close previous opened connection if error happen
		if _err := instance.CloseAll(); _err != nil {
			err = fmt.Errorf("close redis error: %w: %s", err, _err)
		}

		return nil, err
	}

	return instance, nil
}

func normalizeKey(key string) string {
	return strings.TrimSpace(strings.ToLower(key))
}

func (i *RedisConnMaker) connect() error {
	ctx := i.ctx

	for key, connInfo := range i.conf {
		key = normalizeKey(key)
		if err := validator.Var(key, "required,alphanum"); err != nil {
			err = fmt.Errorf("error connecting to redis key '%s': %w", key, err)
			return err
		}

		if len(connInfo.Address) == 0 {
			return fmt.Errorf("redis %s has no address", key)
		}

		var redisClient redis.UniversalClient
		switch connInfo.Mode {
		case "single", "":
			single := redis.NewClient(&redis.Options{
				Addr:     connInfo.Address[0],
				Username: connInfo.Username,
				Password: connInfo.Password,
				DB:       connInfo.DB,
			})

			i.redisSingle[key] = single
			redisClient = single

		case "sentinel":
			sentinel := redis.NewFailoverClient(&redis.FailoverOptions{
				SentinelAddrs: connInfo.Address,
				Username:      connInfo.Username,
				Password:      connInfo.Password,
				DB:            connInfo.DB,
				MasterName:    connInfo.MasterName,
			})

			i.redisSentinel[key] = sentinel
			redisClient = sentinel

		case "cluster":
			// cluster mode is not support DB selection
			cluster := redis.NewClusterClient(&redis.ClusterOptions{
				Addrs:    connInfo.Address,
				Username: connInfo.Username,
				Password: connInfo.Password,
			})

			i.redisCluster[key] = cluster
			redisClient = cluster

		default:
			err := fmt.Errorf("unknown redis mode: %s", connInfo.Mode)
			return err
		}

		i.closer.add(NewNamedCloser(key, redisClient)) // register the closer

		err := redisClient.Ping(ctx).Err()
		if err != nil {
			err = fmt.Errorf("error ping redis %s: %w", key, err)
			return err
		}
	}

	return nil
}

func (i *RedisConnMaker) GetSingle(key string) (*redis.Client, error) {
	v, ok := i.redisSingle[normalizeKey(key)]
	if !ok {
		return nil, fmt.Errorf("key %s is not found on any redis with single architecture", key)
	}

	return v, nil
}

func (i *RedisConnMaker) GetSentinel(key string) (*redis.Client, error) {
	v, ok := i.redisSentinel[normalizeKey(key)]
	if !ok {
		return nil, fmt.Errorf("key %s is not found on any redis with sentinel architecture", key)
	}

	return v, nil
}

func (i *RedisConnMaker) GetCluster(key string) (*redis.ClusterClient, error) {
	v, ok := i.redisCluster[normalizeKey(key)]
	if !ok {
		return nil, fmt.Errorf("key %s is not found on any redis with cluster architecture", key)
	}

	return v, nil
}

// Get returns the connection whatever its topology.
func (i *RedisConnMaker) Get(key string) (v redis.UniversalClient, err error) {
	v, err = i.GetSingle(key)
	if err == nil {
		return v, nil
	}

	v, err = i.GetSentinel(key)
	if err == nil {
		return v, nil
	}

	v, err = i.GetCluster(key)
	if err == nil {
		return v, nil
	}

	return nil, fmt.Errorf("key %s is not found in any redis topology", key)
}

func (i *RedisConnMaker) CloseAll() error {
	return i.closer.closeAll(i.ctx, "redis")
}

// Close implements io.Closer so the container can register it.
func (i *RedisConnMaker) Close() error {
	return i.CloseAll()
}
