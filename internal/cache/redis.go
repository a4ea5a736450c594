package cache

import (
	"fmt"
	"time"

	"dontverifyme/internal/common"
	"dontverifyme/internal/persistence"

	"github.com/go-redis/redis/v7"
)

// InitRedisOpts configures the InitRedis method
type InitRedisOpts struct {
	RedisConnection *persistence.Redis
	ServiceLogs     chan<- common.ServiceLog
}

// InitRedis initialises a singleton instance of a Redis cache
func InitRedis(opts InitRedisOpts) error {
	if opts.RedisConnection == nil {
		return fmt.Errorf("failed to receive a redis connection")
	}
	serviceLogs := opts.ServiceLogs
	if serviceLogs == nil {
		serviceLogs = common.GetNoopServiceLog()
	}
	Init(&Instance{
		Client:      opts.RedisConnection.GetClient(),
		ServiceLogs: serviceLogs,
	})
	return nil
}

type Instance struct {
	Client      *redis.Client
	ServiceLogs chan<- common.ServiceLog
}

func (i *Instance) Set(key string, value string, ttl time.Duration) error {
	status := i.Client.Set(key, value, ttl)
	if status.Err() != nil {
		return fmt.Errorf("failed to set key[%s]: %s", key, status.Err())
	}
	i.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "set key[%s] response: %s", key, status.String())
	return nil
}

func (i *Instance) Get(key string) (string, error) {
	response := i.Client.Get(key)
	if response.Err() != nil {
		return "", fmt.Errorf("failed to get key[%s]: %s", key, response.Err())
	}
	return response.Val(), nil
}

func (i *Instance) Scan(pattern string) ([]string, error) {
	response := i.Client.Keys(pattern)
	if response.Err() != nil {
		return nil, fmt.Errorf("failed to list keys[%s]: %s", pattern, response.Err())
	}
	keys := response.Val()
	i.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "found %v keys[%s]", len(keys), pattern)
	return keys, nil
}

func (i *Instance) Del(key string) error {
	response := i.Client.Unlink(key)
	if response.Err() != nil {
		return fmt.Errorf("failed to delete key[%s]: %s", key, response.Err())
	}
	return nil
}
