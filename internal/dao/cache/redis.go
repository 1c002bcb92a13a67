package cache

import (
	"context"
	"time"

	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/Masterminds/semver/v3"
	"github.com/go-redis/redis/v8"
)

var (
	_ core.CommentCacheService = (*redisCacheServant)(nil)
	_ core.VersionInfo         = (*redisCacheServant)(nil)
)

type redisCacheServant struct {
	client *redis.Client
}

func NewRedisCacheService(client *redis.Client) core.CommentCacheService {
	return &redisCacheServant{client: client}
}

func (s *redisCacheServant) Get(key string) ([]byte, error) {
	return s.client.Get(context.TODO(), key).Bytes()
}

func (s *redisCacheServant) Set(key string, data []byte, expire time.Duration) error {
	return s.client.Set(context.TODO(), key, data, expire).Err()
}

func (s *redisCacheServant) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(context.TODO(), keys...).Err()
}

func (s *redisCacheServant) Name() string {
	return "RedisCache"
}

func (s *redisCacheServant) Version() *semver.Version {
	return semver.MustParse("v0.1.0")
}
