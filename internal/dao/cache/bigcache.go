package cache

import (
	"context"
	"errors"
	"time"

	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/Masterminds/semver/v3"
	"github.com/allegro/bigcache/v3"
	"github.com/sirupsen/logrus"
)

var (
	_ core.CommentCacheService = (*bigCacheServant)(nil)
	_ core.VersionInfo         = (*bigCacheServant)(nil)
)

type bigCacheServant struct {
	cache *bigcache.BigCache
}

// NewBigCacheService keeps entries in process for lifeWindow. Per entry expiry
// is not supported by bigcache, the expire argument of Set is ignored.
func NewBigCacheService(maxSizeMB int, lifeWindow time.Duration, verbose bool) (core.CommentCacheService, error) {
	config := bigcache.DefaultConfig(lifeWindow)
	config.HardMaxCacheSize = maxSizeMB
	config.Verbose = verbose
	config.Logger = logrus.StandardLogger()
	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, err
	}
	return &bigCacheServant{cache: cache}, nil
}

func (s *bigCacheServant) Get(key string) ([]byte, error) {
	return s.cache.Get(key)
}

func (s *bigCacheServant) Set(key string, data []byte, _ time.Duration) error {
	return s.cache.Set(key, data)
}

func (s *bigCacheServant) Delete(keys ...string) error {
	for _, k := range keys {
		if err := s.cache.Delete(k); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
			return err
		}
	}
	return nil
}

func (s *bigCacheServant) Name() string {
	return "BigCache"
}

func (s *bigCacheServant) Version() *semver.Version {
	return semver.MustParse("v0.1.0")
}
