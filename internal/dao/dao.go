package dao

import (
	"sync"

	"github.com/FavorLabs/favor-comments/internal/conf"
	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/dao/cache"
	"github.com/FavorLabs/favor-comments/internal/dao/monogo"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	cs core.CommentCacheService

	onceCs sync.Once
)

// NewCommentModel derives the default comment model from db and wraps it with
// the comment cache selected by features.
func NewCommentModel(db *mongo.Database) core.CommentModel {
	m := monogo.NewCommentModel(db,
		monogo.WithRefTables(conf.MongoDBSetting.UserTable, conf.MongoDBSetting.PostTable),
		monogo.WithTransactions(conf.CfgIf("Transaction")),
	)
	if c := CommentCacheService(); c != nil {
		m = cache.NewCommentCacheServant(m, c, conf.CommentCacheSetting.ExpireInSecond)
	}
	if v, ok := m.(core.VersionInfo); ok {
		logrus.Infof("use %s as comment model with version %s", v.Name(), v.Version())
	}
	return m
}

// CommentCacheService returns nil when no cache feature is enabled.
func CommentCacheService() core.CommentCacheService {
	onceCs.Do(func() {
		var err error
		if conf.CfgIf("BigCache") {
			s := conf.CommentCacheSetting
			cs, err = cache.NewBigCacheService(s.MaxSizeMB, s.ExpireInSecond, s.Verbose)
			if err != nil {
				logrus.Fatalf("new bigcache failed: %s", err)
			}
		} else if conf.CfgIf("Redis") {
			cs = cache.NewRedisCacheService(conf.MustRedis())
		} else {
			logrus.Infof("comment cache disabled")
			return
		}
		if v, ok := cs.(core.VersionInfo); ok {
			logrus.Infof("use %s as comment cache with version %s", v.Name(), v.Version())
		}
	})
	return cs
}
