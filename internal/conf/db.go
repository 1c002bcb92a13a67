package conf

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

var (
	db        *mongo.Database
	rdb       *redis.Client
	onceDB    sync.Once
	onceRedis sync.Once
)

func MustMongoDB() *mongo.Database {
	onceDB.Do(func() {
		var err error
		if db, err = newDBEngine(); err != nil {
			logrus.Fatalf("new mongo db failed: %s", err)
		}
		if CfgIf("Index") {
			if err = CreateTableIndex(db); err != nil {
				logrus.Fatalf("mongo db create index failed: %s", err)
			}
		}
	})
	return db
}

func newDBEngine() (*mongo.Database, error) {
	logrus.Debugln("use Mongo as db")
	option := options.Client().
		ApplyURI(MongoDBSetting.Dsn()).
		SetConnectTimeout(MongoDBSetting.ConnectTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if CfgIf("Transaction") {
		option.SetReadConcern(readconcern.Majority()).
			SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}

	client, err := mongo.NewClient(option)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), MongoDBSetting.ConnectTimeout)
	defer cancel()
	if err = client.Connect(ctx); err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client.Database(MongoDBSetting.DBName), nil
}

func MustRedis() *redis.Client {
	onceRedis.Do(func() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     RedisSetting.Host,
			Password: RedisSetting.Password,
			DB:       RedisSetting.DB,
		})
		if err := rdb.Ping(context.TODO()).Err(); err != nil {
			logrus.Fatalf("new redis failed: %s", err)
		}
	})
	return rdb
}
