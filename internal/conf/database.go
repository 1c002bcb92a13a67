package conf

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/gogf/gf/util/gconv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:embed table.json
var tableCfg string

type tableInfo struct {
	TableName     string
	Indexes       []param
	UniqueIndexes []param
}

type param []bson.M

func GetTableInfos(db *mongo.Database) ([]string, error) {
	return db.ListCollectionNames(context.TODO(), bson.M{})
}

// CreateTableIndex creates the collections and indexes described by table.json
// that are missing from db.
func CreateTableIndex(db *mongo.Database) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	if err = createTable(db, tables); err != nil {
		return err
	}
	for _, table := range tables {
		if err = createIndex(db, table); err != nil {
			return err
		}
	}
	return nil
}

func loadTables() ([]*tableInfo, error) {
	var res []*tableInfo
	if err := json.Unmarshal([]byte(tableCfg), &res); err != nil {
		return nil, fmt.Errorf("database table info error: %w", err)
	}
	return res, nil
}

func tableIsExists(name string, collections []string) bool {
	for i := 0; i < len(collections); i++ {
		if collections[i] == name {
			return true
		}
	}
	return false
}

func createTable(db *mongo.Database, tables []*tableInfo) error {
	collectionNames, err := GetTableInfos(db)
	if err != nil {
		return fmt.Errorf("get all collection error: %w", err)
	}
	for _, table := range tables {
		if tableIsExists(table.TableName, collectionNames) {
			continue
		}
		if err = db.CreateCollection(context.TODO(), table.TableName); err != nil {
			return err
		}
	}
	return nil
}

// indexKeys keeps the key order of params, which is significant for compound indexes.
func indexKeys(params param) bson.D {
	keys := bson.D{}
	for _, p := range params {
		for key, value := range p {
			if s, ok := value.(string); ok {
				keys = append(keys, bson.E{Key: key, Value: s})
			} else {
				keys = append(keys, bson.E{Key: key, Value: gconv.Int(value)})
			}
		}
	}
	return keys
}

func createIndex(db *mongo.Database, table *tableInfo) error {
	collection := db.Collection(table.TableName)
	if k := len(table.Indexes); k > 0 {
		idx := make([]mongo.IndexModel, k)
		for i, params := range table.Indexes {
			idx[i] = mongo.IndexModel{Keys: indexKeys(params)}
		}
		if _, err := collection.Indexes().CreateMany(context.TODO(), idx); err != nil {
			return fmt.Errorf("table: %s, create index: %w", table.TableName, err)
		}
	}
	if k := len(table.UniqueIndexes); k > 0 {
		idx := make([]mongo.IndexModel, k)
		for i, params := range table.UniqueIndexes {
			idx[i] = mongo.IndexModel{Keys: indexKeys(params), Options: options.Index().SetUnique(true)}
		}
		if _, err := collection.Indexes().CreateMany(context.TODO(), idx); err != nil {
			return fmt.Errorf("table: %s, create unique index: %w", table.TableName, err)
		}
	}
	return nil
}
