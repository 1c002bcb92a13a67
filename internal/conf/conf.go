package conf

import (
	"log"
	"os"
	"reflect"
	"strings"
	"time"
)

var (
	loggerSetting     *LoggerSettingS
	loggerFileSetting *LoggerFileSettingS
	features          *FeaturesSettingS

	AppSetting          *AppSettingS
	ServerSetting       *ServerSettingS
	MongoDBSetting      *MongoDBSettingS
	RedisSetting        *RedisSettingS
	CommentCacheSetting *CommentCacheSettingS
)

func setupSetting(suite []string, noDefault bool, configPath ...string) error {
	setting, err := NewSetting(configPath...)
	if err != nil {
		return err
	}

	features = setting.FeaturesFrom("Features")
	if len(suite) > 0 {
		if err = features.Use(suite, noDefault); err != nil {
			return err
		}
	}

	objects := map[string]interface{}{
		"App":          &AppSetting,
		"Server":       &ServerSetting,
		"Logger":       &loggerSetting,
		"LoggerFile":   &loggerFileSetting,
		"MongoDB":      &MongoDBSetting,
		"Redis":        &RedisSetting,
		"CommentCache": &CommentCacheSetting,
	}
	if err = setting.Unmarshal(objects); err != nil {
		return err
	}

	ServerSetting.ReadTimeout *= time.Second
	ServerSetting.WriteTimeout *= time.Second
	MongoDBSetting.ConnectTimeout *= time.Second
	CommentCacheSetting.ExpireInSecond *= time.Second

	return nil
}

func Initialize(suite []string, noDefault bool, configPath ...string) {
	err := setupSetting(suite, noDefault, configPath...)
	if err != nil {
		log.Fatalf("init.setupSetting err: %v", err)
	}

	CheckSetting(MongoDBSetting, "host", "dbname")
	CheckSetting(ServerSetting, "httpport")
	if CfgIf("Redis") {
		CheckSetting(RedisSetting, "host")
	}

	// set default timezone
	_ = os.Setenv("TZ", "UTC")

	setupLogger()
}

func CheckSetting(i interface{}, keys ...string) {
	rv := reflect.ValueOf(i)

	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	for _, key := range keys {
		f := rv.FieldByNameFunc(func(s string) bool {
			return strings.ToLower(s) == key
		})
		if !f.IsValid() || f.IsZero() {
			log.Fatalf("%s.%s must be filled", rv.Type().Name(), key)
		}
	}
}

// Cfg get value by key if exist
func Cfg(key string) (string, bool) {
	if features == nil {
		return "", false
	}
	return features.Cfg(key)
}

// CfgIf check expression is true. if expression just have a string like
// "Redis" it reports whether the feature is on, "Sanitizer = strict" also
// compares the feature value.
func CfgIf(expression string) bool {
	if features == nil {
		return false
	}
	return features.CfgIf(expression)
}
