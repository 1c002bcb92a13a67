package conf

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yaml.sample
var defaultConfig []byte

type Setting struct {
	vp *viper.Viper
}

type AppSettingS struct {
	DefaultQuantity int
	MaxQuantity     int
	SanitizePolicy  string
}

type ServerSettingS struct {
	RunMode      string
	HttpIp       string
	HttpPort     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerSettingS struct {
	Level string
}

type LoggerFileSettingS struct {
	SavePath   string
	FileName   string
	FileExt    string
	MaxSize    int
	MaxAge     int
	MaxBackups int
	Compress   bool
}

type MongoDBSettingS struct {
	Host           string
	UserName       string
	Password       string
	DBName         string
	Params         string
	ConnectTimeout time.Duration
	UserTable      string
	PostTable      string
}

type RedisSettingS struct {
	Host     string
	Password string
	DB       int
}

type CommentCacheSettingS struct {
	MaxSizeMB      int
	ExpireInSecond time.Duration
	Verbose        bool
}

type FeaturesSettingS struct {
	kv       map[string]string
	suites   map[string][]string
	features map[string]string
}

// NewSetting loads the embedded defaults and merges config.yaml found in
// configPath, the working directory or configs/ on top of them.
func NewSetting(configPath ...string) (*Setting, error) {
	vp := viper.New()
	vp.SetConfigType("yaml")
	if err := vp.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, err
	}

	vp.SetConfigName("config")
	for _, p := range configPath {
		if p != "" {
			vp.AddConfigPath(p)
		}
	}
	vp.AddConfigPath(".")
	vp.AddConfigPath("configs/")
	if err := vp.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Setting{vp: vp}, nil
}

func (s *Setting) ReadSection(k string, v interface{}) error {
	err := s.vp.UnmarshalKey(k, v)
	if err != nil {
		return err
	}
	return nil
}

func (s *Setting) Unmarshal(objects map[string]interface{}) error {
	for k, v := range objects {
		err := s.vp.UnmarshalKey(k, v)
		if err != nil {
			return fmt.Errorf("unmarshal %s: %w", k, err)
		}
	}
	return nil
}

func (s *Setting) FeaturesFrom(k string) *FeaturesSettingS {
	sub := s.vp.Sub(k)
	if sub == nil {
		return newFeatures(nil, nil)
	}
	keys := sub.AllKeys()

	suites := make(map[string][]string)
	kv := make(map[string]string, len(keys))
	for _, key := range keys {
		val := sub.Get(key)
		switch v := val.(type) {
		case string:
			kv[key] = v
		case []interface{}:
			suites[key] = sub.GetStringSlice(key)
		}
	}
	return newFeatures(suites, kv)
}

func (s *MongoDBSettingS) Dsn() string {
	var auth string
	if s.UserName != "" {
		auth = fmt.Sprintf("%s:%s@", s.UserName, s.Password)
	}
	dsn := fmt.Sprintf("mongodb://%s%s/", auth, s.Host)
	if s.Params != "" {
		dsn += "?" + strings.TrimPrefix(s.Params, "?")
	}
	return dsn
}

func (s *LoggerFileSettingS) Filename() string {
	return strings.TrimRight(s.SavePath, "/") + "/" + s.FileName + s.FileExt
}

func newFeatures(suites map[string][]string, kv map[string]string) *FeaturesSettingS {
	s := make(map[string][]string, len(suites))
	for name, items := range suites {
		s[strings.ToLower(name)] = items
	}
	k := make(map[string]string, len(kv))
	for key, value := range kv {
		k[strings.ToLower(key)] = value
	}
	features := &FeaturesSettingS{
		suites:   s,
		kv:       k,
		features: make(map[string]string),
	}
	features.UseDefault()
	return features
}

func (f *FeaturesSettingS) UseDefault() {
	f.Use([]string{"default"}, true)
}

// Use turns on the given features, expanding suite names recursively. With
// noDefault the previously enabled features are dropped first.
func (f *FeaturesSettingS) Use(suite []string, noDefault bool) error {
	if noDefault {
		f.features = make(map[string]string)
	}
	for _, feature := range f.flatFeatures(suite) {
		f.features[feature] = f.kv[feature]
	}
	return nil
}

func (f *FeaturesSettingS) flatFeatures(suite []string) []string {
	seen := make(map[string]struct{})
	features := make([]string, 0, len(suite))
	queue := append([]string{}, suite...)
	for len(queue) > 0 {
		item := strings.ToLower(strings.TrimSpace(queue[0]))
		queue = queue[1:]
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		features = append(features, item)
		queue = append(queue, f.suites[item]...)
	}
	return features
}

// Cfg get value by key if exist
func (f *FeaturesSettingS) Cfg(key string) (string, bool) {
	key = strings.ToLower(key)
	value, exist := f.features[key]
	return value, exist
}

// CfgIf check expression is true. if expression just have a string like
// `Sms` is mean `Sms` whether defined in Suite feature settings. expression like
// `Sms = SmsJuhe` is mean whether `Sms` define in Suite feature settings and value
// is `SmsJuhe``
func (f *FeaturesSettingS) CfgIf(expression string) bool {
	kv := strings.Split(expression, "=")
	key := strings.ToLower(strings.TrimSpace(kv[0]))
	v, ok := f.features[key]
	if len(kv) == 2 && ok && len(v) != 0 {
		return strings.EqualFold(v, strings.TrimSpace(kv[1]))
	}
	return ok && len(kv) == 1
}
