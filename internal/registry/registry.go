// Package registry holds the active comment storage configuration and tells
// dependents when it changes.
package registry

import (
	"errors"
	"sync"

	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/dao/monogo"
	"github.com/FavorLabs/favor-comments/pkg/psub"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

const topicConfig = "config"

var (
	ErrBothProvided = errors.New("registry: provide either a database or a model, not both")
	ErrNoneProvided = errors.New("registry: a database or a model must be provided")
)

// ModelFactory derives the default comment model from a database handle.
type ModelFactory func(db *mongo.Database) core.CommentModel

// Options is the input of Set. Exactly one field must be filled.
type Options struct {
	Database *mongo.Database
	Model    core.CommentModel
}

// Config is the active configuration. DefaultModel is true when Model was
// derived from Database, which turns on payload validation in the service.
type Config struct {
	Database     *mongo.Database
	Model        core.CommentModel
	DefaultModel bool
}

type Option func(*Registry)

// WithModelFactory replaces the factory used for Options.Database.
func WithModelFactory(factory ModelFactory) Option {
	return func(r *Registry) {
		if factory != nil {
			r.factory = factory
		}
	}
}

type Registry struct {
	// publish serializes store and notify so subscribers see changes in Set order
	publish sync.Mutex
	mu      sync.RWMutex
	current Config
	factory ModelFactory
	pubsub  *psub.Service
}

func New(opts ...Option) *Registry {
	r := &Registry{
		factory: func(db *mongo.Database) core.CommentModel {
			return monogo.NewCommentModel(db)
		},
		pubsub: psub.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Set replaces the active configuration and notifies every subscriber before
// returning. Subscribers must not call Set.
func (r *Registry) Set(opts Options) (Config, error) {
	var cfg Config
	switch {
	case opts.Database != nil && opts.Model != nil:
		return cfg, ErrBothProvided
	case opts.Database != nil:
		cfg = Config{
			Database:     opts.Database,
			Model:        r.factory(opts.Database),
			DefaultModel: true,
		}
	case opts.Model != nil:
		cfg = Config{Model: opts.Model}
	default:
		return cfg, ErrNoneProvided
	}

	r.publish.Lock()
	defer r.publish.Unlock()

	r.mu.Lock()
	r.current = cfg
	r.mu.Unlock()

	logrus.Debugf("registry: comment model replaced, default model: %t", cfg.DefaultModel)
	r.pubsub.Notify(topicConfig, cfg)
	return cfg, nil
}

func (r *Registry) Current() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Subscribe registers fn for configuration changes. fn is not called with the
// current configuration; use Current for that.
func (r *Registry) Subscribe(fn func(Config)) (cancel func()) {
	n := r.pubsub.NewSubscribe(topicConfig, func(v interface{}) {
		if cfg, ok := v.(Config); ok {
			fn(cfg)
		}
	})
	return n.Cancel
}

// Watch calls fn with the current configuration and then with every later one.
// No Set can land between the first call and the subscription.
func (r *Registry) Watch(fn func(Config)) (cancel func()) {
	r.publish.Lock()
	defer r.publish.Unlock()

	cancel = r.Subscribe(fn)
	fn(r.Current())
	return cancel
}
