// Package service implements comment listing, reads and writes on top of the
// configured comment model.
package service

import (
	"sync"

	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/registry"
	"github.com/FavorLabs/favor-comments/pkg/sanitize"
)

const (
	DefaultQuantity = 15
	MaxQuantity     = 100
)

type Option func(*CommentService)

// WithDefaultQuantity sets the page size used when a list request omits it.
func WithDefaultQuantity(n int) Option {
	return func(s *CommentService) {
		if n > 0 {
			s.defaultQuantity = n
		}
	}
}

// WithMaxQuantity caps the page size. Zero disables the cap.
func WithMaxQuantity(n int) Option {
	return func(s *CommentService) {
		if n >= 0 {
			s.maxQuantity = n
		}
	}
}

type CommentService struct {
	sanitizer       sanitize.Sanitizer
	defaultQuantity int
	maxQuantity     int

	mu           sync.RWMutex
	model        core.CommentModel
	defaultModel bool
	cancel       func()
}

// New binds a service to reg. The model handle follows every later
// reconfiguration of reg until Close is called. A nil sanitizer uses the ugc policy.
func New(reg *registry.Registry, sanitizer sanitize.Sanitizer, opts ...Option) *CommentService {
	if sanitizer == nil {
		sanitizer = sanitize.New(sanitize.PolicyUGC)
	}
	s := &CommentService{
		sanitizer:       sanitizer,
		defaultQuantity: DefaultQuantity,
		maxQuantity:     MaxQuantity,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cancel = reg.Watch(s.apply)
	return s
}

func (s *CommentService) apply(cfg registry.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = cfg.Model
	s.defaultModel = cfg.DefaultModel
}

func (s *CommentService) active() (core.CommentModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model, s.defaultModel
}

// Close stops following registry updates.
func (s *CommentService) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
