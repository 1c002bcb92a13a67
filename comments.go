// Package comments is a pluggable comments dependency: threaded comments on
// posts with cursor pagination, payload validation and content sanitization,
// stored through a configurable model.
//
// A Dependency is configured with either a mongo database, from which the
// default model is derived, or a caller supplied CommentModel:
//
//	dep, err := comments.New(comments.Options{Database: db})
//	res := dep.ListComments(ctx, &comments.ListRequest{PostID: postID})
package comments

import (
	"context"

	"github.com/FavorLabs/favor-comments/internal/controller"
	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/FavorLabs/favor-comments/internal/registry"
	"github.com/FavorLabs/favor-comments/internal/service"
	"github.com/FavorLabs/favor-comments/pkg/sanitize"
)

type (
	Comment      = model.Comment
	NewComment   = model.NewComment
	CommentQuery = model.CommentQuery
	ReadOptions  = model.ReadOptions
	CommentModel = core.CommentModel
	Sanitizer    = sanitize.Sanitizer

	Options = registry.Options
	Config  = registry.Config

	Action           = controller.Action
	ListRequest      = controller.ListRequest
	ListResponse     = controller.ListResponse
	GetRequest       = controller.GetRequest
	GetResponse      = controller.GetResponse
	MutationRequest  = controller.MutationRequest
	MutationResponse = controller.MutationResponse
)

const (
	ActionCreate = controller.ActionCreate
	ActionUpdate = controller.ActionUpdate
	ActionDelete = controller.ActionDelete
)

var (
	ErrBothProvided  = registry.ErrBothProvided
	ErrNoneProvided  = registry.ErrNoneProvided
	ErrInvalidAction = controller.ErrInvalidAction
)

type settings struct {
	sanitizer Sanitizer
	registry  []registry.Option
	service   []service.Option
}

type Setting func(*settings)

// WithSanitizer replaces the default ugc sanitize policy.
func WithSanitizer(s Sanitizer) Setting {
	return func(o *settings) {
		o.sanitizer = s
	}
}

// WithModelFactory changes how the model is derived from Options.Database.
func WithModelFactory(f registry.ModelFactory) Setting {
	return func(o *settings) {
		o.registry = append(o.registry, registry.WithModelFactory(f))
	}
}

func WithDefaultQuantity(n int) Setting {
	return func(o *settings) {
		o.service = append(o.service, service.WithDefaultQuantity(n))
	}
}

func WithMaxQuantity(n int) Setting {
	return func(o *settings) {
		o.service = append(o.service, service.WithMaxQuantity(n))
	}
}

type Dependency struct {
	reg *registry.Registry
	svc *service.CommentService
	ctl *controller.Controller
}

// New configures a Dependency. Configuration errors are returned here and
// never through response envelopes.
func New(opts Options, ss ...Setting) (*Dependency, error) {
	s := &settings{}
	for _, fn := range ss {
		fn(s)
	}
	reg := registry.New(s.registry...)
	if _, err := reg.Set(opts); err != nil {
		return nil, err
	}
	svc := service.New(reg, s.sanitizer, s.service...)
	return &Dependency{
		reg: reg,
		svc: svc,
		ctl: controller.New(svc),
	}, nil
}

// Reconfigure swaps the storage model. Requests started afterwards use the
// new model.
func (d *Dependency) Reconfigure(opts Options) (Config, error) {
	return d.reg.Set(opts)
}

func (d *Dependency) Config() Config {
	return d.reg.Current()
}

func (d *Dependency) ListComments(ctx context.Context, req *ListRequest) *ListResponse {
	return d.ctl.ListComments(ctx, req)
}

func (d *Dependency) GetComment(ctx context.Context, req *GetRequest) *GetResponse {
	return d.ctl.GetComment(ctx, req)
}

func (d *Dependency) MutateComment(ctx context.Context, req *MutationRequest) *MutationResponse {
	return d.ctl.MutateComment(ctx, req)
}

func (d *Dependency) Close() {
	d.svc.Close()
}
