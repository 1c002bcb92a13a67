package core

import (
	"context"

	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/Masterminds/semver/v3"
)

// CommentModel is the storage collaborator behind every comment operation.
// Lookups of an absent id answer (nil, nil) rather than an error.
type CommentModel interface {
	Find(ctx context.Context, q *model.CommentQuery) ([]*model.Comment, error)
	FindByID(ctx context.Context, id string, opts *model.ReadOptions) (*model.Comment, error)
	// FindByIDAndUpdate replaces the content and returns the comment as it was before.
	FindByIDAndUpdate(ctx context.Context, id string, content *string, opts *model.ReadOptions) (*model.Comment, error)
	// Create stores c and, when it names a parent, appends the new id to the
	// parent's replies.
	Create(ctx context.Context, c *model.NewComment) (string, error)
	Exists(ctx context.Context, id string) (bool, error)
	IsValidID(id string) bool
}

// VersionInfo describes a storage or cache implementation in startup logs.
type VersionInfo interface {
	Name() string
	Version() *semver.Version
}
