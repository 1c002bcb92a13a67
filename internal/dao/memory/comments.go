// Package memory keeps comments in process. It is the reference custom model
// and backs the service and controller tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/FavorLabs/favor-comments/pkg/util"
	"github.com/Masterminds/semver/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ core.CommentModel = (*CommentServant)(nil)
	_ core.VersionInfo  = (*CommentServant)(nil)
)

var ErrInvalidID = errors.New("invalid comment id")

type CommentServant struct {
	mu       sync.RWMutex
	comments map[primitive.ObjectID]*model.Comment
	now      func() time.Time
}

// NewCommentModel returns an empty in-memory model. now may be nil.
func NewCommentModel(now func() time.Time) *CommentServant {
	if now == nil {
		now = model.Now
	}
	return &CommentServant{
		comments: make(map[primitive.ObjectID]*model.Comment),
		now:      now,
	}
}

func (s *CommentServant) Name() string {
	return "MemoryComment"
}

func (s *CommentServant) Version() *semver.Version {
	return semver.MustParse("v0.1.0")
}

func (s *CommentServant) IsValidID(id string) bool {
	return util.IsObjectIDHex(id)
}

// Len reports how many comments are stored.
func (s *CommentServant) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.comments)
}

func (s *CommentServant) Find(_ context.Context, q *model.CommentQuery) ([]*model.Comment, error) {
	postID, err := primitive.ObjectIDFromHex(q.PostID)
	if err != nil {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]*model.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID && c.CreatedAt.Before(q.Before) {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID.Hex() > comments[j].ID.Hex()
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	if q.Limit > 0 && len(comments) > q.Limit {
		comments = comments[:q.Limit]
	}

	out := make([]*model.Comment, len(comments))
	for i, c := range comments {
		out[i] = s.read(c, &q.ReadOptions)
	}
	return out, nil
}

func (s *CommentServant) FindByID(_ context.Context, id string, opts *model.ReadOptions) (*model.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[oid]
	if !ok {
		return nil, nil
	}
	return s.read(c, opts), nil
}

func (s *CommentServant) FindByIDAndUpdate(_ context.Context, id string, content *string, opts *model.ReadOptions) (*model.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[oid]
	if !ok {
		return nil, nil
	}
	old := s.read(c, opts)

	updated := c.Clone()
	if content != nil {
		v := *content
		updated.Content = &v
	} else {
		updated.Content = nil
	}
	updated.UpdatedAt = s.now()
	s.comments[oid] = updated
	return old, nil
}

func (s *CommentServant) Create(_ context.Context, nc *model.NewComment) (string, error) {
	author, err := primitive.ObjectIDFromHex(nc.Author)
	if err != nil {
		return "", ErrInvalidID
	}
	postID, err := primitive.ObjectIDFromHex(nc.PostID)
	if err != nil {
		return "", ErrInvalidID
	}
	parentID, err := util.OptionalObjectID(nc.ParentCommentID)
	if err != nil {
		return "", ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	content := nc.Content
	c := &model.Comment{
		ID:              primitive.NewObjectID(),
		Author:          author,
		Content:         &content,
		PostID:          postID,
		ParentCommentID: parentID,
		Replies:         []primitive.ObjectID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.comments[c.ID] = c

	if parentID != nil {
		if parent, ok := s.comments[*parentID]; ok {
			updated := parent.Clone()
			updated.Replies = append(updated.Replies, c.ID)
			updated.UpdatedAt = now
			s.comments[parent.ID] = updated
		}
	}
	return c.ID.Hex(), nil
}

func (s *CommentServant) Exists(_ context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.comments[oid]
	return ok, nil
}

// read copies c and applies population of the comment references it can
// resolve on its own. Caller holds the lock.
func (s *CommentServant) read(c *model.Comment, opts *model.ReadOptions) *model.Comment {
	out := c.Clone()
	if opts == nil {
		return out
	}
	if !opts.Lean {
		if raw, err := bson.Marshal(out); err == nil {
			out.Raw = raw
		}
	}
	for _, field := range opts.Populate {
		switch field {
		case model.FieldParentCommentID:
			var parent interface{}
			if c.ParentCommentID != nil {
				if p, ok := s.comments[*c.ParentCommentID]; ok {
					parent = p.Clone()
				}
			}
			setPopulated(out, field, parent)
		case model.FieldReplies:
			replies := make([]*model.Comment, 0, len(c.Replies))
			for _, id := range c.Replies {
				if r, ok := s.comments[id]; ok {
					replies = append(replies, r.Clone())
				}
			}
			setPopulated(out, field, replies)
		}
	}
	return out
}

func setPopulated(c *model.Comment, field string, value interface{}) {
	if c.Populated == nil {
		c.Populated = make(map[string]interface{})
	}
	c.Populated[field] = value
}
