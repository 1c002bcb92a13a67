package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/FavorLabs/favor-comments/pkg/json"
	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"
)

var (
	_ core.CommentModel = (*commentCacheServant)(nil)
	_ core.VersionInfo  = (*commentCacheServant)(nil)
)

// cacheEntry carries the raw document next to the comment since Comment.Raw
// is not part of its json form.
type cacheEntry struct {
	Comment *model.Comment `json:"comment"`
	Raw     []byte         `json:"raw,omitempty"`
}

// commentCacheServant serves unpopulated FindByID reads from cache and drops
// the entries of a comment whenever it or its replies list changes.
type commentCacheServant struct {
	core.CommentModel

	cache  core.CommentCacheService
	expire time.Duration
}

func NewCommentCacheServant(m core.CommentModel, cache core.CommentCacheService, expire time.Duration) core.CommentModel {
	return &commentCacheServant{
		CommentModel: m,
		cache:        cache,
		expire:       expire,
	}
}

func (s *commentCacheServant) Name() string {
	name := "Unknown"
	if v, ok := s.CommentModel.(core.VersionInfo); ok {
		name = v.Name()
	}
	if v, ok := s.cache.(core.VersionInfo); ok {
		return fmt.Sprintf("%s+%s", name, v.Name())
	}
	return name + "+Cache"
}

func (s *commentCacheServant) Version() *semver.Version {
	return semver.MustParse("v0.1.0")
}

func (s *commentCacheServant) FindByID(ctx context.Context, id string, opts *model.ReadOptions) (*model.Comment, error) {
	if opts != nil && len(opts.Populate) > 0 {
		return s.CommentModel.FindByID(ctx, id, opts)
	}
	lean := opts == nil || opts.Lean
	key := s.keyFrom(id, lean)
	if comment, err := s.getComment(key); err == nil {
		logrus.Debugf("commentCacheServant.FindByID get comment from cache by key: %s", key)
		return comment, nil
	}

	comment, err := s.CommentModel.FindByID(ctx, id, opts)
	if err != nil || comment == nil {
		return comment, err
	}
	logrus.Debugf("commentCacheServant.FindByID get comment from database by key: %s", key)
	s.setComment(key, comment)
	return comment, nil
}

func (s *commentCacheServant) FindByIDAndUpdate(ctx context.Context, id string, content *string, opts *model.ReadOptions) (*model.Comment, error) {
	old, err := s.CommentModel.FindByIDAndUpdate(ctx, id, content, opts)
	s.deleteComment(id)
	return old, err
}

func (s *commentCacheServant) Create(ctx context.Context, c *model.NewComment) (string, error) {
	id, err := s.CommentModel.Create(ctx, c)
	if c != nil && c.ParentCommentID != "" {
		s.deleteComment(c.ParentCommentID)
	}
	return id, err
}

func (s *commentCacheServant) getComment(key string) (*model.Comment, error) {
	data, err := s.cache.Get(key)
	if err != nil {
		logrus.Debugf("commentCacheServant.getComment get comment by key: %s from cache err: %v", key, err)
		return nil, err
	}
	var entry cacheEntry
	if err = json.Unmarshal(data, &entry); err != nil {
		logrus.Debugf("commentCacheServant.getComment decode comment from cache err: %v", err)
		return nil, err
	}
	if entry.Comment == nil {
		return nil, fmt.Errorf("empty cache entry %s", key)
	}
	if len(entry.Raw) > 0 {
		entry.Comment.Raw = entry.Raw
	}
	return entry.Comment, nil
}

func (s *commentCacheServant) setComment(key string, comment *model.Comment) {
	data, err := json.Marshal(&cacheEntry{Comment: comment, Raw: comment.Raw})
	if err != nil {
		logrus.Debugf("commentCacheServant.setComment encode comment err: %v", err)
		return
	}
	if err = s.cache.Set(key, data, s.expire); err != nil {
		logrus.Debugf("commentCacheServant.setComment set cache err: %v", err)
		return
	}
	logrus.Debugf("commentCacheServant.setComment set cache by key: %s", key)
}

func (s *commentCacheServant) deleteComment(id string) {
	if err := s.cache.Delete(s.keyFrom(id, true), s.keyFrom(id, false)); err != nil {
		logrus.Warnf("commentCacheServant.deleteComment id: %s err: %v", id, err)
	}
}

func (s *commentCacheServant) keyFrom(id string, lean bool) string {
	if lean {
		return fmt.Sprintf("comment:%s:lean", id)
	}
	return fmt.Sprintf("comment:%s:full", id)
}
