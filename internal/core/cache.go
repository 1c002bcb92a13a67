package core

import (
	"time"

	"github.com/FavorLabs/favor-comments/internal/model"
)

type (
	Comment     = model.Comment
	NewComment  = model.NewComment
	ReadOptions = model.ReadOptions
)

// CommentCacheService stores encoded single comment reads.
type CommentCacheService interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte, expire time.Duration) error
	// Delete drops keys, missing keys are not an error.
	Delete(keys ...string) error
}
