package memory

import (
	"context"
	"testing"
	"time"

	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// tick returns a clock advancing one second per call.
func tick(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewCommentModel(tick(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	postID := primitive.NewObjectID().Hex()
	author := primitive.NewObjectID().Hex()

	var ids []string
	for _, content := range []string{"first", "second", "third"} {
		id, err := s.Create(ctx, &model.NewComment{Author: author, Content: content, PostID: postID})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := s.Create(ctx, &model.NewComment{Author: author, Content: "elsewhere", PostID: primitive.NewObjectID().Hex()})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())

	comments, err := s.Find(ctx, &model.CommentQuery{PostID: postID, Before: time.Now().Add(time.Hour), Limit: 2})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "third", *comments[0].Content)
	assert.Equal(t, "second", *comments[1].Content)

	comments, err = s.Find(ctx, &model.CommentQuery{PostID: postID, Before: comments[1].CreatedAt})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, ids[0], comments[0].ID.Hex())

	_, err = s.Find(ctx, &model.CommentQuery{PostID: "bad"})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestReplyLinksParent(t *testing.T) {
	ctx := context.Background()
	s := NewCommentModel(nil)
	postID := primitive.NewObjectID().Hex()
	author := primitive.NewObjectID().Hex()

	parentID, err := s.Create(ctx, &model.NewComment{Author: author, Content: "parent", PostID: postID})
	require.NoError(t, err)
	replyID, err := s.Create(ctx, &model.NewComment{Author: author, Content: "reply", PostID: postID, ParentCommentID: parentID})
	require.NoError(t, err)

	parent, err := s.FindByID(ctx, parentID, &model.ReadOptions{Lean: true, Populate: []string{model.FieldReplies}})
	require.NoError(t, err)
	require.Len(t, parent.Replies, 1)
	assert.Equal(t, replyID, parent.Replies[0].Hex())
	replies := parent.Populated[model.FieldReplies].([]*model.Comment)
	require.Len(t, replies, 1)
	assert.Equal(t, "reply", *replies[0].Content)

	reply, err := s.FindByID(ctx, replyID, &model.ReadOptions{Populate: []string{model.FieldParentCommentID}})
	require.NoError(t, err)
	assert.Equal(t, parentID, reply.ParentCommentID.Hex())
	assert.NotNil(t, reply.Raw)
	assert.Equal(t, "parent", *reply.Populated[model.FieldParentCommentID].(*model.Comment).Content)
}

func TestFindByIDAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewCommentModel(nil)
	id, err := s.Create(ctx, &model.NewComment{
		Author:  primitive.NewObjectID().Hex(),
		Content: "before",
		PostID:  primitive.NewObjectID().Hex(),
	})
	require.NoError(t, err)

	after := "after"
	old, err := s.FindByIDAndUpdate(ctx, id, &after, nil)
	require.NoError(t, err)
	assert.Equal(t, "before", *old.Content)

	current, err := s.FindByID(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, "after", *current.Content)

	old, err = s.FindByIDAndUpdate(ctx, id, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "after", *old.Content)
	current, err = s.FindByID(ctx, id, nil)
	require.NoError(t, err)
	assert.Nil(t, current.Content)

	missing, err := s.FindByIDAndUpdate(ctx, primitive.NewObjectID().Hex(), &after, nil)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewCommentModel(nil)
	id, err := s.Create(ctx, &model.NewComment{
		Author:  primitive.NewObjectID().Hex(),
		Content: "stable",
		PostID:  primitive.NewObjectID().Hex(),
	})
	require.NoError(t, err)

	c, err := s.FindByID(ctx, id, nil)
	require.NoError(t, err)
	*c.Content = "mutated"

	c, err = s.FindByID(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, "stable", *c.Content)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	s := NewCommentModel(nil)
	id, err := s.Create(ctx, &model.NewComment{
		Author:  primitive.NewObjectID().Hex(),
		Content: "x",
		PostID:  primitive.NewObjectID().Hex(),
	})
	require.NoError(t, err)

	ok, err := s.Exists(ctx, id)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, primitive.NewObjectID().Hex())
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Exists(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.False(t, s.IsValidID("nope"))
}
