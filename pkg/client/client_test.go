package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/FavorLabs/favor-comments/internal/controller"
	"github.com/FavorLabs/favor-comments/internal/dao/memory"
	"github.com/FavorLabs/favor-comments/internal/registry"
	"github.com/FavorLabs/favor-comments/internal/routers"
	"github.com/FavorLabs/favor-comments/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := registry.New()
	_, err := reg.Set(registry.Options{Model: memory.NewCommentModel(nil)})
	require.NoError(t, err)
	svc := service.New(reg, nil)
	t.Cleanup(svc.Close)

	srv := httptest.NewServer(routers.NewRouter(controller.New(svc)))
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client())
}

func TestGatewayRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)
	postID := primitive.NewObjectID().Hex()

	created, err := g.CreateComment(ctx, &CreateRequest{
		Author:  primitive.NewObjectID().Hex(),
		Content: "<script>alert(1)</script>Hello",
		PostID:  postID,
	})
	require.NoError(t, err)
	assert.Equal(t, 201, created.Code)
	require.NotNil(t, created.CreatedComment)
	assert.Equal(t, "Hello", *created.CreatedComment.Content)
	id := created.CreatedComment.ID.Hex()

	list, err := g.ListComments(ctx, postID, &ListOptions{Populate: []string{"replies"}})
	require.NoError(t, err)
	require.Len(t, list.Comments, 1)
	require.NotNil(t, list.NextCursor)
	assert.True(t, list.NextCursor.Equal(list.Comments[0].CreatedAt))

	updated, err := g.UpdateComment(ctx, id, "edited")
	require.NoError(t, err)
	assert.Equal(t, "Hello", *updated.OldComment.Content)
	assert.Equal(t, "edited", *updated.UpdatedComment.Content)

	deleted, err := g.DeleteComment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "edited", *deleted.DeletedComment.Content)

	got, err := g.GetComment(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Comment.Content)

	_, err = g.ListComments(ctx, postID, &ListOptions{Cursor: list.NextCursor})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
}

func TestGatewayErrors(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	_, err := g.ListComments(ctx, "", nil)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Code)
	assert.Contains(t, apiErr.Message, "postID")

	res, err := g.DeleteComment(ctx, primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to delete comment", res.Message)
}
