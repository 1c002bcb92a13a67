package routers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FavorLabs/favor-comments/internal/controller"
	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/dao/memory"
	"github.com/FavorLabs/favor-comments/internal/middleware"
	"github.com/FavorLabs/favor-comments/internal/registry"
	"github.com/FavorLabs/favor-comments/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type envelope struct {
	Success        bool                     `json:"success"`
	Code           int                      `json:"code"`
	Message        string                   `json:"message"`
	Comments       []map[string]interface{} `json:"comments"`
	NextCursor     string                   `json:"nextCursor"`
	Comment        map[string]interface{}   `json:"comment"`
	CreatedComment map[string]interface{}   `json:"createdComment"`
	UpdatedComment map[string]interface{}   `json:"updatedComment"`
	OldComment     map[string]interface{}   `json:"oldComment"`
	DeletedComment map[string]interface{}   `json:"deletedComment"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := memory.NewCommentModel(nil)
	reg := registry.New(registry.WithModelFactory(func(*mongo.Database) core.CommentModel { return m }))
	_, err := reg.Set(registry.Options{Database: &mongo.Database{}})
	require.NoError(t, err)
	svc := service.New(reg, nil)
	t.Cleanup(svc.Close)
	return NewRouter(controller.New(svc))
}

func do(t *testing.T, e *gin.Engine, method, target string, body interface{}, header ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestCommentRoutes(t *testing.T) {
	e := newTestRouter(t)
	postID := primitive.NewObjectID().Hex()

	w, env := do(t, e, http.MethodGet, "/v1/comments?postID="+postID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)

	w, env = do(t, e, http.MethodPost, "/v1/comments", map[string]interface{}{
		"author":  primitive.NewObjectID().Hex(),
		"content": "<script>alert(1)</script>Hello",
		"postID":  postID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 201, env.Code)
	assert.Equal(t, "Hello", env.CreatedComment["content"])
	id, _ := env.CreatedComment["_id"].(string)
	require.NotEmpty(t, id)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w, env = do(t, e, http.MethodGet, "/v1/comments?postID="+postID+"&quantity=-3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Comments, 1)
	assert.NotEmpty(t, env.Message)
	assert.NotEmpty(t, env.NextCursor)

	w, env = do(t, e, http.MethodPut, "/v1/comments/"+id, map[string]interface{}{"content": "edited"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Hello", env.OldComment["content"])
	assert.Equal(t, "edited", env.UpdatedComment["content"])

	w, env = do(t, e, http.MethodDelete, "/v1/comments/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", env.DeletedComment["content"])

	w, env = do(t, e, http.MethodGet, "/v1/comments/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, env.Comment["content"])
}

func TestCommentRoutesRejectBadInput(t *testing.T) {
	e := newTestRouter(t)

	w, _ := do(t, e, http.MethodGet, "/v1/comments", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, e, http.MethodGet, "/v1/comments?postID="+primitive.NewObjectID().Hex()+"&cursor=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, e, http.MethodGet, "/v1/comments/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, e, http.MethodPost, "/v1/comments", map[string]interface{}{"content": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "author postID")

	w, _ = do(t, e, http.MethodPut, "/v1/comments/"+primitive.NewObjectID().Hex(), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, e, http.MethodDelete, "/v1/comments/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w, env = do(t, e, http.MethodPatch, "/v1/comments/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusMethodNotAllowed, env.Code)
	assert.Equal(t, "Method Not Allowed", env.Message)

	w, env = do(t, e, http.MethodGet, "/v1/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, env.Code)
	assert.Equal(t, "Not Found", env.Message)
}

func TestGetCommentETag(t *testing.T) {
	e := newTestRouter(t)
	w, env := do(t, e, http.MethodPost, "/v1/comments", map[string]interface{}{
		"author":  primitive.NewObjectID().Hex(),
		"content": "cached",
		"postID":  primitive.NewObjectID().Hex(),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	target := "/v1/comments/" + env.CreatedComment["_id"].(string)

	w, _ = do(t, e, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tag := w.Header().Get("ETag")
	require.NotEmpty(t, tag)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("If-None-Match", tag)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
