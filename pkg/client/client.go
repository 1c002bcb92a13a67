// Package client talks to the comments HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/FavorLabs/favor-comments/pkg/json"
	"github.com/go-resty/resty/v2"
)

type Gateway struct {
	client *resty.Client
}

// New returns a gateway for the server at baseUrl. httpClient may be nil.
func New(baseUrl string, httpClient *http.Client) *Gateway {
	var c *resty.Client
	if httpClient != nil {
		c = resty.NewWithClient(httpClient)
	} else {
		c = resty.New()
	}
	c.SetBaseURL(strings.TrimRight(baseUrl, "/") + "/v1").
		SetHeader("accept", "application/json")
	c.JSONMarshal = json.Marshal
	c.JSONUnmarshal = json.Unmarshal
	return &Gateway{client: c}
}

// Error is an unsuccessful envelope answered by the server.
type Error struct {
	Status  int
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d msg:%s", e.Code, e.Message)
}

type BaseResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

type ListResponse struct {
	BaseResponse
	Comments   []*model.Comment `json:"comments"`
	NextCursor *time.Time       `json:"nextCursor"`
}

type GetResponse struct {
	BaseResponse
	Comment *model.Comment `json:"comment"`
}

type MutationResponse struct {
	BaseResponse
	CreatedComment *model.Comment `json:"createdComment"`
	UpdatedComment *model.Comment `json:"updatedComment"`
	OldComment     *model.Comment `json:"oldComment"`
	DeletedComment *model.Comment `json:"deletedComment"`
}

type ListOptions struct {
	Quantity *int
	Cursor   *time.Time
	Populate []string
	Lean     *bool
}

type CreateRequest struct {
	Author          string   `json:"author"`
	Content         string   `json:"content"`
	PostID          string   `json:"postID"`
	ParentCommentID string   `json:"parentCommentID,omitempty"`
	Populate        []string `json:"populate,omitempty"`
	Lean            *bool    `json:"lean,omitempty"`
}

type enveloped interface {
	base() *BaseResponse
}

func (r *BaseResponse) base() *BaseResponse {
	return r
}

func (g *Gateway) do(req *resty.Request, method, url string, result enveloped) error {
	req.SetResult(result).SetError(result)
	resp, err := req.Execute(method, url)
	if err != nil {
		return err
	}
	b := result.base()
	if resp.IsError() || !b.Success {
		if b.Code == 0 {
			b.Code = resp.StatusCode()
		}
		return &Error{Status: resp.StatusCode(), Code: b.Code, Message: b.Message}
	}
	return nil
}

func (g *Gateway) ListComments(ctx context.Context, postID string, opts *ListOptions) (*ListResponse, error) {
	req := g.client.R().SetContext(ctx).SetQueryParam("postID", postID)
	if opts != nil {
		if opts.Quantity != nil {
			req.SetQueryParam("quantity", strconv.Itoa(*opts.Quantity))
		}
		if opts.Cursor != nil {
			req.SetQueryParam("cursor", opts.Cursor.UTC().Format(time.RFC3339Nano))
		}
		if len(opts.Populate) > 0 {
			req.SetQueryParam("populate", strings.Join(opts.Populate, ","))
		}
		if opts.Lean != nil {
			req.SetQueryParam("lean", strconv.FormatBool(*opts.Lean))
		}
	}
	var res ListResponse
	if err := g.do(req, resty.MethodGet, "/comments", &res); err != nil {
		return &res, err
	}
	return &res, nil
}

func (g *Gateway) GetComment(ctx context.Context, id string) (*GetResponse, error) {
	var res GetResponse
	req := g.client.R().SetContext(ctx).SetPathParam("id", id)
	if err := g.do(req, resty.MethodGet, "/comments/{id}", &res); err != nil {
		return &res, err
	}
	return &res, nil
}

func (g *Gateway) CreateComment(ctx context.Context, c *CreateRequest) (*MutationResponse, error) {
	var res MutationResponse
	req := g.client.R().SetContext(ctx).SetBody(c)
	if err := g.do(req, resty.MethodPost, "/comments", &res); err != nil {
		return &res, err
	}
	return &res, nil
}

func (g *Gateway) UpdateComment(ctx context.Context, id, content string) (*MutationResponse, error) {
	var res MutationResponse
	req := g.client.R().SetContext(ctx).
		SetPathParam("id", id).
		SetBody(map[string]string{"content": content})
	if err := g.do(req, resty.MethodPut, "/comments/{id}", &res); err != nil {
		return &res, err
	}
	return &res, nil
}

func (g *Gateway) DeleteComment(ctx context.Context, id string) (*MutationResponse, error) {
	var res MutationResponse
	req := g.client.R().SetContext(ctx).SetPathParam("id", id)
	if err := g.do(req, resty.MethodDelete, "/comments/{id}", &res); err != nil {
		return &res, err
	}
	return &res, nil
}
