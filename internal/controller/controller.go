// Package controller is the request facing entry point of the comments
// module. It shapes service results into the envelopes embedders consume.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/FavorLabs/favor-comments/internal/service"
	"github.com/FavorLabs/favor-comments/pkg/errcode"
)

type ListRequest struct {
	PostID           string
	Quantity         *int
	Flag             *time.Time
	FieldsToPopulate []string
	UseLean          *bool
}

type ListResponse struct {
	Success    bool             `json:"success"`
	Code       int              `json:"code"`
	Message    string           `json:"message,omitempty"`
	Comments   []*model.Comment `json:"comments,omitempty"`
	NextCursor *time.Time       `json:"nextCursor,omitempty"`
	Error      error            `json:"-"`
}

type MutationRequest struct {
	Action           string
	Author           string
	Content          string
	CommentID        string
	ParentCommentID  string
	PostID           string
	FieldsToPopulate []string
	UseLean          *bool
}

type MutationResponse struct {
	Success        bool           `json:"success"`
	Code           int            `json:"code"`
	Message        string         `json:"message,omitempty"`
	CreatedComment *model.Comment `json:"createdComment,omitempty"`
	UpdatedComment *model.Comment `json:"updatedComment,omitempty"`
	OldComment     *model.Comment `json:"oldComment,omitempty"`
	DeletedComment *model.Comment `json:"deletedComment,omitempty"`
	Error          error          `json:"-"`
}

func mutationFailure(r model.Result) *MutationResponse {
	return &MutationResponse{Success: false, Code: r.Code, Message: r.Message, Error: r.Error}
}

// Validate resolves the action and checks the fields it needs. The returned
// response is non-nil when the request must be rejected.
func (r *MutationRequest) Validate() (Action, *MutationResponse) {
	action, err := ParseAction(r.Action)
	if err != nil {
		return 0, mutationFailure(model.Fail(errcode.InvalidAction, fmt.Sprintf(
			`Action provided is invalid ("action" parameter). Current available actions are: %s`, actionList()), err))
	}
	if action != ActionCreate && r.CommentID == "" {
		return 0, mutationFailure(model.Fail(errcode.InvalidParams, fmt.Sprintf(
			`No comment id ("commentID" parameter) provided to perform comment %s.`, action), nil))
	}
	return action, nil
}

type Controller struct {
	svc *service.CommentService
}

func New(svc *service.CommentService) *Controller {
	return &Controller{svc: svc}
}

// ListComments answers a page of comments. NextCursor is the flag to pass
// back for the following page.
func (c *Controller) ListComments(ctx context.Context, req *ListRequest) *ListResponse {
	if req == nil || req.PostID == "" {
		r := model.Fail(errcode.InvalidParams, `No post ID ("postID" parameter) provided to perform comments search`, nil)
		return &ListResponse{Success: false, Code: r.Code, Message: r.Message}
	}

	res := c.svc.GetComments(ctx, service.ListParams{
		PostID:           req.PostID,
		Quantity:         req.Quantity,
		Flag:             req.Flag,
		FieldsToPopulate: req.FieldsToPopulate,
		UseLean:          req.UseLean,
	})
	if !res.Success {
		return &ListResponse{Success: false, Code: res.Code, Message: res.Message, Error: res.Error}
	}
	next := res.NewFlag
	return &ListResponse{
		Success:    true,
		Code:       res.Code,
		Message:    res.Message,
		Comments:   res.Comments,
		NextCursor: &next,
	}
}

// MutateComment creates, updates or deletes a comment and answers the
// affected records. Created and updated comments are fetched again so the
// response reflects what was stored.
func (c *Controller) MutateComment(ctx context.Context, req *MutationRequest) *MutationResponse {
	if req == nil {
		return mutationFailure(model.Fail(errcode.InvalidParams, "No mutation request provided", nil))
	}
	action, failure := req.Validate()
	if failure != nil {
		return failure
	}

	switch action {
	case ActionCreate:
		return c.create(ctx, req)
	default:
		return c.updateDelete(ctx, action, req)
	}
}

func (c *Controller) create(ctx context.Context, req *MutationRequest) *MutationResponse {
	res := c.svc.CreateComment(ctx, &model.NewComment{
		Author:          req.Author,
		Content:         req.Content,
		PostID:          req.PostID,
		ParentCommentID: req.ParentCommentID,
	})
	if !res.Success {
		return mutationFailure(res.Result)
	}

	got := c.svc.GetOneComment(ctx, service.GetParams{
		ID:               res.NewCommentID,
		FieldsToPopulate: req.FieldsToPopulate,
		UseLean:          req.UseLean,
	})
	if !got.Success {
		return mutationFailure(got.Result)
	}
	return &MutationResponse{Success: true, Code: res.Code, CreatedComment: got.Comment}
}

func (c *Controller) updateDelete(ctx context.Context, action Action, req *MutationRequest) *MutationResponse {
	p := service.UpdateDeleteParams{
		Action:  service.ActionDelete,
		ID:      req.CommentID,
		UseLean: req.UseLean,
	}
	if action == ActionUpdate {
		p.Action = service.ActionUpdate
		if req.Content != "" {
			content := req.Content
			p.Content = &content
		}
	}

	res := c.svc.UpdateDeleteComment(ctx, p)
	if !res.Success {
		return mutationFailure(res.Result)
	}
	if action == ActionDelete {
		return &MutationResponse{Success: true, Code: res.Code, DeletedComment: res.DeletedComment}
	}

	got := c.svc.GetOneComment(ctx, service.GetParams{
		ID:               req.CommentID,
		FieldsToPopulate: req.FieldsToPopulate,
		UseLean:          req.UseLean,
	})
	if !got.Success {
		return mutationFailure(got.Result)
	}
	return &MutationResponse{Success: true, Code: res.Code, OldComment: res.OldComment, UpdatedComment: got.Comment}
}

type GetRequest struct {
	CommentID        string
	FieldsToPopulate []string
	UseLean          *bool
}

type GetResponse struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message,omitempty"`
	Comment *model.Comment `json:"comment,omitempty"`
	Error   error          `json:"-"`
}

func (c *Controller) GetComment(ctx context.Context, req *GetRequest) *GetResponse {
	if req == nil {
		req = &GetRequest{}
	}
	res := c.svc.GetOneComment(ctx, service.GetParams{
		ID:               req.CommentID,
		FieldsToPopulate: req.FieldsToPopulate,
		UseLean:          req.UseLean,
	})
	return &GetResponse{
		Success: res.Success,
		Code:    res.Code,
		Message: res.Message,
		Comment: res.Comment,
		Error:   res.Error,
	}
}
