package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/FavorLabs/favor-comments/pkg/errcode"
	"github.com/sirupsen/logrus"
)

const (
	ActionUpdate = "update"
	ActionDelete = "delete"
)

var updateDeleteActions = []string{ActionUpdate, ActionDelete}

type ListParams struct {
	PostID           string
	Quantity         *int
	Flag             *time.Time
	FieldsToPopulate []string
	UseLean          *bool
}

type GetParams struct {
	ID               string
	FieldsToPopulate []string
	UseLean          *bool
}

type UpdateDeleteParams struct {
	Action  string
	ID      string
	Content *string
	UseLean *bool
}

func notConfigured() model.Result {
	return model.Fail(errcode.ModelNotConfigured, "", nil)
}

// readOptions normalizes populate lists, which may hold space separated names.
func readOptions(fields []string, useLean *bool) model.ReadOptions {
	opts := model.ReadOptions{Lean: true}
	if useLean != nil {
		opts.Lean = *useLean
	}
	for _, f := range fields {
		opts.Populate = append(opts.Populate, strings.Fields(f)...)
	}
	return opts
}

func unknownPopulate(fields []string) *model.Result {
	var unknown []string
	for _, f := range fields {
		if !model.IsPopulatable(f) {
			unknown = append(unknown, f)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	r := model.Fail(errcode.InvalidParams, fmt.Sprintf("Unknown field(s) to populate: %q", strings.Join(unknown, " ")), nil)
	return &r
}

// GetComments lists the comments of a post created strictly before the cursor
// flag, newest first.
func (s *CommentService) GetComments(ctx context.Context, p ListParams) *model.ListResult {
	if p.PostID == "" {
		return &model.ListResult{Result: model.Fail(errcode.InvalidParams,
			`No post ID ("postID" parameter) provided to perform comments search`, nil)}
	}
	m, defaultModel := s.active()
	if m == nil {
		return &model.ListResult{Result: notConfigured()}
	}

	opts := readOptions(p.FieldsToPopulate, p.UseLean)
	if defaultModel {
		if !m.IsValidID(p.PostID) {
			return &model.ListResult{Result: *invalidParams(model.FieldPostID)}
		}
		if r := unknownPopulate(opts.Populate); r != nil {
			return &model.ListResult{Result: *r}
		}
	}

	quantity, advisory := s.quantity(p.Quantity)
	before := time.Now()
	if p.Flag != nil {
		before = *p.Flag
	}

	comments, err := m.Find(ctx, &model.CommentQuery{
		PostID:      p.PostID,
		Before:      before,
		Limit:       quantity,
		ReadOptions: opts,
	})
	if err != nil {
		logrus.Errorf("service.GetComments err: %v", err)
		return &model.ListResult{Result: model.Fail(errcode.GetCommentsFailed, err.Error(), err)}
	}
	if len(comments) == 0 {
		return &model.ListResult{Result: model.Fail(errcode.NoCommentsFound, "No comments found", nil)}
	}

	res := &model.ListResult{
		Result:   model.Succeed(errcode.Success),
		Comments: comments,
		NewFlag:  comments[len(comments)-1].CreatedAt,
	}
	res.Message = advisory
	return res
}

func (s *CommentService) quantity(q *int) (int, string) {
	switch {
	case q == nil:
		return s.defaultQuantity, ""
	case *q < 1:
		return s.defaultQuantity, fmt.Sprintf(
			"Invalid value of %d assigned to quantity parameter, returning %d comments by default.", *q, s.defaultQuantity)
	case s.maxQuantity > 0 && *q > s.maxQuantity:
		return s.maxQuantity, fmt.Sprintf(
			"Quantity of %d exceeds the maximum, returning at most %d comments.", *q, s.maxQuantity)
	}
	return *q, ""
}

func (s *CommentService) GetOneComment(ctx context.Context, p GetParams) *model.GetResult {
	if p.ID == "" {
		return &model.GetResult{Result: model.Fail(errcode.InvalidParams,
			"No comment id provided to perform comment search.", nil)}
	}
	m, defaultModel := s.active()
	if m == nil {
		return &model.GetResult{Result: notConfigured()}
	}

	opts := readOptions(p.FieldsToPopulate, p.UseLean)
	if defaultModel {
		if !m.IsValidID(p.ID) {
			return &model.GetResult{Result: *invalidParams("id")}
		}
		if r := unknownPopulate(opts.Populate); r != nil {
			return &model.GetResult{Result: *r}
		}
	}

	comment, err := m.FindByID(ctx, p.ID, &opts)
	if err != nil {
		logrus.Errorf("service.GetOneComment err: %v", err)
		return &model.GetResult{Result: model.Fail(errcode.GetCommentFailed, err.Error(), err)}
	}
	if comment == nil {
		return &model.GetResult{Result: model.Fail(errcode.NoExistComment, "Comment not found", nil)}
	}
	return &model.GetResult{Result: model.Succeed(errcode.Success), Comment: comment}
}

// CreateComment sanitizes the content of nc and stores it. nc is not modified.
func (s *CommentService) CreateComment(ctx context.Context, nc *model.NewComment) *model.CreateResult {
	if nc == nil {
		return &model.CreateResult{Result: model.Fail(errcode.InvalidParams,
			`No comment data ("newComment" parameter) provided to create the new comment`, nil)}
	}
	m, defaultModel := s.active()
	if m == nil {
		return &model.CreateResult{Result: notConfigured()}
	}
	if defaultModel {
		if r := ValidateNewComment(ctx, m, nc); r != nil {
			return &model.CreateResult{Result: *r}
		}
	}

	sanitized := *nc
	sanitized.Content = s.sanitizer.Sanitize(nc.Content)

	id, err := m.Create(ctx, &sanitized)
	if err != nil {
		logrus.Errorf("service.CreateComment err: %v", err)
		return &model.CreateResult{Result: model.Fail(errcode.CreateCommentFailed, err.Error(), err)}
	}
	if id == "" {
		return &model.CreateResult{Result: model.Fail(errcode.CreateCommentFailed, "Failed to create new Comment", nil)}
	}
	return &model.CreateResult{Result: model.Succeed(errcode.Created), NewCommentID: id}
}

// UpdateDeleteComment replaces the content of a comment, or nulls it for
// delete, and answers the comment as it was before. Deleted comments stay in
// storage so their replies keep a parent.
func (s *CommentService) UpdateDeleteComment(ctx context.Context, p UpdateDeleteParams) *model.UpdateDeleteResult {
	if p.ID == "" {
		return &model.UpdateDeleteResult{Result: model.Fail(errcode.InvalidParams,
			fmt.Sprintf("No comment id provided to perform comment %s.", p.Action), nil)}
	}

	failed := errcode.UpdateCommentFailed
	switch p.Action {
	case ActionUpdate:
	case ActionDelete:
		failed = errcode.DeleteCommentFailed
	default:
		return &model.UpdateDeleteResult{Result: model.Fail(errcode.InvalidAction,
			fmt.Sprintf(`Action ("action" property) not valid. Accepted actions are: %s`, strings.Join(updateDeleteActions, ", ")), nil)}
	}

	if p.Action == ActionUpdate && (p.Content == nil || *p.Content == "") {
		return &model.UpdateDeleteResult{Result: model.Fail(errcode.InvalidParams,
			`No content data ("content" parameter) provided to perform comment update`, nil)}
	}

	m, defaultModel := s.active()
	if m == nil {
		return &model.UpdateDeleteResult{Result: notConfigured()}
	}
	if defaultModel {
		if p.Action == ActionUpdate {
			if r := ValidateContentUpdate(p.Content); r != nil {
				return &model.UpdateDeleteResult{Result: *r}
			}
		}
		if !m.IsValidID(p.ID) {
			return &model.UpdateDeleteResult{Result: *invalidParams("id")}
		}
	}

	var content *string
	if p.Action == ActionUpdate {
		sanitized := s.sanitizer.Sanitize(*p.Content)
		content = &sanitized
	}

	opts := readOptions(nil, p.UseLean)
	old, err := m.FindByIDAndUpdate(ctx, p.ID, content, &opts)
	if err != nil {
		logrus.Errorf("service.UpdateDeleteComment %s err: %v", p.Action, err)
		return &model.UpdateDeleteResult{Result: model.Fail(failed, err.Error(), err)}
	}
	if old == nil {
		return &model.UpdateDeleteResult{Result: model.Fail(failed, fmt.Sprintf("Failed to %s comment", p.Action), nil)}
	}

	res := &model.UpdateDeleteResult{Result: model.Succeed(errcode.Success)}
	if p.Action == ActionDelete {
		res.DeletedComment = old
	} else {
		res.OldComment = old
	}
	return res
}
