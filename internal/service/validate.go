package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/FavorLabs/favor-comments/pkg/errcode"
	"github.com/sirupsen/logrus"
)

func missingParams(names ...string) *model.Result {
	r := model.Fail(errcode.InvalidParams, fmt.Sprintf("Missing required parameter(s): %q", strings.Join(names, " ")), nil)
	return &r
}

func invalidParams(names ...string) *model.Result {
	r := model.Fail(errcode.InvalidParams, fmt.Sprintf("Some parameter(s) has/have invalid values: %q", strings.Join(names, " ")), nil)
	return &r
}

// ValidateNewComment checks a create payload against the default schema and
// confirms the parent comment exists. It answers nil when nc is acceptable.
func ValidateNewComment(ctx context.Context, m core.CommentModel, nc *model.NewComment) *model.Result {
	var missing []string
	if nc.Author == "" {
		missing = append(missing, "author")
	}
	if nc.Content == "" {
		missing = append(missing, "content")
	}
	if nc.PostID == "" {
		missing = append(missing, model.FieldPostID)
	}
	if len(missing) > 0 {
		return missingParams(missing...)
	}

	var invalid []string
	if nc.ParentCommentID != "" && !m.IsValidID(nc.ParentCommentID) {
		invalid = append(invalid, model.FieldParentCommentID)
	}
	if !m.IsValidID(nc.Author) {
		invalid = append(invalid, model.FieldAuthor)
	}
	if !m.IsValidID(nc.PostID) {
		invalid = append(invalid, model.FieldPostID)
	}
	if len(invalid) > 0 {
		return invalidParams(invalid...)
	}

	if nc.ParentCommentID != "" {
		exists, err := m.Exists(ctx, nc.ParentCommentID)
		if err != nil {
			logrus.Errorf("service.ValidateNewComment err: %v", err)
			r := model.Fail(errcode.ServerError, err.Error(), err)
			return &r
		}
		if !exists {
			r := model.Fail(errcode.NoExistParentComment, fmt.Sprintf(
				"The provided parentCommentID (%q) is well-formed. However, no comment was found with this ID. "+
					"Please verify that the provided ID is correct.", nc.ParentCommentID), nil)
			return &r
		}
	}
	return nil
}

// ValidateContentUpdate answers nil when content can replace a comment's content.
func ValidateContentUpdate(content *string) *model.Result {
	if content == nil || *content == "" {
		r := model.Fail(errcode.InvalidParams, `Missing required parameter: "content"`, nil)
		return &r
	}
	return nil
}
