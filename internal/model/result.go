package model

import (
	"time"

	"github.com/FavorLabs/favor-comments/pkg/errcode"
)

// Result is the envelope every comment operation answers with. Code is the
// HTTP-equivalent status; Reason keeps the matching errcode for callers that
// need finer grained handling.
type Result struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message,omitempty"`
	Error   error          `json:"-"`
	Reason  *errcode.Error `json:"-"`
}

func Succeed(e *errcode.Error) Result {
	return Result{Success: true, Code: e.StatusCode(), Reason: e}
}

func Fail(e *errcode.Error, msg string, cause error) Result {
	if msg == "" {
		msg = e.Msg()
	}
	return Result{
		Success: false,
		Code:    e.StatusCode(),
		Message: msg,
		Error:   cause,
		Reason:  e,
	}
}

type ListResult struct {
	Result
	Comments []*Comment `json:"comments,omitempty"`
	NewFlag  time.Time  `json:"newFlag,omitempty"`
}

type GetResult struct {
	Result
	Comment *Comment `json:"comment,omitempty"`
}

type CreateResult struct {
	Result
	NewCommentID string `json:"newCommentID,omitempty"`
}

type UpdateDeleteResult struct {
	Result
	OldComment     *Comment `json:"oldComment,omitempty"`
	DeletedComment *Comment `json:"deletedComment,omitempty"`
}
