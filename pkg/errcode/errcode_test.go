package errcode

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	for _, data := range []struct {
		err    *Error
		status int
	}{
		{Success, http.StatusOK},
		{Created, http.StatusCreated},
		{InvalidParams, http.StatusBadRequest},
		{InvalidAction, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{NoExistParentComment, http.StatusNotFound},
		{CreateCommentFailed, http.StatusInternalServerError},
		{ModelNotConfigured, http.StatusInternalServerError},
		{MethodNotAllowed, http.StatusMethodNotAllowed},
	} {
		if got := data.err.StatusCode(); got != data.status {
			t.Errorf("%s StatusCode() want %d got %d", data.err.Msg(), data.status, got)
		}
	}
}

func TestWithDetails(t *testing.T) {
	e := InvalidParams.WithDetails("postID", "author")
	if len(InvalidParams.Details()) != 0 {
		t.Errorf("WithDetails must not touch the origin error, got details %v", InvalidParams.Details())
	}
	if len(e.Details()) != 2 || e.Details()[0] != "postID" {
		t.Errorf("unexpected details %v", e.Details())
	}
	if !errors.Is(e, InvalidParams) {
		t.Errorf("copy should match its origin")
	}
	if errors.Is(e, NotFound) {
		t.Errorf("copy should not match a different code")
	}
}

func TestNewErrorDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("duplicate code should panic")
		}
	}()
	NewError(Success.Code(), "again")
}
