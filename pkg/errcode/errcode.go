package errcode

import (
	"fmt"
	"net/http"
)

type Error struct {
	code    int
	msg     string
	details []string
}

var codes = map[int]string{}

func NewError(code int, msg string) *Error {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already exists, please use another one", code))
	}
	codes[code] = msg
	return &Error{code: code, msg: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.Code(), e.Msg())
}

func (e *Error) Code() int {
	return e.code
}

func (e *Error) Msg() string {
	return e.msg
}

func (e *Error) Details() []string {
	return e.details
}

// WithDetails returns a copy of e carrying details, e itself is left untouched.
func (e *Error) WithDetails(details ...string) *Error {
	newError := *e
	newError.details = []string{}
	newError.details = append(newError.details, details...)
	return &newError
}

// Is matches any copy produced by WithDetails against its origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

func (e *Error) StatusCode() int {
	switch e.Code() {
	case Success.Code():
		return http.StatusOK
	case Created.Code():
		return http.StatusCreated
	case ServerError.Code():
		return http.StatusInternalServerError
	case InvalidParams.Code(), InvalidAction.Code():
		return http.StatusBadRequest
	case NotFound.Code(), NoCommentsFound.Code(), NoExistComment.Code(), NoExistParentComment.Code():
		return http.StatusNotFound
	case MethodNotAllowed.Code():
		return http.StatusMethodNotAllowed
	}

	return http.StatusInternalServerError
}
