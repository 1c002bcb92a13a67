package app

import (
	"net/http"

	"github.com/FavorLabs/favor-comments/pkg/errcode"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Ctx *gin.Context
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{Ctx: ctx}
}

// ToEnvelope writes an operation envelope using its code as the HTTP status.
// Codes outside the HTTP range are answered as 500.
func (r *Response) ToEnvelope(code int, envelope interface{}) {
	if code < 100 || code > 599 {
		code = http.StatusInternalServerError
	}
	r.Ctx.JSON(code, envelope)
}

func (r *Response) ToResponse(data interface{}) {
	if data == nil {
		data = gin.H{}
	}
	r.Ctx.JSON(http.StatusOK, data)
}

func (r *Response) ToErrorResponse(err *errcode.Error) {
	response := gin.H{"success": false, "code": err.StatusCode(), "message": err.Msg()}
	if details := err.Details(); len(details) > 0 {
		response["details"] = details
	}
	r.Ctx.JSON(err.StatusCode(), response)
}
