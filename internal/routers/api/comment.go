package api

import (
	"github.com/FavorLabs/favor-comments/internal/controller"
	"github.com/FavorLabs/favor-comments/pkg/app"
	"github.com/FavorLabs/favor-comments/pkg/errcode"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CreateCommentReq struct {
	Author          string   `json:"author"`
	Content         string   `json:"content"`
	PostID          string   `json:"postID"`
	ParentCommentID string   `json:"parentCommentID"`
	Populate        []string `json:"populate"`
	Lean            *bool    `json:"lean"`
}

type UpdateCommentReq struct {
	Content  string   `json:"content"`
	Populate []string `json:"populate"`
	Lean     *bool    `json:"lean"`
}

func logFailure(c *gin.Context, op string, code int, err error) {
	if code >= 500 {
		logrus.WithField("request_id", c.GetString("request-id")).Errorf("controller.%s err: %v", op, err)
	}
}

func GetComments(c *gin.Context) {
	response := app.NewResponse(c)
	cursor, err := app.GetCursor(c)
	if err != nil {
		response.ToErrorResponse(errcode.InvalidParams.WithDetails("cursor: " + err.Error()))
		return
	}

	res := comments.ListComments(c, &controller.ListRequest{
		PostID:           c.Query("postID"),
		Quantity:         app.GetQuantity(c),
		Flag:             cursor,
		FieldsToPopulate: app.GetPopulate(c),
		UseLean:          app.GetLean(c),
	})
	logFailure(c, "ListComments", res.Code, res.Error)
	response.ToEnvelope(res.Code, res)
}

func GetComment(c *gin.Context) {
	res := comments.GetComment(c, &controller.GetRequest{
		CommentID:        c.Param("id"),
		FieldsToPopulate: app.GetPopulate(c),
		UseLean:          app.GetLean(c),
	})
	logFailure(c, "GetComment", res.Code, res.Error)
	app.NewResponse(c).ToEnvelope(res.Code, res)
}

func CreateComment(c *gin.Context) {
	param := CreateCommentReq{}
	response := app.NewResponse(c)
	if err := c.ShouldBindJSON(&param); err != nil {
		logrus.Errorf("api.CreateComment bind err: %v", err)
		response.ToErrorResponse(errcode.InvalidParams.WithDetails(err.Error()))
		return
	}

	res := comments.MutateComment(c, &controller.MutationRequest{
		Action:           controller.ActionCreate.String(),
		Author:           param.Author,
		Content:          param.Content,
		PostID:           param.PostID,
		ParentCommentID:  param.ParentCommentID,
		FieldsToPopulate: param.Populate,
		UseLean:          param.Lean,
	})
	logFailure(c, "MutateComment", res.Code, res.Error)
	response.ToEnvelope(res.Code, res)
}

func UpdateComment(c *gin.Context) {
	param := UpdateCommentReq{}
	response := app.NewResponse(c)
	if err := c.ShouldBindJSON(&param); err != nil {
		logrus.Errorf("api.UpdateComment bind err: %v", err)
		response.ToErrorResponse(errcode.InvalidParams.WithDetails(err.Error()))
		return
	}

	res := comments.MutateComment(c, &controller.MutationRequest{
		Action:           controller.ActionUpdate.String(),
		CommentID:        c.Param("id"),
		Content:          param.Content,
		FieldsToPopulate: param.Populate,
		UseLean:          param.Lean,
	})
	logFailure(c, "MutateComment", res.Code, res.Error)
	response.ToEnvelope(res.Code, res)
}

func DeleteComment(c *gin.Context) {
	res := comments.MutateComment(c, &controller.MutationRequest{
		Action:    controller.ActionDelete.String(),
		CommentID: c.Param("id"),
		UseLean:   app.GetLean(c),
	})
	logFailure(c, "MutateComment", res.Code, res.Error)
	app.NewResponse(c).ToEnvelope(res.Code, res)
}
