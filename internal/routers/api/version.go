package api

import (
	"github.com/FavorLabs/favor-comments/pkg/app"
	"github.com/gin-gonic/gin"
)

var (
	AppName    = "favor-comments"
	AppVersion = "v0.1.0"
)

func Version(c *gin.Context) {
	app.NewResponse(c).ToResponse(gin.H{
		"name":    AppName,
		"version": AppVersion,
	})
}
