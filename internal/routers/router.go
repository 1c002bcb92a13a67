package routers

import (
	"github.com/FavorLabs/favor-comments/internal/controller"
	"github.com/FavorLabs/favor-comments/internal/middleware"
	"github.com/FavorLabs/favor-comments/internal/routers/api"
	"github.com/FavorLabs/favor-comments/pkg/app"
	"github.com/FavorLabs/favor-comments/pkg/errcode"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(ctl *controller.Controller) *gin.Engine {
	api.Initialize(ctl)

	e := gin.New()
	e.HandleMethodNotAllowed = true
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog())
	e.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders(middleware.HeaderRequestID)
	corsConfig.AddExposeHeaders(middleware.HeaderRequestID, "ETag")
	e.Use(cors.New(corsConfig))

	// v1 group api
	r := e.Group("/v1")

	r.GET("/", api.Version)

	readApi := r.Group("/").Use(middleware.ETag())
	{
		readApi.GET("/comments", api.GetComments)

		readApi.GET("/comments/:id", api.GetComment)
	}

	writeApi := r.Group("/")
	{
		writeApi.POST("/comments", api.CreateComment)

		writeApi.PUT("/comments/:id", api.UpdateComment)

		writeApi.DELETE("/comments/:id", api.DeleteComment)
	}

	// default 404
	e.NoRoute(func(c *gin.Context) {
		app.NewResponse(c).ToErrorResponse(errcode.NotFound)
	})

	// default 405
	e.NoMethod(func(c *gin.Context) {
		app.NewResponse(c).ToErrorResponse(errcode.MethodNotAllowed)
	})

	return e
}
