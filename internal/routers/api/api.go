package api

import (
	"github.com/FavorLabs/favor-comments/internal/controller"
)

var (
	comments *controller.Controller
)

func Initialize(c *controller.Controller) {
	comments = c
}
