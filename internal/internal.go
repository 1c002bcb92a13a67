package internal

import (
	"github.com/FavorLabs/favor-comments/internal/conf"
	"github.com/FavorLabs/favor-comments/internal/controller"
	"github.com/FavorLabs/favor-comments/internal/registry"
	"github.com/FavorLabs/favor-comments/internal/service"
	"github.com/FavorLabs/favor-comments/pkg/sanitize"
	"github.com/sirupsen/logrus"
)

// Initialize builds the comment service from the loaded settings and binds it
// to reg. The returned func releases the registry subscription.
func Initialize(reg *registry.Registry) (*controller.Controller, func()) {
	policy := conf.AppSetting.SanitizePolicy
	if v, ok := conf.Cfg("Sanitizer"); ok && v != "" {
		policy = v
	}
	logrus.Infof("use %q sanitize policy", policy)

	svc := service.New(reg, sanitize.New(policy),
		service.WithDefaultQuantity(conf.AppSetting.DefaultQuantity),
		service.WithMaxQuantity(conf.AppSetting.MaxQuantity),
	)
	return controller.New(svc), svc.Close
}
