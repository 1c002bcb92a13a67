package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/FavorLabs/favor-comments/internal"
	"github.com/FavorLabs/favor-comments/internal/conf"
	"github.com/FavorLabs/favor-comments/internal/dao"
	"github.com/FavorLabs/favor-comments/internal/registry"
	"github.com/FavorLabs/favor-comments/internal/routers"
	"github.com/FavorLabs/favor-comments/internal/routers/api"
	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	noDefaultFeatures bool
	configPath        string
	features          suites = []string{}
)

type suites []string

func (s *suites) String() string {
	return strings.Join(*s, ",")
}

func (s *suites) Set(value string) error {
	for _, item := range strings.Split(value, ",") {
		*s = append(*s, strings.TrimSpace(item))
	}
	return nil
}

func init() {
	flagParse()
	conf.Initialize(features, noDefaultFeatures, configPath)
}

func flagParse() {
	flag.BoolVar(&noDefaultFeatures, "no-default-features", false, "whether use default features")
	flag.Var(&features, "features", "use special features")
	flag.StringVar(&configPath, "config", "", "directory holding config.yaml")
	flag.Parse()
}

func banner(addr string) {
	color.New(color.FgHiCyan, color.Bold).Printf("%s %s\n", api.AppName, api.AppVersion)
	color.Green("listening on %s (run mode %s)\n", addr, conf.ServerSetting.RunMode)
}

func main() {
	gin.SetMode(conf.ServerSetting.RunMode)

	reg := registry.New(registry.WithModelFactory(dao.NewCommentModel))
	if _, err := reg.Set(registry.Options{Database: conf.MustMongoDB()}); err != nil {
		logrus.Fatalf("configure comment model failed: %s", err)
	}
	ctl, release := internal.Initialize(reg)
	defer release()

	addr := net.JoinHostPort(conf.ServerSetting.HttpIp, conf.ServerSetting.HttpPort)
	s := &http.Server{
		Addr:           addr,
		Handler:        routers.NewRouter(ctl),
		ReadTimeout:    conf.ServerSetting.ReadTimeout,
		WriteTimeout:   conf.ServerSetting.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		banner(addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("run app failed: %s", err)
		}
	}()

	<-ctx.Done()
	logrus.Infoln("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("shutdown failed: %s", err)
	}
}
