package conf

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func newFileLogger() io.Writer {
	return &lumberjack.Logger{
		Filename:   loggerFileSetting.Filename(),
		MaxSize:    loggerFileSetting.MaxSize,
		MaxAge:     loggerFileSetting.MaxAge,
		MaxBackups: loggerFileSetting.MaxBackups,
		Compress:   loggerFileSetting.Compress,
		LocalTime:  false,
	}
}

func setupLogger() {
	level, err := logrus.ParseLevel(loggerSetting.Level)
	if err != nil {
		logrus.Warnf("unknown logger level %q, fallback to info", loggerSetting.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if ServerSetting.RunMode == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if CfgIf("LoggerFile") {
		logrus.SetOutput(io.MultiWriter(os.Stdout, newFileLogger()))
		logrus.Infof("use file logger at %s", loggerFileSetting.Filename())
	}
}
