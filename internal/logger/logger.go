// Package logger 基于 op/go-logging 的全局日志
package logger

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

const (
	moduleName = "portal"
	timeFormat = "2006/01/02 15:04:05"
)

var logger = logging.MustGetLogger(moduleName)

// ParseLevel 解析 LOG_LEVEL，未知取值按 INFO 处理
func ParseLevel(value string) logging.Level {
	switch value {
	case "debug":
		return logging.DEBUG
	case "warn", "warning":
		return logging.WARNING
	case "error":
		return logging.ERROR
	default:
		return logging.INFO
	}
}

// InitLogger 输出到 stderr
func InitLogger(level logging.Level) {
	InitLoggerWithWriter(os.Stderr, level)
}

func InitLoggerWithWriter(w io.Writer, level logging.Level) {
	backend := logging.NewLogBackend(w, "", 0)
	formatter := logging.MustStringFormatter(`%{time:` + timeFormat + `} %{level:.4s} %{shortfile} - %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(level, moduleName)
	logger.SetBackend(leveled)
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
