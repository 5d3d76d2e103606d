package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  *logrus.Logger
	WarnLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// The loggers must be usable from any package at any time, so they start as
// stdout-only instances. InitLoggers upgrades them with file rotation.
func init() {
	InfoLogger = newConsoleLogger(logrus.InfoLevel)
	WarnLogger = newConsoleLogger(logrus.WarnLevel)
	ErrorLogger = newConsoleLogger(logrus.ErrorLevel)
}

// InitLoggers attaches rotating log files via lumberjack; everything stays
// mirrored to stdout so container logs remain useful.
func InitLoggers() {
	attachRotator(InfoLogger, "logs/info.log")
	attachRotator(WarnLogger, "logs/warn.log")
	attachRotator(ErrorLogger, "logs/error.log")
}

func newConsoleLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetOutput(os.Stdout)
	return l
}

func attachRotator(l *logrus.Logger, path string) {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(os.Stdout, rotator))
}
