package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]int{
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

type implLogger struct {
	logger *log.Logger
	level  int
}

// New creates a Logger writing to stdout at the given level.
// Unknown levels fall back to info.
func New(level string) Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter creates a Logger writing to w. Used by tests.
func NewWithWriter(level string, w io.Writer) Logger {
	lvl, ok := levelNames[strings.ToLower(level)]
	if !ok {
		lvl = levelInfo
	}
	return &implLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  lvl,
	}
}

func (l *implLogger) log(level int, prefix, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.logger.Printf(prefix+msg, args...)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log(levelDebug, "[DEBUG] ", msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log(levelInfo, "[INFO] ", msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log(levelWarn, "[WARN] ", msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log(levelError, "[ERROR] ", msg, args...)
}
