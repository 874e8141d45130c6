package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/jsphweid/hummingbird/util"
)

// DefaultLogger writes Debug and Info to stdout, Warn and Error to stderr, both as
// slog text records.
type DefaultLogger struct {
	out   *slog.Logger
	err   *slog.Logger
	level *slog.LevelVar
}

func NewDefaultLogger() *DefaultLogger {
	return NewLogger(os.Stdout, os.Stderr, true)
}

// NewLogger builds a logger over two writers. Without timestamps the output is
// deterministic, which is what tests want.
func NewLogger(stdout, stderr io.Writer, timestamps bool) *DefaultLogger {
	level := new(slog.LevelVar)
	opts := &slog.HandlerOptions{Level: level}
	if !timestamps {
		opts.ReplaceAttr = dropTime
	}
	return &DefaultLogger{
		out:   slog.New(slog.NewTextHandler(stdout, opts)),
		err:   slog.New(slog.NewTextHandler(stderr, opts)),
		level: level,
	}
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func attrs(fields []Fields) []slog.Attr {
	var res []slog.Attr
	for _, f := range fields {
		for _, k := range util.GetKeys(f) {
			res = append(res, slog.Any(k, f[k]))
		}
	}
	return res
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	logger := d.out
	if level >= WarnLevel {
		logger = d.err
	}
	as := attrs(fields)
	if err != nil {
		as = append([]slog.Attr{slog.String("error", err.Error())}, as...)
	}
	logger.LogAttrs(context.Background(), level.slogLevel(), msg, as...)
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

// WithFields returns a child logger. It shares the parent's level.
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	var args []any
	for _, a := range attrs([]Fields{fields}) {
		args = append(args, a)
	}
	return &DefaultLogger{
		out:   d.out.With(args...),
		err:   d.err.With(args...),
		level: d.level,
	}
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.level.Set(level.slogLevel())
}

type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
func (n *NoOpLogger) SetLevel(level Level)                          {}
