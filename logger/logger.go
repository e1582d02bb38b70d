package logger

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	c "tokentrip-marketplace/context"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

const (
	CorrelationId = "correlation_id"
	Wallet        = "wallet"
)

var newlines = regexp.MustCompile(`(\n)|(\r\n)`)

func init() {
	logger = logrus.New()
	logger.SetOutput(os.Stdout)
}

// SetLevel parses lvl ("debug", "info", ...) and applies it, keeping the
// current level when lvl is not recognised.
func SetLevel(lvl string) {
	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		logger.Warnf("setLevel: unknown log level %q, keeping %s", lvl, logger.GetLevel())
		return
	}
	logger.SetLevel(level)
}

func entry(ctx context.Context) *logrus.Entry {
	e := logger.WithField(CorrelationId, c.GetContextValue(ctx, c.ContextKeyCorrelationID))
	if w := c.Wallet(ctx); w != "" {
		e = e.WithField(Wallet, w)
	}
	return e
}

// WithFields returns an entry carrying the request fields plus the given ones.
func WithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return entry(ctx).WithFields(fields)
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Fatalf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Infof(format, args...)
}

func Info(ctx context.Context, msg string) {
	entry(ctx).Info(msg)
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Debug(escapeString(format, args...))
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Error(escapeString(format, args...))
}

// LogExecutionTime is meant to be deferred with the start time of the block.
func LogExecutionTime(ctx context.Context, start time.Time, msg string) {
	entry(ctx).WithField("elapsed_ms", time.Since(start).Milliseconds()).Infof("%s took %s", msg, time.Since(start))
}

func escapeString(format string, args ...interface{}) string {
	return newlines.ReplaceAllString(fmt.Sprintf(format, args...), "\\n ")
}
