package calculation

import "github.com/sirupsen/logrus"

// Logger is a minimal logging interface for the projection engine.
// Implementations should be fast; the default is a no-op. *logrus.Logger and
// *logrus.Entry satisfy it directly.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var (
	_ Logger = (*logrus.Logger)(nil)
	_ Logger = (*logrus.Entry)(nil)
)

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// scenarioLogger scopes log lines to one scenario. A logrus entry gets a structured
// field; other loggers get a name prefix.
func scenarioLogger(l Logger, name string) Logger {
	switch lg := l.(type) {
	case *logrus.Logger:
		return lg.WithField("scenario", name)
	case *logrus.Entry:
		return lg.WithField("scenario", name)
	case NopLogger:
		return lg
	}
	return prefixLogger{inner: l, prefix: "[" + name + "] "}
}

type prefixLogger struct {
	inner  Logger
	prefix string
}

func (p prefixLogger) Debugf(format string, args ...any) { p.inner.Debugf(p.prefix+format, args...) }
func (p prefixLogger) Infof(format string, args ...any)  { p.inner.Infof(p.prefix+format, args...) }
func (p prefixLogger) Warnf(format string, args ...any)  { p.inner.Warnf(p.prefix+format, args...) }
func (p prefixLogger) Errorf(format string, args ...any) { p.inner.Errorf(p.prefix+format, args...) }
