// Package logging provides the Logger used across the renderer, backed by
// logrus, plus the per-day log file.
package logging

// Logger defines the logging calls used across the renderer.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	WithField(key string, value interface{}) Logger
}

// Alert logs an error the user must see before continuing. Front ends that
// can show dialogs key off the popup field.
func Alert(l Logger, title, msg string) {
	l.WithField("popup", true).WithField("title", title).Errorf("%s", msg)
}
