package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var _ Logger = (*logrusLogger)(nil)

type logrusLogger struct {
	entry *logrus.Entry
}

// Root is the logger returned by New. Close releases the daily log file.
type Root struct {
	*logrusLogger
	file *os.File
}

// Close closes the daily log file, if one was opened.
func (r *Root) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Options configures New.
type Options struct {
	Level  string    // logrus level name; invalid or empty means info
	Dir    string    // when set, also append to a per-day file in Dir
	Stdout io.Writer // console writer; nil means os.Stdout
	Now    func() time.Time
}

// New creates a logger writing to the console and, if opts.Dir is set, to
// <Dir>/<day>-<month>-<year>.txt. The caller closes it when done.
func New(opts Options) (*Root, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(&SimpleFormatter{TimestampFormat: "2006/01/02 15:04:05"})

	var out io.Writer = os.Stdout
	if opts.Stdout != nil {
		out = opts.Stdout
	}

	root := &Root{}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("logging: create log directory %s: %w", opts.Dir, err)
		}
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		path := filepath.Join(opts.Dir, DailyFileName(now()))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("logging: open %s: %w", path, err)
		}
		root.file = f
		out = io.MultiWriter(out, f)
	}
	l.SetOutput(out)

	root.logrusLogger = &logrusLogger{entry: logrus.NewEntry(l)}
	return root, nil
}

// Discard returns a logger that drops everything. Used by tests and quiet runs.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

// DailyFileName is the per-day log file name, e.g. "7-3-2026.txt".
func DailyFileName(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d.txt", t.Day(), int(t.Month()), t.Year())
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *logrusLogger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *logrusLogger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *logrusLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *logrusLogger) WithField(key string, value interface{}) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

// SimpleFormatter writes one line per entry:
//
//	2026/10/17 15:04:05 [INF] message key=value
type SimpleFormatter struct {
	TimestampFormat string
}

// Format implements logrus.Formatter.
func (f *SimpleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = "2006/01/02 15:04:05"
	}
	b.WriteString(entry.Time.Format(tsFormat))

	level := strings.ToUpper(entry.Level.String())
	if len(level) > 3 {
		level = level[:3]
	}
	fmt.Fprintf(b, " [%s] %s", level, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
