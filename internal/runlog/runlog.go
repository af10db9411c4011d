package runlog

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Recorder wraps a logrus logger writing to the run's log file and keeps a
// per-run count of warnings and errors. The count replaces a process-wide
// "had problems" flag: the caller reads it after the run instead of the
// components mutating shared state.
type Recorder struct {
	*logrus.Logger
	file     *os.File
	problems atomic.Int64
}

type problemHook struct {
	rec *Recorder
}

func (h *problemHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.WarnLevel, logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *problemHook) Fire(*logrus.Entry) error {
	h.rec.problems.Add(1)
	return nil
}

// New opens (or creates) the log file at path and returns a recorder logging
// at debug level. With debug set, entries are mirrored to stderr so they stay
// visible when the progress bar is disabled.
func New(path string, debug bool) (*Recorder, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	var out io.Writer = file
	if debug {
		out = io.MultiWriter(file, os.Stderr)
	}
	log.SetOutput(out)

	rec := &Recorder{Logger: log, file: file}
	log.AddHook(&problemHook{rec: rec})
	return rec, nil
}

// NewDiscard returns a recorder that drops all output. Used by tests and as
// a fallback when the log file cannot be opened.
func NewDiscard() *Recorder {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.DebugLevel)
	rec := &Recorder{Logger: log}
	log.AddHook(&problemHook{rec: rec})
	return rec
}

// HadProblems reports whether any warning or error was logged during the run.
func (r *Recorder) HadProblems() bool {
	return r.problems.Load() > 0
}

// Problems returns the number of warnings and errors logged so far.
func (r *Recorder) Problems() int {
	return int(r.problems.Load())
}

func (r *Recorder) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}
