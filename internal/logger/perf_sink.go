package logger

import (
	"fmt"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// PerfSink mirrors the --performance per-plugin timing table (see
// internal/router) to a rotating log file so a sequence of runs against a
// large bundle accumulates history instead of overwriting it each time.
// This is ambient tooling, not part of the decompile pipeline itself: a nil
// *PerfSink is always safe to call into.
type PerfSink struct {
	mutex  sync.Mutex
	writer *lumberjack.Logger
}

// NewPerfSink opens (creating if necessary) a rotating log file at path.
// maxSizeMB/maxBackups follow lumberjack's own units.
func NewPerfSink(path string, maxSizeMB, maxBackups int) *PerfSink {
	if path == "" {
		return nil
	}
	return &PerfSink{
		writer: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

func (s *PerfSink) WriteReport(bundlePath string, rows []PerfRow) {
	if s == nil {
		return
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	fmt.Fprintf(s.writer, "=== %s ===\n", bundlePath)
	for _, r := range rows {
		fmt.Fprintf(s.writer, "%-40s %-10s %v\n", r.Plugin, r.Pass, r.Elapsed)
	}
}

func (s *PerfSink) Close() error {
	if s == nil {
		return nil
	}
	return s.writer.Close()
}

// PerfRow is one line of the per-plugin timing report; Pass is the pass
// name ("Tagger"/"Editor"/"Decompiler") kept as a string here to avoid an
// import cycle with internal/plugin.
type PerfRow struct {
	Plugin  string
	Pass    string
	Elapsed time.Duration
}
