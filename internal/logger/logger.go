// Package logger is a small, synchronous message sink shared by every
// pass instead of each package writing to stdout directly. Passes that must not emit immediately (most
// taggers/editors/decompilers, which only report through the Module they
// mutate) use a deferred log and the driver decides what to do with it.
package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

type LogLevel int8

const (
	LevelNone LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelSilent
)

func LevelFromString(s string) (LogLevel, bool) {
	switch s {
	case "info":
		return LevelInfo, true
	case "warning":
		return LevelWarning, true
	case "error":
		return LevelError, true
	case "silent":
		return LevelSilent, true
	}
	return LevelNone, false
}

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Info
)

func (k MsgKind) String() string {
	switch k {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

type MsgLocation struct {
	File   string
	Line   int
	Column int
}

type Msg struct {
	Kind     MsgKind
	Text     string
	Location *MsgLocation
}

func (m Msg) String() string {
	loc := ""
	if m.Location != nil {
		loc = fmt.Sprintf("%s:%d:%d: ", m.Location.File, m.Location.Line, m.Location.Column)
	}
	return fmt.Sprintf("%s%s: %s\n", loc, m.Kind, m.Text)
}

// NewDeferLog returns a Log that buffers messages in memory instead of
// printing them, for sub-passes whose output the caller wants to filter,
// sort, or discard.
func NewDeferLog() Log {
	var mutex sync.Mutex
	var msgs []Msg
	var hasErrors bool

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			sorted := make([]Msg, len(msgs))
			copy(sorted, msgs)
			sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Kind > sorted[j].Kind })
			return sorted
		},
	}
}

// NewStderrLog prints messages to stderr as they arrive, filtered by level,
// for the CLI's top-level driver.
func NewStderrLog(level LogLevel) Log {
	var mutex sync.Mutex
	var hasErrors bool
	var msgs []Msg

	shouldPrint := func(kind MsgKind) bool {
		switch level {
		case LevelSilent:
			return false
		case LevelError:
			return kind == Error
		case LevelWarning:
			return kind == Error || kind == Warning
		default:
			return true
		}
	}

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
			if shouldPrint(msg.Kind) {
				fmt.Fprint(os.Stderr, msg.String())
			}
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			return msgs
		},
	}
}

// TerminalInfo describes the controlling terminal, used only to size the
// "--performance" report table.
type TerminalInfo struct {
	IsTTY bool
	Width int
}

func PluralSuffix(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func Indent(text string, n int) string {
	pad := strings.Repeat("  ", n)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
