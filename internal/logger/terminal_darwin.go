//go:build darwin

package logger

import (
	"os"

	"golang.org/x/sys/unix"
)

// GetTerminalInfo reports the width of the controlling terminal. It is
// only used to wrap the --performance timing table, so a failure to query
// just means no wrapping.
func GetTerminalInfo(file *os.File) (info TerminalInfo) {
	fd := file.Fd()
	if _, err := unix.IoctlGetTermios(int(fd), unix.TIOCGETA); err == nil {
		info.IsTTY = true
		if w, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ); err == nil {
			info.Width = int(w.Col)
		}
	}
	return
}
