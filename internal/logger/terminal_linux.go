//go:build linux

package logger

import (
	"os"

	"golang.org/x/sys/unix"
)

func GetTerminalInfo(file *os.File) (info TerminalInfo) {
	fd := file.Fd()
	if _, err := unix.IoctlGetTermios(int(fd), unix.TCGETS); err == nil {
		info.IsTTY = true
		if w, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ); err == nil {
			info.Width = int(w.Col)
		}
	}
	return
}
