//go:build windows

package logger

import (
	"os"

	"golang.org/x/sys/windows"
)

func GetTerminalInfo(file *os.File) (info TerminalInfo) {
	fd := windows.Handle(file.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(fd, &mode); err == nil {
		info.IsTTY = true
	}
	var csbi windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(fd, &csbi); err == nil {
		info.Width = int(csbi.Window.Right-csbi.Window.Left) + 1
	}
	return
}
