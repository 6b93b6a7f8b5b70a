package ui

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// copyClipboard puts s on the system clipboard. On Linux it falls back to
// wl-copy and xclip for Wayland and X11 sessions where the portable path
// has no display to talk to.
func copyClipboard(s string) error {
	if err := clipboard.WriteAll(s); err == nil {
		return nil
	}
	if runtime.GOOS == "linux" {
		if err := exec.Command("wl-copy", s).Run(); err == nil {
			return nil
		}
		cmd := exec.Command("xclip", "-selection", "clipboard")
		cmd.Stdin = strings.NewReader(s)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return errors.New("clipboard unavailable")
}
