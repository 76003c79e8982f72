// Package clipboard copies text to the system clipboard via shell commands.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool can be found.
var ErrUnavailable = errors.New("clipboard unavailable")

// command returns the platform clipboard-write command, or ErrUnavailable.
func command() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input"), nil
		}
		return nil, fmt.Errorf("%w: install xclip or xsel", ErrUnavailable)
	default:
		return nil, ErrUnavailable
	}
}

// IsAvailable reports whether clipboard access works on this system.
func IsAvailable() bool {
	_, err := command()
	return err == nil
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	cmd, err := command()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
