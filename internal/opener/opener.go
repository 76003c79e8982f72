// Package opener launches bookmark targets in an external browser.
package opener

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"golang.org/x/time/rate"
)

// DefaultOpensPerSecond throttles batch opens so that activating many
// selected rows does not spawn a process storm.
const DefaultOpensPerSecond = 4

// Opener resolves and launches the browse command for a target.
type Opener struct {
	browser string
	limiter *rate.Limiter
}

// New creates an Opener. An empty browser uses the platform opener
// (open on macOS, xdg-open on Linux). opensPerSecond bounds OpenAll;
// values <= 0 fall back to DefaultOpensPerSecond.
func New(browser string, opensPerSecond float64) *Opener {
	if opensPerSecond <= 0 {
		opensPerSecond = DefaultOpensPerSecond
	}
	return &Opener{
		browser: browser,
		limiter: rate.NewLimiter(rate.Limit(opensPerSecond), 1),
	}
}

// Command returns the launch command for target without starting it.
func (o *Opener) Command(target string) (*exec.Cmd, error) {
	if target == "" {
		return nil, fmt.Errorf("no target to open")
	}
	if o.browser != "" {
		return exec.Command(o.browser, target), nil
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux":
		return exec.Command("xdg-open", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Open launches target without waiting for the browser to exit.
func (o *Opener) Open(target string) error {
	cmd, err := o.Command(target)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	return nil
}

// OpenAll opens each target in order, rate limited. Every target is
// attempted; the returned count is the number launched and the error is
// the first failure encountered, if any.
func (o *Opener) OpenAll(ctx context.Context, targets []string) (int, error) {
	opened := 0
	var firstErr error
	for _, target := range targets {
		if err := o.limiter.Wait(ctx); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			break
		}
		if err := o.Open(target); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		opened++
	}
	return opened, firstErr
}
