// Package applescript executes commands against scriptable macOS
// applications through osascript and parses their textual output.
package applescript

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/venlow/laguz/internal/apperr"
)

// DefaultTimeout bounds a single osascript invocation.
const DefaultTimeout = 30 * time.Second

// Command is a single statement addressed to a scriptable application.
// Text must already have its string literals quoted via Quote; Command
// carries no further escaping.
type Command struct {
	App  string
	Text string
}

// Commandf builds a Command for the given application from a format string.
// String arguments interpolated into the script must be wrapped with Quote
// by the caller.
func Commandf(app, format string, args ...any) Command {
	return Command{App: app, Text: fmt.Sprintf(format, args...)}
}

// Render returns the full one-line script for osascript.
func (c Command) Render() string {
	return fmt.Sprintf("tell application %s to %s", Quote(c.App), c.Text)
}

// Quote returns s as an AppleScript string literal, backslash-escaping
// backslashes and double quotes.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '"':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// Runner executes a Command and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, cmd Command) (string, error)
}

// OSARunner runs commands through the osascript binary.
type OSARunner struct {
	timeout time.Duration
}

// NewOSARunner creates a runner with the given per-call timeout.
// A zero timeout falls back to DefaultTimeout.
func NewOSARunner(timeout time.Duration) *OSARunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OSARunner{timeout: timeout}
}

// Run executes cmd and returns its output. Failures are mapped onto the
// apperr sentinels so callers can distinguish a vanished note from an
// unreachable source.
func (r *OSARunner) Run(ctx context.Context, cmd Command) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	osa := exec.CommandContext(ctx, "osascript", "-e", cmd.Render())
	var stdout, stderr strings.Builder
	osa.Stdout = &stdout
	osa.Stderr = &stderr

	err := osa.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: osascript timed out after %s", apperr.ErrSourceUnavailable, r.timeout)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: osascript not found; this tool requires macOS with AppleScript support", apperr.ErrSourceUnavailable)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return "", classifyError(msg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// classifyError maps raw osascript stderr onto the error taxonomy with a
// user-facing message.
func classifyError(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "access not determined") || strings.Contains(lower, "permission denied"):
		return fmt.Errorf("%w: permission denied; grant automation access to your terminal in System Settings > Privacy & Security", apperr.ErrSourceUnavailable)
	case strings.Contains(lower, "can't find") || strings.Contains(lower, "doesn't exist") || strings.Contains(lower, "can’t get"):
		return fmt.Errorf("%w: note or folder not found, verify the name and try again", apperr.ErrNotFound)
	default:
		return fmt.Errorf("applescript error: %s", msg)
	}
}
