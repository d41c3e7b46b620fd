package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", binary, err, tail(stderr.String(), 400))
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// Option configures the engine.
type Option func(*Engine)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(e *Engine) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// Engine invokes ffmpeg with per-stage argument slices.
type Engine struct {
	binary  string
	timeout time.Duration
	exec    Executor

	width     int
	height    int
	frameRate int
	musicGain float64
}

// New constructs an Engine. Dimensions, frame rate, and music gain are
// fixed per run.
func New(binary string, timeoutSeconds, width, height, frameRate int, musicGain float64, opts ...Option) (*Engine, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	engine := &Engine{
		binary:    binary,
		timeout:   time.Duration(timeoutSeconds) * time.Second,
		exec:      commandExecutor{},
		width:     width,
		height:    height,
		frameRate: frameRate,
		musicGain: musicGain,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

func (e *Engine) run(ctx context.Context, args []string) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.exec.Run(ctx, e.binary, args)
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.3f", seconds)
}
