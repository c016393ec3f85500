// Package runner executes an assembled command line through the shell and
// relays its output line by line.
package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"go-cmdgui/internal/core/utils"
)

type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

type Line struct {
	Stream Stream
	Text   string
}

// Result describes a finished process. A non-zero exit code is reported here
// and not as an error.
type Result struct {
	Command   string
	ExitCode  int
	Duration  time.Duration
	Cancelled bool
}

func (r *Result) Success() bool {
	return r.ExitCode == 0 && !r.Cancelled
}

type Options struct {
	Shell     string
	ShellFlag string
	Dir       string
	Env       []string
}

func DefaultOptions() Options {
	if runtime.GOOS == "windows" {
		return Options{Shell: "cmd", ShellFlag: "/C"}
	}
	return Options{Shell: "/bin/sh", ShellFlag: "-c"}
}

type Runner struct {
	opts   Options
	logger *utils.Logger
}

func New(opts Options, logger *utils.Logger) *Runner {
	defaults := DefaultOptions()
	if opts.Shell == "" {
		opts.Shell = defaults.Shell
	}
	if opts.ShellFlag == "" && opts.Shell == defaults.Shell {
		opts.ShellFlag = defaults.ShellFlag
	}
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Runner{opts: opts, logger: logger}
}

func (r *Runner) Options() Options {
	return r.opts
}

// Run starts command and blocks until it exits, calling onLine for every
// output line. onLine is never called concurrently. Cancelling ctx kills the
// process and everything it started.
func (r *Runner) Run(ctx context.Context, command string, onLine func(Line)) (*Result, error) {
	logger := r.logger.WithCommand(command).WithOperation("run")

	args := []string{command}
	if r.opts.ShellFlag != "" {
		args = []string{r.opts.ShellFlag, command}
	}

	cmd := exec.CommandContext(ctx, r.opts.Shell, args...)
	cmd.Dir = r.opts.Dir
	cmd.Env = append(os.Environ(), r.opts.Env...)
	configureProcessGroup(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, utils.NewProcessError("failed to open stdout", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, utils.NewProcessError("failed to open stderr", err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		logger.Error("Failed to start command", "error", err)
		return nil, utils.NewProcessError("failed to start command", err).WithContext("command", command)
	}
	logger.Debug("Command started", "pid", cmd.Process.Pid)

	var mu sync.Mutex
	emit := func(line Line) {
		if onLine == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		onLine(line)
	}

	var g errgroup.Group
	g.Go(func() error { return relay(stdout, Stdout, emit) })
	g.Go(func() error { return relay(stderr, Stderr, emit) })
	readErr := g.Wait()
	waitErr := cmd.Wait()

	result := &Result{
		Command:   command,
		ExitCode:  cmd.ProcessState.ExitCode(),
		Duration:  time.Since(start),
		Cancelled: ctx.Err() != nil,
	}

	if waitErr != nil && !result.Cancelled {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return result, utils.NewProcessError("command did not finish cleanly", waitErr)
		}
	}
	if readErr != nil && !result.Cancelled {
		return result, utils.NewProcessError("failed to read command output", readErr)
	}

	logger.Info("Command finished",
		"exit_code", result.ExitCode,
		"duration", result.Duration,
		"cancelled", result.Cancelled)
	return result, nil
}

func relay(r io.Reader, stream Stream, emit func(Line)) error {
	reader := bufio.NewReader(r)
	for {
		text, err := reader.ReadString('\n')
		if len(text) > 0 {
			emit(Line{Stream: stream, Text: strings.TrimRight(text, "\r\n")})
		}
		if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
