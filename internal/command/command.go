package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a blocking invocation.
	DefaultTimeout = 30 * time.Second
	// DefaultLogDir is where Start writes process output.
	DefaultLogDir = "logs"
)

// Result is the decoded outcome of a completed process.
type Result struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Error reports a process that could not be run or exited non-zero.
type Error struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Desc     string
	Err      error
}

func (e *Error) Error() string {
	desc := e.Desc
	if desc == "" {
		desc = "Error running command"
	}
	return fmt.Sprintf("%s.\nCommand: %s\nErrorCode: %d\nStdout: %s\nStderr: %s",
		desc, e.Command, e.ExitCode, orEmpty(e.Stdout), orEmpty(e.Stderr))
}

func (e *Error) Unwrap() error {
	return e.Err
}

func orEmpty(s string) string {
	if s == "" {
		return "<empty>"
	}
	return s
}

// Runner runs a process to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// Exec runs real processes through os/exec.
type Exec struct {
	// Timeout bounds each Run call. Zero means DefaultTimeout.
	Timeout time.Duration
	// LogDir receives Start output files. Empty means DefaultLogDir.
	LogDir string

	now func() time.Time
}

// NewExec creates an Exec with the given timeout and log directory.
func NewExec(timeout time.Duration, logDir string) *Exec {
	return &Exec{Timeout: timeout, LogDir: logDir, now: time.Now}
}

// Run executes name with args and waits for it to finish.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmdline := Join(name, args...)

	//nolint:gosec // G204: commands come from the browser/driver tables or user config
	cmd := exec.CommandContext(execCtx, name, args...)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Command:  cmdline,
		Stdout:   Decode(stdout.Bytes()),
		Stderr:   Decode(stderr.Bytes()),
		Duration: time.Since(start),
	}

	if err != nil {
		cmdErr := &Error{
			Command:  cmdline,
			ExitCode: -1,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
			Err:      err,
		}
		var exitErr *exec.ExitError
		switch {
		case execCtx.Err() == context.DeadlineExceeded:
			cmdErr.Desc = fmt.Sprintf("Command timed out after %v", timeout)
			cmdErr.Err = execCtx.Err()
		case errors.As(err, &exitErr):
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		result.ExitCode = cmdErr.ExitCode
		return result, cmdErr
	}

	return result, nil
}

// Background is a process launched by Start.
type Background struct {
	Command string
	LogPath string
	Process *os.Process
	// Done receives the process exit error (nil on success) once, then closes.
	Done <-chan error
}

// Start launches name with args without waiting for it to finish.
// Stdout and stderr are both written to a fresh log file under LogDir.
func (e *Exec) Start(ctx context.Context, name string, args ...string) (*Background, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logDir := e.LogDir
	if logDir == "" {
		logDir = DefaultLogDir
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	now := e.now
	if now == nil {
		now = time.Now
	}
	logPath := filepath.Join(logDir, fmt.Sprintf("output_%s.txt", now().Format("20060102150405")))

	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	cmdline := Join(name, args...)

	//nolint:gosec // G204: see Run
	cmd := exec.Command(name, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return nil, &Error{Command: cmdline, ExitCode: -1, Desc: "Error starting command", Err: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
		logFile.Close()
		close(done)
	}()

	return &Background{
		Command: cmdline,
		LogPath: logPath,
		Process: cmd.Process,
		Done:    done,
	}, nil
}

// Join renders a command line for messages, quoting arguments with spaces.
func Join(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, p := range append([]string{name}, args...) {
		if strings.ContainsAny(p, " \t") {
			p = `"` + p + `"`
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}
