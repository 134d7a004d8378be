package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

func TestExec_Run(t *testing.T) {
	requireShell(t)

	e := NewExec(5*time.Second, t.TempDir())
	res, err := e.Run(context.Background(), "sh", "-c", "echo 'Google Chrome 114.0.5735.90'; echo warn >&2")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "Google Chrome 114.0.5735.90\n", res.Stdout)
	assert.Equal(t, "warn\n", res.Stderr)
}

func TestExec_RunNonZeroExit(t *testing.T) {
	requireShell(t)

	e := NewExec(5*time.Second, t.TempDir())
	res, err := e.Run(context.Background(), "sh", "-c", "echo out; echo boom >&2; exit 3")
	require.Error(t, err)

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, 3, res.ExitCode)

	msg := err.Error()
	assert.Contains(t, msg, "Error running command.")
	assert.Contains(t, msg, "ErrorCode: 3")
	assert.Contains(t, msg, "Stdout: out")
	assert.Contains(t, msg, "Stderr: boom")
	assert.Contains(t, msg, `Command: sh -c "echo out; echo boom >&2; exit 3"`)
}

func TestExec_RunMissingBinary(t *testing.T) {
	e := NewExec(time.Second, t.TempDir())
	_, err := e.Run(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
	assert.Contains(t, err.Error(), "Stdout: <empty>")
}

func TestExec_RunTimeout(t *testing.T) {
	requireShell(t)

	e := NewExec(100*time.Millisecond, t.TempDir())
	_, err := e.Run(context.Background(), "sh", "-c", "exec sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}

func TestExec_Start(t *testing.T) {
	requireShell(t)

	logDir := filepath.Join(t.TempDir(), "logs")
	e := NewExec(time.Second, logDir)
	e.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }

	bg, err := e.Start(context.Background(), "sh", "-c", "echo hello; echo oops >&2")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(logDir, "output_20240309140506.txt"), bg.LogPath)

	select {
	case err := <-bg.Done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("background process did not finish")
	}

	content, err := os.ReadFile(bg.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello")
	assert.Contains(t, string(content), "oops")
}

func TestExec_StartCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logDir := filepath.Join(t.TempDir(), "logs")
	_, err := NewExec(time.Second, logDir).Start(ctx, "true")
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(logDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestJoin(t *testing.T) {
	got := Join("/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", "--version")
	assert.True(t, strings.HasPrefix(got, `"/Applications/Google Chrome.app`))
	assert.True(t, strings.HasSuffix(got, `" --version`))
	assert.Equal(t, "chromedriver --version", Join("chromedriver", "--version"))
}
