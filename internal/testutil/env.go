// Package testutil provides utilities for testing drvsync in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// drvsyncEnv lists every environment variable the config loader reads.
var drvsyncEnv = []string{
	"DRVSYNC_CONFIG",
	"DRVSYNC_INSTALL_ROOT",
	"DRVSYNC_CHROME_MIRROR",
	"DRVSYNC_EDGE_CDN",
	"DRVSYNC_USER_AGENT",
	"DRVSYNC_LOG_DIR",
	"DRVSYNC_LOG_LEVEL",
	"DRVSYNC_LOG_FORMAT",
	"DRVSYNC_PLATFORM",
}

// SetupTestEnv isolates a test from the user's drvsync settings.
// Every DRVSYNC_* variable is cleared, then the install root and log
// directory are pointed at fresh temp directories. It returns the install root.
//
// Cleanup is handled by t.TempDir() and t.Setenv().
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	for _, key := range drvsyncEnv {
		t.Setenv(key, "")
	}

	tmpDir := t.TempDir()
	installRoot := filepath.Join(tmpDir, "drivers")
	logDir := filepath.Join(tmpDir, "logs")

	for _, dir := range []string{installRoot, logDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	t.Setenv("DRVSYNC_INSTALL_ROOT", installRoot)
	t.Setenv("DRVSYNC_LOG_DIR", logDir)

	return installRoot
}
