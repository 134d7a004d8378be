package driver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/browser"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

const (
	// InstallSubdir is created under the install root.
	InstallSubdir = "browser_driver"
	// VersionFileName records the last installed driver version.
	VersionFileName = "LATEST_VERSION.txt"
)

// Installation is the on-disk location of one target's driver.
type Installation struct {
	Target      browser.Target
	Dir         string
	BinaryPath  string
	VersionFile string
}

// NewInstallation computes the layout under root for target on id.
func NewInstallation(root string, target browser.Target, id platform.ID) Installation {
	dir := filepath.Join(root, InstallSubdir, target.String())
	return Installation{
		Target:      target,
		Dir:         dir,
		BinaryPath:  filepath.Join(dir, BinaryName(target, id)),
		VersionFile: filepath.Join(dir, VersionFileName),
	}
}

// BinaryName is the driver executable file name for target on id.
func BinaryName(target browser.Target, id platform.ID) string {
	name := target.DriverName()
	if id.IsWindows() {
		name += ".exe"
	}
	return name
}

// RecordedVersion reads the version marker file. The marker is informational
// only; freshness is always decided by running the binary.
func (i Installation) RecordedVersion() (browser.Version, bool) {
	data, err := os.ReadFile(i.VersionFile)
	if err != nil {
		return "", false
	}
	v := browser.Version(strings.TrimSpace(string(data)))
	if v == "" {
		return "", false
	}
	return v, true
}

// HasBinary reports whether the driver executable exists as a regular file.
func (i Installation) HasBinary() bool {
	info, err := os.Stat(i.BinaryPath)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
