// Package platform resolves the host operating system to one of the driver
// platform identifiers used in download URLs and install layout.
//
// Detection combines runtime.GOOS with gopsutil host information to build a
// human-readable platform description (for example "linux-ubuntu-22.04" or
// "macOS-14.2"), which is then matched against the known substrings.
package platform

import (
	"context"
	"errors"
)

// ID is a canonical driver platform identifier.
type ID string

const (
	// Win32 is used for every Windows host.
	Win32 ID = "win32"
	// Linux64 is used for every Linux host.
	Linux64 ID = "linux64"
	// Mac64 is used for every macOS host.
	Mac64 ID = "mac64"
)

// String returns the string representation of the platform ID.
func (id ID) String() string {
	return string(id)
}

// IsWindows reports whether id is the Windows platform.
func (id ID) IsWindows() bool {
	return id == Win32
}

// ErrUnsupportedPlatform is returned when the host matches no known platform.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Info contains platform detection information.
type Info struct {
	OS          string // runtime.GOOS: "linux", "darwin", "windows"
	Arch        string // runtime.GOARCH
	Platform    string // distro or product ID from gopsutil, may be empty
	Family      string // platform family from gopsutil, may be empty
	Version     string // platform version from gopsutil, may be empty
	Description string // the string ID was resolved from
	ID          ID
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.ID == Linux64
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.ID == Mac64
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.ID == Win32
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
