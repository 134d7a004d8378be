package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// hostInfoFunc matches host.PlatformInformationWithContext.
type hostInfoFunc func(ctx context.Context) (platform, family, version string, err error)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct {
	goos     string
	goarch   string
	hostInfo hostInfoFunc
}

// NewDetector creates a new platform detector for the running host.
func NewDetector() Detector {
	return &RealDetector{
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
		hostInfo: host.PlatformInformationWithContext,
	}
}

// Detect builds the platform description and resolves it to an ID.
//
// If gopsutil fails to report platform details, the description falls back
// to the OS name alone. Context cancellation is a hard failure.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:   d.goos,
		Arch: d.goarch,
	}

	if d.hostInfo != nil {
		platform, family, version, err := d.hostInfo(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
		} else {
			info.Platform = normalize(platform)
			info.Family = normalize(family)
			info.Version = normalize(version)
		}
	}

	info.Description = describe(info.OS, info.Platform, info.Version)

	id, err := Resolve(info.Description)
	if err != nil {
		return nil, err
	}
	info.ID = id

	return info, nil
}

// StaticDetector returns a fixed Info. The config loader uses it when the
// platform is forced with --platform or DRVSYNC_PLATFORM.
type StaticDetector struct {
	Info *Info
}

// Detect returns the configured info.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if s.Info == nil {
		return nil, fmt.Errorf("%w: no platform configured", ErrUnsupportedPlatform)
	}
	return s.Info, nil
}

// ForID builds an Info for a known platform ID without touching the host.
func ForID(id ID) (*Info, error) {
	switch id {
	case Win32:
		return &Info{OS: "windows", Description: "Windows", ID: id}, nil
	case Linux64:
		return &Info{OS: "linux", Description: "Linux", ID: id}, nil
	case Mac64:
		return &Info{OS: "darwin", Description: "macOS", ID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, string(id))
	}
}
