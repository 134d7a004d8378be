package platform

import (
	"fmt"
	"strings"
)

// descriptionMatchers are checked in order against the lowercased description.
var descriptionMatchers = []struct {
	substr string
	id     ID
}{
	{"windows", Win32},
	{"linux", Linux64},
	{"macos", Mac64},
}

// osDescriptions maps GOOS values to the prefix used in platform descriptions.
var osDescriptions = map[string]string{
	"windows": "Windows",
	"linux":   "Linux",
	"darwin":  "macOS",
}

// Resolve maps a platform description to a platform ID using a
// case-insensitive substring match.
func Resolve(description string) (ID, error) {
	lower := strings.ToLower(description)
	for _, m := range descriptionMatchers {
		if strings.Contains(lower, m.substr) {
			return m.id, nil
		}
	}
	return "", fmt.Errorf("%w: current platform [%s] is unknown or not supported", ErrUnsupportedPlatform, lower)
}

// describe builds a platform description from GOOS and the optional
// gopsutil platform details, joined with "-".
func describe(goos, platform, version string) string {
	prefix, ok := osDescriptions[goos]
	if !ok {
		prefix = goos
	}

	parts := []string{prefix}
	for _, p := range []string{normalize(platform), normalize(version)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

// normalize lowercases and trims a gopsutil value.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
