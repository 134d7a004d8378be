// Package browser detects the installed version of a supported browser.
//
// Detection never fails outright. When the browser cannot be found or its
// version cannot be read, the result carries SentinelVersion and the reason,
// leaving the decision of whether that is fatal to the caller.
package browser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Target is a supported browser family.
type Target string

const (
	// Chrome is Google Chrome.
	Chrome Target = "chrome"
	// Edge is Microsoft Edge.
	Edge Target = "msedge"
)

// Targets lists every supported browser target.
var Targets = []Target{Chrome, Edge}

// DefaultTarget is used when no target is given.
const DefaultTarget = Chrome

// ErrInvalidTarget is returned by ParseTarget for unknown browser names.
var ErrInvalidTarget = errors.New("invalid browser target")

// String returns the string representation of the target.
func (t Target) String() string {
	return string(t)
}

// DriverName is the driver executable base name for the target,
// without any platform-specific extension.
func (t Target) DriverName() string {
	return string(t) + "driver"
}

// ParseTarget validates a browser target. An empty string selects DefaultTarget.
func ParseTarget(s string) (Target, error) {
	if s == "" {
		return DefaultTarget, nil
	}
	for _, t := range Targets {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q: browser target is only allowed when entering ['chrome','msedge']", ErrInvalidTarget, s)
}

// Version is a four-component dotted version (major.minor.build.patch).
type Version string

// SentinelVersion means no usable browser version was detected.
const SentinelVersion Version = "0.0.0.0"

var (
	// versionPattern finds a four-component version whose first component
	// has no leading zero. The version itself is submatch 1.
	versionPattern = regexp.MustCompile(`(?:^|\D)([1-9]\d*(?:\.\d+){3})`)
	// exactVersionPattern validates a whole string as a four-component version.
	exactVersionPattern = regexp.MustCompile(`^\d+(?:\.\d+){3}$`)
)

// ExtractVersion returns the first four-component version found in text.
func ExtractVersion(text string) (Version, bool) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return Version(m[1]), true
}

// ExtractVersions returns every four-component version found in text.
func ExtractVersions(text string) []Version {
	matches := versionPattern.FindAllStringSubmatch(text, -1)
	out := make([]Version, 0, len(matches))
	for _, m := range matches {
		out = append(out, Version(m[1]))
	}
	return out
}

// String returns the version text.
func (v Version) String() string {
	return string(v)
}

// IsSentinel reports whether v is the "not installed" marker.
func (v Version) IsSentinel() bool {
	return v == SentinelVersion
}

// Valid reports whether v has exactly four non-negative integer components.
func (v Version) Valid() bool {
	return exactVersionPattern.MatchString(string(v))
}

// Major returns the leading component, or "" for an invalid version.
func (v Version) Major() string {
	if !v.Valid() {
		return ""
	}
	major, _, _ := strings.Cut(string(v), ".")
	return major
}
