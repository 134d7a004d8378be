package driver

import (
	"errors"
	"fmt"
)

// ErrBrowserNotInstalled is returned when resolution is attempted with the
// sentinel browser version.
var ErrBrowserNotInstalled = errors.New("browser not installed")

// ResolveError reports a failure to determine the driver release.
type ResolveError struct {
	URL string
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve driver version from %s: %v", e.URL, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Install stages reported in InstallError.
const (
	StageLock     = "lock"
	StageDownload = "download"
	StageSave     = "save"
	StageExtract  = "extract"
	StageCleanup  = "cleanup"
	StageRecord   = "record"
)

// InstallError reports a failed install step.
type InstallError struct {
	Stage string
	Err   error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install driver (%s): %v", e.Stage, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status code: %d", e.URL, e.StatusCode)
}
