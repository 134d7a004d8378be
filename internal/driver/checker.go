package driver

import (
	"context"
	"os"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/browser"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/command"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/logging"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

// Checker decides whether an installed driver already matches a version.
type Checker struct {
	runner command.Runner
	logger logging.Logger
}

// NewChecker creates a checker that runs drivers through runner.
func NewChecker(runner command.Runner, logger logging.Logger) *Checker {
	return &Checker{runner: runner, logger: logging.OrNop(logger)}
}

// IsCurrent runs the installed driver with --version and reports whether it
// prints exactly the expected version. Any failure means "not current".
func (c *Checker) IsCurrent(ctx context.Context, inst Installation, expected browser.Version, id platform.ID) bool {
	if !id.IsWindows() {
		// Archives built on Windows carry no unix mode bits
		_ = os.Chmod(inst.BinaryPath, 0755)
	}

	res, err := c.runner.Run(ctx, inst.BinaryPath, "--version")
	if err != nil {
		c.logger.Debug("installed driver not usable", "path", inst.BinaryPath, "error", err.Error())
		return false
	}

	if !ReportsVersion(res.Stdout, expected) {
		c.logger.Debug("installed driver is stale", "path", inst.BinaryPath, "output", res.Stdout, "expected", expected.String())
		return false
	}

	return true
}

// ReportsVersion reports whether output contains a version token equal to
// expected. Tokens are whole four-component versions, so "11.2.3.45" does
// not satisfy "1.2.3.4".
func ReportsVersion(output string, expected browser.Version) bool {
	if expected == "" {
		return false
	}
	for _, v := range browser.ExtractVersions(output) {
		if v == expected {
			return true
		}
	}
	return false
}
