package browser

import (
	"context"
	"strings"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/command"
)

// VersionStore reads a browser version recorded by the vendor's installer.
// The boolean is false when the value is absent for any reason.
type VersionStore interface {
	Read(ctx context.Context, vendorKey string) (string, bool)
}

// ProcessVersionProbe asks a browser binary for its version.
// The boolean is false when the process could not produce output.
type ProcessVersionProbe interface {
	Query(ctx context.Context, argv []string) (string, bool)
}

// CommandProbe runs the browser through a command.Runner.
type CommandProbe struct {
	Runner command.Runner
	// LastErr holds the failure from the most recent Query, if any.
	LastErr error
}

// NewCommandProbe creates a probe backed by runner.
func NewCommandProbe(runner command.Runner) *CommandProbe {
	return &CommandProbe{Runner: runner}
}

// Query runs argv and returns its trimmed standard output.
func (p *CommandProbe) Query(ctx context.Context, argv []string) (string, bool) {
	p.LastErr = nil
	if len(argv) == 0 {
		return "", false
	}

	res, err := p.Runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		p.LastErr = err
		return "", false
	}

	out := strings.TrimSpace(res.Stdout)
	return out, out != ""
}
