package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/command"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/logging"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

// Detection failure reasons.
var (
	ErrNoVersionSource = errors.New("no version source for platform")
	ErrVersionNotFound = errors.New("browser version not found")
	ErrNoVersionMatch  = errors.New("no version in browser output")
)

// Source describes where a detected version came from.
type Source string

const (
	SourceRegistry Source = "registry"
	SourceProcess  Source = "process"
	SourceNone     Source = "none"
)

// Detection is the outcome of a browser version lookup. A missing browser is
// a normal Detection with SentinelVersion and Err set to the reason.
type Detection struct {
	Target  Target
	Version Version
	Source  Source
	// Err explains why the sentinel was returned. Nil on success.
	Err error
}

// NotInstalled reports whether no usable version was detected.
func (d Detection) NotInstalled() bool {
	return d.Version.IsSentinel()
}

// Detector finds installed browser versions.
type Detector struct {
	store    VersionStore
	probe    ProcessVersionProbe
	commands map[Target][]string
	logger   logging.Logger
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithCommands overrides the version-query command per target.
func WithCommands(commands map[Target][]string) DetectorOption {
	return func(d *Detector) {
		d.commands = commands
	}
}

// WithLogger sets the logger used to report detection failures.
func WithLogger(l logging.Logger) DetectorOption {
	return func(d *Detector) {
		d.logger = logging.OrNop(l)
	}
}

// NewDetector creates a Detector from a registry store and a process probe.
func NewDetector(store VersionStore, probe ProcessVersionProbe, opts ...DetectorOption) *Detector {
	d := &Detector{
		store:  store,
		probe:  probe,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewSystemDetector wires the registry store and a probe over runner.
func NewSystemDetector(runner command.Runner, opts ...DetectorOption) *Detector {
	return NewDetector(NewRegistryStore(), NewCommandProbe(runner), opts...)
}

// Detect returns the installed version of target on the given platform.
func (d *Detector) Detect(ctx context.Context, target Target, id platform.ID) Detection {
	var det Detection
	if id.IsWindows() {
		det = d.fromRegistry(ctx, target)
	} else {
		det = d.fromProcess(ctx, target, id)
	}
	det.Target = target

	if det.Err != nil {
		d.logger.Warn("browser version detection failed",
			"target", target.String(),
			"platform", id.String(),
			"source", string(det.Source),
			"error", det.Err.Error())
		return det
	}

	d.logger.Info("browser version detected",
		"target", target.String(),
		"version", det.Version.String(),
		"source", string(det.Source))
	return det
}

func (d *Detector) fromRegistry(ctx context.Context, target Target) Detection {
	det := Detection{Version: SentinelVersion, Source: SourceRegistry}
	if d.store == nil {
		det.Err = ErrNoVersionSource
		return det
	}

	key := VendorKey(target)
	value, ok := d.store.Read(ctx, key)
	if !ok {
		det.Err = fmt.Errorf("%w: registry key %s", ErrVersionNotFound, beaconKeyPath(key))
		return det
	}

	det.Version = Version(value)
	return det
}

func (d *Detector) fromProcess(ctx context.Context, target Target, id platform.ID) Detection {
	det := Detection{Version: SentinelVersion, Source: SourceProcess}

	argv := d.commands[target]
	if len(argv) == 0 {
		argv = VersionCommand(id, target)
	}
	if len(argv) == 0 || d.probe == nil {
		det.Source = SourceNone
		det.Err = fmt.Errorf("%w %s", ErrNoVersionSource, id)
		return det
	}

	out, ok := d.probe.Query(ctx, argv)
	if !ok {
		det.Err = fmt.Errorf("%w: %s", ErrVersionNotFound, command.Join(argv[0], argv[1:]...))
		if cp, isCmd := d.probe.(*CommandProbe); isCmd && cp.LastErr != nil {
			det.Err = fmt.Errorf("%w: %w", ErrVersionNotFound, cp.LastErr)
		}
		return det
	}

	v, found := ExtractVersion(out)
	if !found {
		det.Err = fmt.Errorf("%w: %q", ErrNoVersionMatch, out)
		return det
	}

	det.Version = v
	return det
}
