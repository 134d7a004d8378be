// Package service runs the driver sync workflow.
//
// A run moves through a single linear path:
//
//	detect browser version -> resolve driver release -> check installed driver
//	    -> current: done
//	    -> stale or missing: download, extract, record -> done
//
// A browser that is not installed ends the run with driver.ErrBrowserNotInstalled
// before any network traffic.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/browser"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/command"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/config"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/driver"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/logging"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

// BrowserDetector finds the installed browser version.
type BrowserDetector interface {
	Detect(ctx context.Context, target browser.Target, id platform.ID) browser.Detection
}

// ReleaseResolver maps a browser version to a driver release.
type ReleaseResolver interface {
	Resolve(ctx context.Context, target browser.Target, id platform.ID, version browser.Version) (*driver.Release, error)
}

// FreshnessChecker decides whether the installed driver matches a version.
type FreshnessChecker interface {
	IsCurrent(ctx context.Context, inst driver.Installation, expected browser.Version, id platform.ID) bool
}

// DriverInstaller downloads and unpacks a release.
type DriverInstaller interface {
	Install(ctx context.Context, rel *driver.Release, inst driver.Installation) error
}

// State is the final state of a successful run.
type State string

const (
	// StateCurrent means the installed driver already matched.
	StateCurrent State = "current"
	// StateInstalled means a new driver was downloaded.
	StateInstalled State = "installed"
)

// Outcome describes a successful run.
type Outcome struct {
	Target         browser.Target
	Platform       platform.ID
	BrowserVersion browser.Version
	Release        *driver.Release
	Installation   driver.Installation
	State          State
	// PreviousVersion is the version marker found before the run, if any.
	PreviousVersion browser.Version
	StartedAt       time.Time
	Duration        time.Duration
}

// Syncer brings one target's driver in line with its browser.
type Syncer struct {
	cfg       config.Config
	detector  BrowserDetector
	resolver  ReleaseResolver
	checker   FreshnessChecker
	installer DriverInstaller
	clock     Clock
	logger    logging.Logger
}

// NewSyncer creates a Syncer with dependency injection.
func NewSyncer(
	cfg config.Config,
	detector BrowserDetector,
	resolver ReleaseResolver,
	checker FreshnessChecker,
	installer DriverInstaller,
	clock Clock,
	logger logging.Logger,
) *Syncer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Syncer{
		cfg:       cfg,
		detector:  detector,
		resolver:  resolver,
		checker:   checker,
		installer: installer,
		clock:     clock,
		logger:    logging.OrNop(logger),
	}
}

// NewSystemSyncer wires a Syncer to real processes, the registry and HTTP.
func NewSystemSyncer(cfg config.Config, logger logging.Logger) *Syncer {
	logger = logging.OrNop(logger)
	runner := command.NewExec(cfg.CommandTimeout, cfg.LogDir)
	downloader := driver.NewDownloader(cfg.HTTPTimeout,
		driver.WithUserAgent(cfg.UserAgent),
		driver.WithRetries(cfg.Retries))

	detectorOpts := []browser.DetectorOption{browser.WithLogger(logger)}
	if len(cfg.BrowserCommands) > 0 {
		detectorOpts = append(detectorOpts, browser.WithCommands(cfg.BrowserCommands))
	}

	return NewSyncer(
		cfg,
		browser.NewSystemDetector(runner, detectorOpts...),
		driver.NewResolver(downloader, cfg.ChromeMirror, cfg.EdgeCDN, logger),
		driver.NewChecker(runner, logger),
		driver.NewInstaller(downloader, logger),
		RealClock{},
		logger,
	)
}

// Sync runs the workflow once. It is idempotent: when the installed driver
// already reports the resolved version nothing is downloaded.
func (s *Syncer) Sync(ctx context.Context) (*Outcome, error) {
	out := &Outcome{
		Target:       s.cfg.Target,
		Platform:     s.cfg.Platform,
		Installation: s.cfg.Installation(),
		StartedAt:    s.clock.Now(),
	}
	defer func() {
		out.Duration = s.clock.Now().Sub(out.StartedAt)
	}()

	s.logger.Debug("platform resolved",
		"platform", s.cfg.Platform.String(),
		"description", s.cfg.PlatformDescription)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("operation cancelled: %w", err)
	}

	detection := s.detector.Detect(ctx, s.cfg.Target, s.cfg.Platform)
	out.BrowserVersion = detection.Version

	rel, err := s.resolver.Resolve(ctx, s.cfg.Target, s.cfg.Platform, detection.Version)
	if err != nil {
		return nil, err
	}
	out.Release = rel
	s.logger.Info("driver release resolved",
		"driver_version", rel.Version.String(),
		"url", rel.URL)

	if prev, ok := out.Installation.RecordedVersion(); ok {
		out.PreviousVersion = prev
	}

	if out.Installation.HasBinary() && s.checker.IsCurrent(ctx, out.Installation, rel.Version, s.cfg.Platform) {
		out.State = StateCurrent
		s.logger.Info("driver is up to date",
			"path", out.Installation.BinaryPath,
			"version", rel.Version.String())
		return out, nil
	}

	s.logger.Info("driver missing or stale",
		"path", out.Installation.BinaryPath,
		"recorded_version", out.PreviousVersion.String(),
		"wanted_version", rel.Version.String())

	if err := s.installer.Install(ctx, rel, out.Installation); err != nil {
		return nil, fmt.Errorf("install %s %s: %w", s.cfg.Target.DriverName(), rel.Version, err)
	}
	out.State = StateInstalled

	return out, nil
}
