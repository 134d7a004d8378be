package config

import (
	"context"
	"fmt"
	"os"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/browser"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

// Environment variables read by the Loader.
const (
	EnvConfig       = "DRVSYNC_CONFIG"
	EnvInstallRoot  = "DRVSYNC_INSTALL_ROOT"
	EnvChromeMirror = "DRVSYNC_CHROME_MIRROR"
	EnvEdgeCDN      = "DRVSYNC_EDGE_CDN"
	EnvUserAgent    = "DRVSYNC_USER_AGENT"
	EnvLogDir       = "DRVSYNC_LOG_DIR"
	EnvLogLevel     = "DRVSYNC_LOG_LEVEL"
	EnvLogFormat    = "DRVSYNC_LOG_FORMAT"
	EnvPlatform     = "DRVSYNC_PLATFORM"
)

// Options are the command-line inputs. Empty fields are not set.
type Options struct {
	Target      string
	ConfigPath  string
	// Platform forces a platform ID instead of detecting the host
	Platform    string
	InstallRoot string
	LogLevel    string
	LogFormat   string
}

// Loader assembles a Config from all sources.
type Loader struct {
	detector platform.Detector
	getenv   func(string) string
}

// NewLoader creates a loader that detects the host with detector.
func NewLoader(detector platform.Detector) *Loader {
	return &Loader{detector: detector, getenv: os.Getenv}
}

// Load validates the target, detects the platform and layers every source.
// An invalid target fails before any detection work is done.
func (l *Loader) Load(ctx context.Context, opts Options) (Config, error) {
	target, err := browser.ParseTarget(opts.Target)
	if err != nil {
		return Config{}, err
	}

	detector := l.detector
	forced := opts.Platform
	if forced == "" {
		forced = l.getenv(EnvPlatform)
	}
	if forced != "" {
		info, err := platform.ForID(platform.ID(forced))
		if err != nil {
			return Config{}, err
		}
		detector = platform.StaticDetector{Info: info}
	}

	info, err := detector.Detect(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("detect platform: %w", err)
	}

	cfg := Default(target)
	cfg.Platform = info.ID
	cfg.PlatformDescription = info.Description

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = l.getenv(EnvConfig)
	}
	if configPath != "" {
		fc, err := NewParser(info).ParseFile(ctx, configPath)
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", configPath, err)
		}
		cfg = applyFile(cfg, fc)
	}

	cfg = l.applyEnv(cfg)
	cfg = applyOptions(cfg, opts)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyFile(cfg Config, fc *FileConfig) Config {
	setString(&cfg.InstallRoot, fc.InstallRoot)
	setString(&cfg.ChromeMirror, fc.ChromeMirror)
	setString(&cfg.EdgeCDN, fc.EdgeCDN)
	setString(&cfg.UserAgent, fc.UserAgent)
	setString(&cfg.LogDir, fc.LogDir)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)

	if fc.HTTPTimeout != nil {
		cfg.HTTPTimeout = *fc.HTTPTimeout
	}
	if fc.CommandTimeout != nil {
		cfg.CommandTimeout = *fc.CommandTimeout
	}
	if fc.Retries != nil {
		cfg.Retries = *fc.Retries
	}
	if len(fc.BrowserCommands) > 0 {
		cmds := make(map[browser.Target][]string, len(fc.BrowserCommands))
		for k, v := range fc.BrowserCommands {
			cmds[k] = append([]string(nil), v...)
		}
		cfg.BrowserCommands = cmds
	}

	return cfg
}

func (l *Loader) applyEnv(cfg Config) Config {
	setString(&cfg.InstallRoot, l.getenv(EnvInstallRoot))
	setString(&cfg.ChromeMirror, l.getenv(EnvChromeMirror))
	setString(&cfg.EdgeCDN, l.getenv(EnvEdgeCDN))
	setString(&cfg.UserAgent, l.getenv(EnvUserAgent))
	setString(&cfg.LogDir, l.getenv(EnvLogDir))
	setString(&cfg.LogLevel, l.getenv(EnvLogLevel))
	setString(&cfg.LogFormat, l.getenv(EnvLogFormat))
	return cfg
}

func applyOptions(cfg Config, opts Options) Config {
	setString(&cfg.InstallRoot, opts.InstallRoot)
	setString(&cfg.LogLevel, opts.LogLevel)
	setString(&cfg.LogFormat, opts.LogFormat)
	return cfg
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
