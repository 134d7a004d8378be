// Package config builds the immutable run configuration for drvsync.
//
// Values are layered: built-in defaults, then an optional sandboxed Lua file,
// then DRVSYNC_* environment variables, then command-line options. The Lua
// file sees a read-only `platform` table and must assign a global `drvsync`
// table:
//
//	drvsync = {
//	    install_root  = "/opt/webdrivers",
//	    chrome_mirror = "https://registry.npmmirror.com/-/binary/chromedriver",
//	    http_timeout  = 120, -- seconds
//	    browser_commands = {
//	        chrome = platform.when(platform.is_linux, { "chromium", "--version" }),
//	    },
//	}
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/browser"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/command"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/driver"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/logging"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

// Config is the resolved configuration for one run. It is built once by the
// Loader and passed by value to every step.
type Config struct {
	Target   browser.Target
	Platform platform.ID
	// PlatformDescription is the host description Platform was resolved from
	PlatformDescription string

	// InstallRoot holds browser_driver/<target>/
	InstallRoot string

	ChromeMirror string
	EdgeCDN      string
	UserAgent    string

	HTTPTimeout    time.Duration
	CommandTimeout time.Duration
	Retries        int

	// LogDir receives output files from background command runs
	LogDir    string
	LogLevel  string
	LogFormat string

	// BrowserCommands overrides the version-query command per target
	BrowserCommands map[browser.Target][]string
}

// Default returns the built-in configuration for target.
func Default(target browser.Target) Config {
	return Config{
		Target:         target,
		InstallRoot:    os.TempDir(),
		ChromeMirror:   driver.DefaultChromeMirror,
		EdgeCDN:        driver.DefaultEdgeCDN,
		UserAgent:      driver.DefaultUserAgent,
		HTTPTimeout:    driver.DefaultTimeout,
		CommandTimeout: command.DefaultTimeout,
		LogDir:         command.DefaultLogDir,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	var errs []error

	if _, err := browser.ParseTarget(c.Target.String()); err != nil || c.Target == "" {
		errs = append(errs, fmt.Errorf("target: %w", browser.ErrInvalidTarget))
	}
	if c.InstallRoot == "" {
		errs = append(errs, errors.New("install_root must not be empty"))
	}
	for name, raw := range map[string]string{"chrome_mirror": c.ChromeMirror, "edge_cdn": c.EdgeCDN} {
		if err := validateBaseURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, errors.New("http_timeout must not be negative"))
	}
	if c.CommandTimeout < 0 {
		errs = append(errs, errors.New("command_timeout must not be negative"))
	}
	if c.Retries < 0 {
		errs = append(errs, errors.New("retries must not be negative"))
	}
	if err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	for target, argv := range c.BrowserCommands {
		if _, err := browser.ParseTarget(target.String()); err != nil {
			errs = append(errs, fmt.Errorf("browser_commands: %w", err))
		}
		if len(argv) == 0 || argv[0] == "" {
			errs = append(errs, fmt.Errorf("browser_commands.%s: command must not be empty", target))
		}
	}

	return errors.Join(errs...)
}

// Installation returns the driver layout for this configuration.
func (c Config) Installation() driver.Installation {
	return driver.NewInstallation(c.InstallRoot, c.Target, c.Platform)
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
