package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/config"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/driver"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/logging"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/service"
)

// runTimeout bounds a whole run, including the driver download.
const runTimeout = 10 * time.Minute

// valueFlags take an argument, either as the next arg or after '='.
var valueFlags = map[string]func(*config.Options, string){
	"--config":       func(o *config.Options, v string) { o.ConfigPath = v },
	"--install-root": func(o *config.Options, v string) { o.InstallRoot = v },
	"--log-level":    func(o *config.Options, v string) { o.LogLevel = v },
	"--log-format":   func(o *config.Options, v string) { o.LogFormat = v },
	"--platform":     func(o *config.Options, v string) { o.Platform = v },
}

// parseArgs turns command-line arguments into loader options.
func parseArgs(args []string) (config.Options, error) {
	var opts config.Options
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		set, ok := valueFlags[name]
		if !ok {
			return config.Options{}, fmt.Errorf("unknown option: %s", name)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return config.Options{}, fmt.Errorf("option %s requires a value", name)
			}
			i++
			value = args[i]
		}
		set(&opts, value)
	}

	switch len(positional) {
	case 0:
	case 1:
		opts.Target = positional[0]
	default:
		return config.Options{}, fmt.Errorf("expected at most one browser, got %d: %s", len(positional), strings.Join(positional, " "))
	}

	return opts, nil
}

// runSync handles the default command.
func runSync(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := config.NewLoader(platform.NewDetector()).Load(ctx, opts)
	if err != nil {
		return explain(err)
	}

	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: format}, os.Stderr)
	if err != nil {
		return err
	}

	out, err := service.NewSystemSyncer(cfg, logger).Sync(ctx)
	if err != nil {
		return explain(err)
	}

	printOutcome(os.Stdout, out)
	return nil
}

// explain turns well-known failures into user-facing messages.
func explain(err error) error {
	var parseErr *config.ParseError
	switch {
	case errors.As(err, &parseErr):
		return errors.New(config.FormatError(parseErr, false))
	case errors.Is(err, driver.ErrBrowserNotInstalled):
		return err
	case errors.Is(err, platform.ErrUnsupportedPlatform):
		return fmt.Errorf("%w\nSupported platforms: Windows, Linux and macOS", err)
	default:
		return err
	}
}

func printOutcome(w io.Writer, out *service.Outcome) {
	fmt.Fprintf(w, "✓ Detected %s %s (%s)\n", out.Target, out.BrowserVersion, out.Platform)
	switch out.State {
	case service.StateCurrent:
		fmt.Fprintf(w, "✓ %s %s is up to date\n", out.Target.DriverName(), out.Release.Version)
	case service.StateInstalled:
		if out.PreviousVersion != "" && out.PreviousVersion != out.Release.Version {
			fmt.Fprintf(w, "✓ Updated %s %s -> %s\n", out.Target.DriverName(), out.PreviousVersion, out.Release.Version)
		} else {
			fmt.Fprintf(w, "✓ Installed %s %s\n", out.Target.DriverName(), out.Release.Version)
		}
	}
	fmt.Fprintf(w, "  Driver: %s\n", out.Installation.BinaryPath)
}
