package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/browser"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/logging"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

const (
	// DefaultChromeMirror hosts chromedriver releases and LATEST_RELEASE_<major> files.
	DefaultChromeMirror = "https://registry.npmmirror.com/-/binary/chromedriver"
	// DefaultEdgeCDN hosts msedgedriver releases.
	DefaultEdgeCDN = "https://msedgedriver.azureedge.net"
)

// Release is a resolved driver download.
type Release struct {
	Target         browser.Target
	Platform       platform.ID
	BrowserVersion browser.Version
	Version        browser.Version
	URL            string
	ArchiveName    string
}

// Resolver maps browser versions to driver releases.
type Resolver struct {
	fetcher      Fetcher
	chromeMirror string
	edgeCDN      string
	logger       logging.Logger
}

// NewResolver creates a resolver. Empty base URLs select the defaults.
func NewResolver(fetcher Fetcher, chromeMirror, edgeCDN string, logger logging.Logger) *Resolver {
	if chromeMirror == "" {
		chromeMirror = DefaultChromeMirror
	}
	if edgeCDN == "" {
		edgeCDN = DefaultEdgeCDN
	}
	return &Resolver{
		fetcher:      fetcher,
		chromeMirror: strings.TrimRight(chromeMirror, "/"),
		edgeCDN:      strings.TrimRight(edgeCDN, "/"),
		logger:       logging.OrNop(logger),
	}
}

// Resolve computes the driver version and download URL for a browser version.
// The sentinel version fails with ErrBrowserNotInstalled before any network call.
func (r *Resolver) Resolve(ctx context.Context, target browser.Target, id platform.ID, version browser.Version) (*Release, error) {
	if version.IsSentinel() || version == "" {
		return nil, fmt.Errorf("%w: the current system may not have %s browser installed, please check if it is installed", ErrBrowserNotInstalled, target)
	}

	switch target {
	case browser.Chrome:
		return r.resolveChrome(ctx, id, version)
	case browser.Edge:
		return r.resolveEdge(id, version)
	default:
		return nil, fmt.Errorf("%w %q", browser.ErrInvalidTarget, target)
	}
}

// LatestReleaseURL is the chrome endpoint naming the newest driver for a major version.
func (r *Resolver) LatestReleaseURL(major string) string {
	return fmt.Sprintf("%s/LATEST_RELEASE_%s", r.chromeMirror, major)
}

// resolveChrome queries the mirror for the newest driver of the browser's major version.
// Pattern: {mirror}/{driverVersion}/chromedriver_{win32|linux64|mac64}.zip
func (r *Resolver) resolveChrome(ctx context.Context, id platform.ID, version browser.Version) (*Release, error) {
	suffix, err := chromeArchiveSuffix(id)
	if err != nil {
		return nil, err
	}

	major := version.Major()
	if major == "" {
		return nil, fmt.Errorf("invalid browser version %q", version)
	}

	url := r.LatestReleaseURL(major)
	r.logger.Debug("querying latest driver release", "url", url, "major", major)

	body, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &ResolveError{URL: url, Err: err}
	}

	driverVersion := browser.Version(strings.TrimSpace(string(body)))
	if !driverVersion.Valid() {
		return nil, &ResolveError{URL: url, Err: fmt.Errorf("unexpected release text %q", truncate(string(body), 64))}
	}

	archive := fmt.Sprintf("chromedriver_%s.zip", suffix)
	return &Release{
		Target:         browser.Chrome,
		Platform:       id,
		BrowserVersion: version,
		Version:        driverVersion,
		URL:            fmt.Sprintf("%s/%s/%s", r.chromeMirror, driverVersion, archive),
		ArchiveName:    archive,
	}, nil
}

// resolveEdge uses the browser version as the driver version.
// Pattern: {cdn}/{version}/edgedriver_{win64|linux64|mac64}.zip
func (r *Resolver) resolveEdge(id platform.ID, version browser.Version) (*Release, error) {
	suffix, err := edgeArchiveSuffix(id)
	if err != nil {
		return nil, err
	}

	archive := fmt.Sprintf("edgedriver_%s.zip", suffix)
	return &Release{
		Target:         browser.Edge,
		Platform:       id,
		BrowserVersion: version,
		Version:        version,
		URL:            fmt.Sprintf("%s/%s/%s", r.edgeCDN, version, archive),
		ArchiveName:    archive,
	}, nil
}

// chromeArchiveSuffix maps platform IDs to chromedriver archive names
func chromeArchiveSuffix(id platform.ID) (string, error) {
	switch id {
	case platform.Win32, platform.Linux64, platform.Mac64:
		return id.String(), nil
	default:
		return "", fmt.Errorf("%w for chromedriver: %s", platform.ErrUnsupportedPlatform, id)
	}
}

// edgeArchiveSuffix maps platform IDs to msedgedriver archive names
func edgeArchiveSuffix(id platform.ID) (string, error) {
	switch id {
	case platform.Win32:
		return "win64", nil
	case platform.Linux64:
		return "linux64", nil
	case platform.Mac64:
		return "mac64", nil
	default:
		return "", fmt.Errorf("%w for msedgedriver: %s", platform.ErrUnsupportedPlatform, id)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
