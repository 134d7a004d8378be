// Package driver resolves, checks and installs browser automation drivers.
//
// # Architecture
//
// The package is organized into several components:
//   - Resolver: maps a browser version to a driver Release (version + URL)
//   - Checker: decides whether the installed driver already matches a Release
//   - Downloader: HTTP GET with a browser User-Agent and status checking
//   - Extractor: zip extraction with path traversal protection
//   - Installer: download, extract, replace and record the installed version
//
// # Layout
//
// Every target gets its own directory under the install root:
//
//	<root>/browser_driver/<target>/
//	    chromedriver | msedgedriver   (".exe" on Windows)
//	    LATEST_VERSION.txt           last installed driver version
//
// # Usage
//
//	resolver := driver.NewResolver(downloader, driver.DefaultChromeMirror, driver.DefaultEdgeCDN)
//	rel, err := resolver.Resolve(ctx, browser.Chrome, platform.Linux64, "114.0.5735.90")
//	if err != nil {
//	    return err
//	}
//
//	inst := driver.NewInstallation(root, browser.Chrome, platform.Linux64)
//	if !checker.IsCurrent(ctx, inst, rel.Version, platform.Linux64) {
//	    err = installer.Install(ctx, rel, inst)
//	}
package driver
