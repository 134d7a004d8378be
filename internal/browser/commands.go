package browser

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

const (
	beaconSubKey    = "BLBeacon"
	beaconValueName = "version"
)

// vendorKeys are the per-user registry locations written by each installer.
var vendorKeys = map[Target]string{
	Chrome: `Google\Chrome`,
	Edge:   `Microsoft\Edge`,
}

// versionCommands are the commands that print the browser version on
// platforms without a registry.
var versionCommands = map[platform.ID]map[Target][]string{
	platform.Linux64: {
		Chrome: {"google-chrome", "--version"},
		Edge:   {"microsoft-edge", "--version"},
	},
	platform.Mac64: {
		Chrome: {"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", "--version"},
		Edge:   {"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge", "--version"},
	},
}

// VendorKey returns the registry vendor key for target.
func VendorKey(target Target) string {
	return vendorKeys[target]
}

// beaconKeyPath builds the registry path holding the version value.
func beaconKeyPath(vendorKey string) string {
	return fmt.Sprintf(`SOFTWARE\%s\%s`, vendorKey, beaconSubKey)
}

// VersionCommand returns the default version-query command for target on id.
// It returns nil on Windows, where the registry is used instead.
func VersionCommand(id platform.ID, target Target) []string {
	argv := versionCommands[id][target]
	if argv == nil {
		return nil
	}
	return append([]string(nil), argv...)
}
