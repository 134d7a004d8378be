//go:build windows

package browser

import (
	"context"

	"golang.org/x/sys/windows/registry"
)

// RegistryStore reads HKCU\SOFTWARE\<vendor>\BLBeacon\version.
type RegistryStore struct{}

// NewRegistryStore creates the registry-backed VersionStore.
func NewRegistryStore() VersionStore {
	return RegistryStore{}
}

// Read returns the beacon version string for vendorKey.
func (RegistryStore) Read(ctx context.Context, vendorKey string) (string, bool) {
	k, err := registry.OpenKey(registry.CURRENT_USER, beaconKeyPath(vendorKey), registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()

	v, _, err := k.GetStringValue(beaconValueName)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}
