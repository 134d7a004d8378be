//go:build !windows

package browser

import "context"

// RegistryStore has no backing store outside Windows and always reports absence.
type RegistryStore struct{}

// NewRegistryStore creates the registry-backed VersionStore.
func NewRegistryStore() VersionStore {
	return RegistryStore{}
}

// Read always reports the value as absent.
func (RegistryStore) Read(ctx context.Context, vendorKey string) (string, bool) {
	return "", false
}
