package ports

import "maven-deps/internal/types"

// ClientStorePort persists per-client dependency sets, one file per
// client name under a settings directory.
type ClientStorePort interface {
	Load(settingsDir string, client string) (types.ClientStoreFile, bool, error)
	Save(settingsDir string, store types.ClientStoreFile) error
	Delete(settingsDir string, client string) error
	ListClients(settingsDir string) ([]string, error)
}
