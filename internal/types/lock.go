package types

// LockEntry records one resolved artifact in the lock output.
type LockEntry struct {
	Version    string `yaml:"version"`
	Repository string `yaml:"repository"`
	Path       string `yaml:"path"`
}

// LockFile is the YAML document written after a successful resolve.
// Artifacts is keyed by versionless coordinate (group:artifact).
type LockFile struct {
	Clients   int                  `yaml:"clients"`
	UseLatest bool                 `yaml:"use_latest"`
	Artifacts map[string]LockEntry `yaml:"artifacts"`
}
