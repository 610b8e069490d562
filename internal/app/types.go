package app

import "maven-deps/internal/types"

// ClientHandle represents one registered client: its name and the
// settings directory its declarations persist to. The registered SDK
// path and extra repositories live in the persisted store file itself.
type ClientHandle struct {
	Client      string
	SettingsDir string

	store types.ClientStoreFile
}

type RegisterRequest struct {
	Client       string
	SDKPath      string
	Repositories []string
	SettingsDir  string
}

type DependOnRequest struct {
	Group        string
	Artifact     string
	Version      string
	PackageIDs   []string
	Repositories []string
}

type ResolveRequest struct {
	SettingsDir  string
	SDKPath      string
	Repositories []string
	UseLatest    bool
	KeepMissing  bool
	OutputDir    string
}

// ResolvedArtifact is one entry of the final candidate map.
type ResolvedArtifact struct {
	Group      string
	Artifact   string
	Version    string
	Repository string
	Path       string
}

type ResolveResult struct {
	Clients   int
	Artifacts map[string]ResolvedArtifact
}

type CopyRequest struct {
	ResolveRequest
	DestDir string
}

type CopyResult struct {
	Resolved ResolveResult
	DestDir  string
}

type ListRequest struct {
	SettingsDir string
	Client      string
}

type ListEntry struct {
	Client       string
	Group        string
	Artifact     string
	Version      string
	PackageIDs   []string
	Repositories []string
}

type ListResult struct {
	Entries []ListEntry
}
