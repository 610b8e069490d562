package ports

import "maven-deps/internal/types"

// MetadataPort reads repository version descriptors. LoadMetadata
// returns ok=false when the group/artifact subtree has no descriptor in
// the given root; that is not an error, the scanner just moves on.
type MetadataPort interface {
	LoadMetadata(root string, group string, artifact string) (types.RepoMetadata, bool, error)
}

// ManifestPort reads the package manifest of one published artifact
// version for transitive dependency expansion. ok=false means the
// version ships no manifest, which is fine: it simply has no transitive
// dependencies.
type ManifestPort interface {
	LoadManifest(path string) (types.ManifestFile, bool, error)
}
