package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"maven-deps/internal/ports"
	"maven-deps/internal/types"
)

// SDKPlaceholder marks the position of the configured SDK path inside a
// repository root, e.g. "${SDK}/extras/m2repository".
const SDKPlaceholder = "${SDK}"

// RepositoryScanner locates the best installed version of a dependency
// across an ordered set of local repository roots.
type RepositoryScanner struct {
	Metadata ports.MetadataPort
	SDKPath  string
	Roots    []string
}

func NewRepositoryScanner(metadata ports.MetadataPort, sdkPath string, roots []string) RepositoryScanner {
	return RepositoryScanner{
		Metadata: metadata,
		SDKPath:  sdkPath,
		Roots:    roots,
	}
}

// FindCandidate scans the configured roots followed by the dependency's
// own extra repositories. The first root whose metadata lists an
// acceptable version with a packaging file actually present on disk
// wins. A root whose metadata matches but whose files are all absent
// yields nothing and the scan moves on. (nil, nil) means no root had a
// candidate; the caller decides whether that is fatal.
func (s RepositoryScanner) FindCandidate(ctx context.Context, dep *Dependency) (*Dependency, error) {
	roots := append(append([]string(nil), s.Roots...), dep.Repositories...)
	for _, root := range roots {
		resolved, err := s.resolveRoot(root)
		if err != nil {
			return nil, err
		}
		meta, ok, err := s.Metadata.LoadMetadata(resolved, dep.Group, dep.Artifact)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		candidate := dep.cloneForScan()
		candidate.RepoPath = resolved
		for _, v := range meta.Versions {
			candidate.AddVersion(v)
		}
		for candidate.HasPossibleVersions() {
			best := candidate.BestVersion()
			if _, found := packagingFile(candidate.BestVersionPath(), candidate.Artifact, best); found {
				log.Ctx(ctx).Debug().
					Str("artifact", candidate.VersionlessKey()).
					Str("version", best).
					Str("repository", resolved).
					Msg("candidate located")
				return candidate, nil
			}
			candidate.RemovePossibleVersion(best)
		}
	}
	return nil, nil
}

// resolveRoot substitutes the SDK placeholder. Absence of the SDK path
// is an error only when a root actually needs substitution.
func (s RepositoryScanner) resolveRoot(root string) (string, error) {
	if !strings.Contains(root, SDKPlaceholder) {
		return root, nil
	}
	if strings.TrimSpace(s.SDKPath) == "" {
		return "", newConfigurationError(root)
	}
	return filepath.Clean(strings.ReplaceAll(root, SDKPlaceholder, s.SDKPath)), nil
}

// packagingFile returns the path of the first supported packaging
// present in the version directory.
func packagingFile(versionDir string, artifact string, version string) (string, bool) {
	for _, packaging := range types.PackagingTypes {
		path := filepath.Join(versionDir, fmt.Sprintf("%s-%s%s", artifact, version, packaging))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// ManifestPath is where the package manifest of a resolved version
// lives.
func ManifestPath(dep *Dependency) string {
	return filepath.Join(dep.BestVersionPath(), fmt.Sprintf("%s-%s.pom", dep.Artifact, dep.BestVersion()))
}
