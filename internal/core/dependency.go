package core

import (
	"context"
	"fmt"
	"path/filepath"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"maven-deps/internal/shared"
)

// Dependency is one requested artifact together with the mutable
// resolution state discovered for it. Identity is (Group, Artifact); the
// versionless key identifies the library regardless of version while the
// full key names one concrete resolved instance.
type Dependency struct {
	Group    string
	Artifact string

	// Version is the requested constraint string, kept verbatim for
	// persistence round-trips. Spec is its parsed form.
	Version string
	Spec    VersionSpec

	PackageIDs   []string
	Repositories []string

	// RepoPath is the repository root the artifact was found in, bound
	// by the scanner.
	RepoPath string

	possible []string
	removed  map[string]struct{}
}

// NewDependency creates a dependency for the given coordinate and
// constraint string.
func NewDependency(ctx context.Context, group string, artifact string, version string) *Dependency {
	assert.NotEmpty(ctx, group, "dependency group must be set")
	assert.NotEmpty(ctx, artifact, "dependency artifact must be set")
	return &Dependency{
		Group:    group,
		Artifact: artifact,
		Version:  version,
		Spec:     ParseVersionSpec(version),
		removed:  map[string]struct{}{},
	}
}

// VersionlessKey identifies the library irrespective of version.
func (d *Dependency) VersionlessKey() string {
	return d.Group + ":" + d.Artifact
}

// Key identifies one concrete instance: the resolved version when one is
// known, otherwise the requested constraint.
func (d *Dependency) Key() string {
	return fmt.Sprintf("%s:%s:%s", d.Group, d.Artifact, d.ResolvedOrRequested())
}

func (d *Dependency) String() string {
	return d.Key()
}

// ResolvedOrRequested returns the best resolved version when repository
// metadata has been loaded, falling back to the requested constraint.
func (d *Dependency) ResolvedOrRequested() string {
	if best := d.BestVersion(); best != "" {
		return best
	}
	return d.Version
}

// IsAcceptableVersion reports whether v satisfies this dependency's
// constraint.
func (d *Dependency) IsAcceptableVersion(v string) bool {
	return d.Spec.Satisfies(v)
}

// AddVersion records a version discovered in repository metadata. A
// version that does not satisfy the constraint, was previously evicted,
// or is already present is a no-op.
func (d *Dependency) AddVersion(v string) {
	if _, gone := d.removed[v]; gone {
		return
	}
	if !d.IsAcceptableVersion(v) {
		return
	}
	for _, existing := range d.possible {
		if existing == v {
			return
		}
	}
	d.possible = append(d.possible, v)
}

// RemovePossibleVersion evicts a version whose backing file turned out
// to be absent. Evicted versions are never reconsidered for this
// instance, so a later metadata-only match cannot dangle.
func (d *Dependency) RemovePossibleVersion(v string) {
	if d.removed == nil {
		d.removed = map[string]struct{}{}
	}
	d.removed[v] = struct{}{}
	for i, existing := range d.possible {
		if existing == v {
			d.possible = append(d.possible[:i], d.possible[i+1:]...)
			return
		}
	}
}

// HasPossibleVersions reports whether any discovered version remains.
func (d *Dependency) HasPossibleVersions() bool {
	return len(d.possible) > 0
}

// PossibleVersions returns the remaining discovered versions.
func (d *Dependency) PossibleVersions() []string {
	return append([]string(nil), d.possible...)
}

// BestVersion is the maximum possible version still satisfying the
// constraint, or empty when nothing has been discovered.
func (d *Dependency) BestVersion() string {
	best := ""
	for _, v := range d.possible {
		if best == "" || CompareVersions(v, best) > 0 {
			best = v
		}
	}
	return best
}

// BestVersionPath is the directory holding the best version's files,
// implied by RepoPath, group, artifact and BestVersion.
func (d *Dependency) BestVersionPath() string {
	return filepath.Join(d.RepoPath, shared.GroupPath(d.Group), d.Artifact, d.BestVersion())
}

// RefineVersionRange narrows an open-ended constraint to the lower bound
// implied by another, more specific dependency on the same library. The
// bound only ever rises; when raising it would leave no acceptable
// version the refinement fails without mutating state and the caller
// takes the conflict fallback path.
func (d *Dependency) RefineVersionRange(other *Dependency) bool {
	if !d.Spec.OpenEnded {
		return false
	}
	if other == nil || other.Spec.Latest {
		return false
	}
	bound := other.ResolvedOrRequested()
	bound = ParseVersionSpec(bound).Base()
	if bound == "" {
		return false
	}
	if CompareVersions(bound, d.Spec.Base()) <= 0 {
		// Already at least as strict, nothing to raise.
		return true
	}
	var remaining []string
	for _, v := range d.possible {
		if CompareVersions(v, bound) >= 0 {
			remaining = append(remaining, v)
		}
	}
	if len(d.possible) > 0 && len(remaining) == 0 {
		return false
	}
	d.Version = bound + "+"
	d.Spec = ParseVersionSpec(d.Version)
	d.possible = remaining
	return true
}

// IsNewer orders two dependencies on the same library by requested
// version, for conflict tie-breaking and for picking the refinement
// direction. An open-ended constraint compares by its lower bound, so
// "1.0+" is older than an exact "1.0.5" even when its scan already
// found something above it.
func (d *Dependency) IsNewer(other *Dependency) bool {
	return CompareVersions(d.Spec.Base(), other.Spec.Base()) > 0
}

// cloneForScan copies identity and constraint state so one repository
// root's scan cannot pollute another's.
func (d *Dependency) cloneForScan() *Dependency {
	clone := &Dependency{
		Group:        d.Group,
		Artifact:     d.Artifact,
		Version:      d.Version,
		Spec:         d.Spec,
		PackageIDs:   append([]string(nil), d.PackageIDs...),
		Repositories: append([]string(nil), d.Repositories...),
		removed:      map[string]struct{}{},
	}
	for v := range d.removed {
		clone.removed[v] = struct{}{}
	}
	return clone
}
