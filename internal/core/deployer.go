package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"maven-deps/internal/ports"
	"maven-deps/internal/types"
)

// ArtifactDeployer copies resolved artifacts into a destination
// directory, removing stale prior copies and leaving up-to-date ones
// untouched so repeated runs do no work.
type ArtifactDeployer struct{}

func NewArtifactDeployer() ArtifactDeployer {
	return ArtifactDeployer{}
}

// CopyDependencies deploys every candidate into destDir. Existing
// entries of the same artifact at a different version are removed after
// a single confirmation per destination scan (nil confirm consents); a
// denial leaves the old copy in place and suppresses the copy. A
// same-named destination is only overwritten when the source file is
// strictly newer.
func (d ArtifactDeployer) CopyDependencies(ctx context.Context, candidates map[string]*Dependency, destDir string, confirm ports.ConfirmFunc) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create destination directory").
			WithCause(err)
	}

	keys := make([]string, 0, len(candidates))
	for key := range candidates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := d.deployOne(ctx, candidates[key], destDir, confirm); err != nil {
			return err
		}
	}
	return nil
}

func (d ArtifactDeployer) deployOne(ctx context.Context, dep *Dependency, destDir string, confirm ports.ConfirmFunc) error {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan destination directory").
			WithCause(err)
	}

	stale := staleCopies(entries, dep)
	if len(stale) > 0 {
		// One confirmation covers every conflicting entry found in this
		// scan. Denial leaves the old copies and skips the new one.
		if confirm != nil && !confirm(fmt.Sprintf("remove stale copies of %s from %s: %v", dep.VersionlessKey(), destDir, stale)) {
			log.Ctx(ctx).Info().
				Str("artifact", dep.VersionlessKey()).
				Strs("kept", stale).
				Msg("stale copy removal declined, skipping deploy")
			return nil
		}
		for _, name := range stale {
			if err := os.RemoveAll(filepath.Join(destDir, name)); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to remove stale copy").
					WithCause(err)
			}
		}
	}

	srcPath, packaging, found := sourceArtifact(dep)
	if !found {
		return newArtifactGoneError(dep)
	}

	destName := fmt.Sprintf("%s-%s%s", dep.Artifact, dep.BestVersion(), packaging.DeployedSuffix())
	destPath := filepath.Join(destDir, destName)
	if !sourceNewer(srcPath, destPath) {
		log.Ctx(ctx).Debug().Str("artifact", dep.Key()).Msg("destination up to date")
		return nil
	}
	if err := copyArtifactFile(srcPath, destPath); err != nil {
		return err
	}
	log.Ctx(ctx).Info().
		Str("artifact", dep.Key()).
		Str("dest", destPath).
		Msg("artifact deployed")
	return nil
}

// staleCopies lists destination entries holding the same artifact at a
// different version. Matching is hyphen-delimited on the artifact name
// so "base" never matches "basement-1.0.jar", and the version suffix
// must begin with a digit or dot run.
func staleCopies(entries []os.DirEntry, dep *Dependency) []string {
	newKey := dep.Key()
	prefix := dep.Artifact + "-"
	var stale []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		oldVersion := extractVersion(strings.TrimPrefix(name, prefix))
		if oldVersion == "" {
			continue
		}
		oldKey := fmt.Sprintf("%s:%s:%s", dep.Group, dep.Artifact, oldVersion)
		if oldKey == newKey {
			continue
		}
		stale = append(stale, name)
	}
	return stale
}

// extractVersion takes the leading run of digits and dots off a
// destination entry's version suffix, e.g. "1.0.0.jar" -> "1.0.0" and
// "1.0.0" (unpacked form) -> "1.0.0".
func extractVersion(suffix string) string {
	end := 0
	for end < len(suffix) {
		c := suffix[end]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		end++
	}
	return strings.TrimSuffix(suffix[:end], ".")
}

// sourceArtifact locates the packaging file backing the dependency's
// best version, trying each supported extension in order.
func sourceArtifact(dep *Dependency) (string, types.PackagingType, bool) {
	versionDir := dep.BestVersionPath()
	for _, packaging := range types.PackagingTypes {
		path := filepath.Join(versionDir, fmt.Sprintf("%s-%s%s", dep.Artifact, dep.BestVersion(), packaging))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, packaging, true
		}
	}
	return "", "", false
}

// sourceNewer compares write timestamps against the packed destination
// or its unpacked directory form. Only a strictly newer source warrants
// an overwrite.
func sourceNewer(srcPath string, destPath string) bool {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return true
	}
	for _, target := range []string{destPath, strings.TrimSuffix(destPath, filepath.Ext(destPath))} {
		if destInfo, err := os.Stat(target); err == nil {
			return srcInfo.ModTime().After(destInfo.ModTime())
		}
	}
	return true
}

func copyArtifactFile(srcPath string, destPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open source artifact").
			WithCause(err)
	}
	defer srcFile.Close()
	destFile, err := os.Create(destPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create destination artifact").
			WithCause(err)
	}
	defer destFile.Close()
	if _, err := io.Copy(destFile, srcFile); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy artifact").
			WithCause(err)
	}
	return nil
}
