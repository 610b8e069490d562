package adapters

import (
	"encoding/xml"
	"os"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"maven-deps/internal/ports"
	"maven-deps/internal/types"
)

// ManifestXMLAdapter parses package manifests (.pom files) for
// transitive dependency expansion.
type ManifestXMLAdapter struct {
	mu    sync.Mutex
	cache map[string]manifestCacheEntry
}

type manifestCacheEntry struct {
	modTime  time.Time
	manifest types.ManifestFile
}

func NewManifestXMLAdapter() *ManifestXMLAdapter {
	return &ManifestXMLAdapter{cache: map[string]manifestCacheEntry{}}
}

func (a *ManifestXMLAdapter) LoadManifest(path string) (types.ManifestFile, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		// No manifest means no transitive dependencies.
		if os.IsNotExist(err) {
			return types.ManifestFile{}, false, nil
		}
		return types.ManifestFile{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat package manifest").
			WithCause(err)
	}

	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		a.mu.Unlock()
		return entry.manifest, true, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return types.ManifestFile{}, false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package manifest").
			WithCause(err)
	}
	var manifest types.ManifestFile
	if err := xml.Unmarshal(content, &manifest); err != nil {
		return types.ManifestFile{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package manifest").
			WithCause(err)
	}

	a.mu.Lock()
	a.cache[path] = manifestCacheEntry{modTime: info.ModTime(), manifest: manifest}
	a.mu.Unlock()
	return manifest, true, nil
}

var _ ports.ManifestPort = (*ManifestXMLAdapter)(nil)
