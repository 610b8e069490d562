package adapters

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"maven-deps/internal/ports"
	"maven-deps/internal/shared"
	"maven-deps/internal/types"
)

const metadataFileName = "maven-metadata.xml"

// MetadataFileAdapter reads repository version descriptors from the
// standard layout <root>/<group-as-path>/<artifact>/maven-metadata.xml.
type MetadataFileAdapter struct {
	mu    sync.Mutex
	cache map[string]metadataCacheEntry
}

type metadataCacheEntry struct {
	modTime  time.Time
	metadata types.RepoMetadata
}

func NewMetadataFileAdapter() *MetadataFileAdapter {
	return &MetadataFileAdapter{cache: map[string]metadataCacheEntry{}}
}

func (a *MetadataFileAdapter) LoadMetadata(root string, group string, artifact string) (types.RepoMetadata, bool, error) {
	path := filepath.Join(root, shared.GroupPath(group), artifact, metadataFileName)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.RepoMetadata{}, false, nil
		}
		return types.RepoMetadata{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat repository metadata").
			WithCause(err)
	}

	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		a.mu.Unlock()
		return entry.metadata, true, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return types.RepoMetadata{}, false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read repository metadata").
			WithCause(err)
	}
	var metadata types.RepoMetadata
	if err := xml.Unmarshal(content, &metadata); err != nil {
		return types.RepoMetadata{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse repository metadata").
			WithCause(err)
	}

	a.mu.Lock()
	a.cache[path] = metadataCacheEntry{modTime: info.ModTime(), metadata: metadata}
	a.mu.Unlock()
	return metadata, true, nil
}

var _ ports.MetadataPort = (*MetadataFileAdapter)(nil)
