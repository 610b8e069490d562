package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"maven-deps/internal/ports"
	"maven-deps/internal/types"
)

const lockFileName = "maven-deps.lock.yaml"

// LockFileAdapter writes the resolved candidate set as a YAML lock file
// for stable diffs between runs.
type LockFileAdapter struct {
	Dir string
}

func NewLockFileAdapter(dir string) LockFileAdapter {
	return LockFileAdapter{Dir: dir}
}

func (a LockFileAdapter) WriteLock(lock types.LockFile) error {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	content, err := yaml.Marshal(lock)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode lock file").
			WithCause(err)
	}
	path := filepath.Join(a.Dir, lockFileName)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write lock file").
			WithCause(err)
	}
	return nil
}

var _ ports.LockWriterPort = LockFileAdapter{}
