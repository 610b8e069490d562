package ports

import "maven-deps/internal/types"

type LockWriterPort interface {
	WriteLock(lock types.LockFile) error
}

// ConfirmFunc asks the caller whether stale copies may be removed from a
// destination directory. A nil ConfirmFunc is treated as implicit
// consent.
type ConfirmFunc func(message string) bool
