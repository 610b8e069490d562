package app

import (
	"maven-deps/internal/adapters"
	"maven-deps/internal/ports"
)

// Service wires the filesystem adapters behind the client API. All
// operations are synchronous and assume exclusive single-process access
// to the settings store and destination directory.
type Service struct {
	Store    ports.ClientStorePort
	Metadata ports.MetadataPort
	Manifest ports.ManifestPort
}

func NewService() Service {
	return Service{
		Store:    adapters.NewClientStoreAdapter(),
		Metadata: adapters.NewMetadataFileAdapter(),
		Manifest: adapters.NewManifestXMLAdapter(),
	}
}
