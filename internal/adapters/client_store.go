package adapters

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"maven-deps/internal/ports"
	"maven-deps/internal/types"
)

const storeFileExt = ".xml"

// ClientStoreAdapter persists each client's declared dependency set as
// one XML file per client under a settings directory. The version field
// keeps the original constraint string so reloads reconstruct the
// declarations exactly.
type ClientStoreAdapter struct{}

func NewClientStoreAdapter() ClientStoreAdapter {
	return ClientStoreAdapter{}
}

func (a ClientStoreAdapter) Load(settingsDir string, client string) (types.ClientStoreFile, bool, error) {
	path := storePath(settingsDir, client)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ClientStoreFile{Client: client}, false, nil
		}
		return types.ClientStoreFile{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read client store").
			WithCause(err)
	}
	var store types.ClientStoreFile
	if err := xml.Unmarshal(content, &store); err != nil {
		return types.ClientStoreFile{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid client store format").
			WithCause(err)
	}
	if store.Client == "" {
		store.Client = client
	}
	return store, true, nil
}

func (a ClientStoreAdapter) Save(settingsDir string, store types.ClientStoreFile) error {
	if err := os.MkdirAll(settingsDir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create settings directory").
			WithCause(err)
	}
	content, err := xml.MarshalIndent(store, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode client store").
			WithCause(err)
	}
	path := storePath(settingsDir, store.Client)
	if err := os.WriteFile(path, append([]byte(xml.Header), content...), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write client store").
			WithCause(err)
	}
	return nil
}

func (a ClientStoreAdapter) Delete(settingsDir string, client string) error {
	err := os.Remove(storePath(settingsDir, client))
	if err != nil && !os.IsNotExist(err) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to delete client store").
			WithCause(err)
	}
	return nil
}

func (a ClientStoreAdapter) ListClients(settingsDir string) ([]string, error) {
	entries, err := os.ReadDir(settingsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan settings directory").
			WithCause(err)
	}
	var clients []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), storeFileExt) {
			continue
		}
		clients = append(clients, strings.TrimSuffix(entry.Name(), storeFileExt))
	}
	sort.Strings(clients)
	return clients, nil
}

func storePath(settingsDir string, client string) string {
	return filepath.Join(settingsDir, client+storeFileExt)
}

var _ ports.ClientStorePort = ClientStoreAdapter{}
