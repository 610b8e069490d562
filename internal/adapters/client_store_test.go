package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maven-deps/internal/types"
)

func TestClientStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	adapter := NewClientStoreAdapter()

	store := types.ClientStoreFile{
		Client:       "app",
		SDKPath:      "/opt/sdk",
		Repositories: "${SDK}/extras/m2repository /opt/repo",
		Dependencies: []types.DependencyRecord{
			{GroupID: "com.example", ArtifactID: "widget", Version: "1.2.+", PackageIDs: "extra-android-m2repository"},
			{GroupID: "com.example", ArtifactID: "base", Version: "LATEST", Repositories: "/opt/repo"},
		},
	}
	require.NoError(t, adapter.Save(dir, store))

	loaded, ok, err := adapter.Load(dir, "app")
	require.NoError(t, err)
	require.True(t, ok)

	// The constraint string must survive verbatim, "1.2.+" included.
	ignoreXMLName := cmpopts.IgnoreFields(types.DependencyRecord{}, "XMLName")
	if diff := cmp.Diff(store.Dependencies, loaded.Dependencies, ignoreXMLName); diff != "" {
		t.Fatalf("store did not round-trip (-want +got):\n%s", diff)
	}
	assert.Equal(t, "app", loaded.Client)
	assert.Equal(t, "/opt/sdk", loaded.SDKPath)
	assert.Equal(t, "${SDK}/extras/m2repository /opt/repo", loaded.Repositories)
}

func TestClientStoreLoadMissing(t *testing.T) {
	adapter := NewClientStoreAdapter()
	store, ok, err := adapter.Load(t.TempDir(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "ghost", store.Client)
	assert.Empty(t, store.Dependencies)
}

func TestClientStoreLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.xml"), []byte("not xml at all"), 0644))

	adapter := NewClientStoreAdapter()
	_, _, err := adapter.Load(dir, "app")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestClientStoreListClients(t *testing.T) {
	dir := t.TempDir()
	adapter := NewClientStoreAdapter()
	for _, client := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, adapter.Save(dir, types.ClientStoreFile{Client: client}))
	}
	// Non-store files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	clients, err := adapter.ListClients(dir)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, clients); diff != "" {
		t.Fatalf("unexpected clients (-want +got):\n%s", diff)
	}
}

func TestClientStoreListClientsMissingDir(t *testing.T) {
	adapter := NewClientStoreAdapter()
	clients, err := adapter.ListClients(filepath.Join(t.TempDir(), "nowhere"))
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestClientStoreDelete(t *testing.T) {
	dir := t.TempDir()
	adapter := NewClientStoreAdapter()
	require.NoError(t, adapter.Save(dir, types.ClientStoreFile{Client: "app"}))

	require.NoError(t, adapter.Delete(dir, "app"))
	_, ok, err := adapter.Load(dir, "app")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent store is not an error.
	require.NoError(t, adapter.Delete(dir, "app"))
}
