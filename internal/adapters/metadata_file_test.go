package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>com.example</groupId>
  <artifactId>widget</artifactId>
  <versioning>
    <versions>
      <version>1.0.0</version>
      <version>1.1.0</version>
      <version>2.0.0-rc1</version>
    </versions>
  </versioning>
</metadata>
`

func writeMetadataFixture(t *testing.T, root string, content string) string {
	t.Helper()
	dir := filepath.Join(root, "com", "example", "widget")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "maven-metadata.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMetadata(t *testing.T) {
	root := t.TempDir()
	writeMetadataFixture(t, root, sampleMetadata)

	adapter := NewMetadataFileAdapter()
	meta, ok, err := adapter.LoadMetadata(root, "com.example", "widget")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "com.example", meta.GroupID)
	assert.Equal(t, "widget", meta.ArtifactID)
	if diff := cmp.Diff([]string{"1.0.0", "1.1.0", "2.0.0-rc1"}, meta.Versions); diff != "" {
		t.Fatalf("unexpected versions (-want +got):\n%s", diff)
	}
}

func TestLoadMetadataMissing(t *testing.T) {
	adapter := NewMetadataFileAdapter()
	_, ok, err := adapter.LoadMetadata(t.TempDir(), "com.example", "widget")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadMetadataMalformed(t *testing.T) {
	root := t.TempDir()
	writeMetadataFixture(t, root, "<metadata><versioning>")

	adapter := NewMetadataFileAdapter()
	_, _, err := adapter.LoadMetadata(root, "com.example", "widget")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestLoadMetadataReloadsOnChange(t *testing.T) {
	root := t.TempDir()
	path := writeMetadataFixture(t, root, sampleMetadata)

	adapter := NewMetadataFileAdapter()
	meta, ok, err := adapter.LoadMetadata(root, "com.example", "widget")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, meta.Versions, 3)

	updated := `<metadata>
  <groupId>com.example</groupId>
  <artifactId>widget</artifactId>
  <versioning><versions><version>3.0.0</version></versions></versioning>
</metadata>`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))
	// Force a distinct modification time regardless of fs granularity.
	info, err := os.Stat(path)
	require.NoError(t, err)
	bumped := info.ModTime().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, bumped, bumped))

	meta, ok, err = adapter.LoadMetadata(root, "com.example", "widget")
	require.NoError(t, err)
	require.True(t, ok)
	if diff := cmp.Diff([]string{"3.0.0"}, meta.Versions); diff != "" {
		t.Fatalf("stale cache served (-want +got):\n%s", diff)
	}
}
