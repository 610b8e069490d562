package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maven-deps/internal/app"
	"maven-deps/internal/shared"
)

// The full flow: register two clients, declare overlapping constraints
// plus an artifact with a transitive manifest, resolve, and deploy into
// a destination directory twice to check the second run is a no-op.
func TestResolveAndCopyIntegration(t *testing.T) {
	sdk := t.TempDir()
	repo := filepath.Join(sdk, "extras", "m2repository")
	writeArtifact(t, repo, "com.example", "widget", "1.0.2", "")
	writeArtifact(t, repo, "com.example", "widget", "1.0.5", "")
	writeArtifact(t, repo, "com.example", "widget", "1.0.7", "")
	writeArtifact(t, repo, "com.example", "toolkit", "2.0.0", manifestWithDependency("com.example", "toolkit", "2.0.0", "com.example", "base", "1.0+"))
	writeArtifact(t, repo, "com.example", "base", "1.1.0", "")

	service := app.NewService()
	settingsDir := t.TempDir()

	appHandle, err := service.Register(t.Context(), app.RegisterRequest{Client: "app", SettingsDir: settingsDir})
	require.NoError(t, err)
	require.NoError(t, service.DependOn(t.Context(), appHandle, app.DependOnRequest{
		Group: "com.example", Artifact: "widget", Version: "1.0+",
	}))
	require.NoError(t, service.DependOn(t.Context(), appHandle, app.DependOnRequest{
		Group: "com.example", Artifact: "toolkit", Version: "2.0.0",
	}))

	libHandle, err := service.Register(t.Context(), app.RegisterRequest{Client: "lib", SettingsDir: settingsDir})
	require.NoError(t, err)
	require.NoError(t, service.DependOn(t.Context(), libHandle, app.DependOnRequest{
		Group: "com.example", Artifact: "widget", Version: "1.0.5",
	}))

	request := app.ResolveRequest{
		SettingsDir:  settingsDir,
		SDKPath:      sdk,
		Repositories: []string{"${SDK}/extras/m2repository"},
	}

	result, err := service.Resolve(t.Context(), request)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Clients)
	require.Len(t, result.Artifacts, 3)
	assert.Equal(t, "1.0.5", result.Artifacts["com.example:widget"].Version)
	assert.Equal(t, "2.0.0", result.Artifacts["com.example:toolkit"].Version)
	assert.Equal(t, "1.1.0", result.Artifacts["com.example:base"].Version)

	destDir := filepath.Join(t.TempDir(), "libs")
	_, err = service.Copy(t.Context(), app.CopyRequest{ResolveRequest: request, DestDir: destDir}, nil)
	require.NoError(t, err)
	for _, name := range []string{"widget-1.0.5.jar", "toolkit-2.0.0.jar", "base-1.1.0.jar"} {
		assert.FileExists(t, filepath.Join(destDir, name))
	}

	deployed, err := os.Stat(filepath.Join(destDir, "widget-1.0.5.jar"))
	require.NoError(t, err)

	confirmCalls := 0
	confirm := func(string) bool { confirmCalls++; return true }
	_, err = service.Copy(t.Context(), app.CopyRequest{ResolveRequest: request, DestDir: destDir}, confirm)
	require.NoError(t, err)

	again, err := os.Stat(filepath.Join(destDir, "widget-1.0.5.jar"))
	require.NoError(t, err)
	assert.True(t, deployed.ModTime().Equal(again.ModTime()), "repeated copy must not rewrite")
	assert.Equal(t, 0, confirmCalls)
}

func writeArtifact(t *testing.T, repo string, group string, artifact string, version string, manifest string) {
	t.Helper()
	base := filepath.Join(repo, shared.GroupPath(group), artifact)
	dir := filepath.Join(base, version)
	require.NoError(t, os.MkdirAll(dir, 0755))

	jar := filepath.Join(dir, fmt.Sprintf("%s-%s.jar", artifact, version))
	require.NoError(t, os.WriteFile(jar, []byte(artifact+" "+version), 0644))
	if manifest != "" {
		pom := filepath.Join(dir, fmt.Sprintf("%s-%s.pom", artifact, version))
		require.NoError(t, os.WriteFile(pom, []byte(manifest), 0644))
	}

	appendMetadataVersion(t, base, group, artifact, version)
}

func appendMetadataVersion(t *testing.T, base string, group string, artifact string, version string) {
	t.Helper()
	path := filepath.Join(base, "maven-metadata.xml")
	versions := []string{version}
	if content, err := os.ReadFile(path); err == nil {
		versions = append(parseVersions(string(content)), version)
	}

	metadata := fmt.Sprintf("<metadata>\n  <groupId>%s</groupId>\n  <artifactId>%s</artifactId>\n  <versioning>\n    <versions>\n", group, artifact)
	for _, v := range versions {
		metadata += fmt.Sprintf("      <version>%s</version>\n", v)
	}
	metadata += "    </versions>\n  </versioning>\n</metadata>\n"
	require.NoError(t, os.WriteFile(path, []byte(metadata), 0644))
}

func parseVersions(content string) []string {
	var versions []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "<version>") && strings.HasSuffix(line, "</version>") {
			versions = append(versions, strings.TrimSuffix(strings.TrimPrefix(line, "<version>"), "</version>"))
		}
	}
	return versions
}

func manifestWithDependency(group string, artifact string, version string, depGroup string, depArtifact string, depVersion string) string {
	return fmt.Sprintf(`<project>
  <groupId>%s</groupId>
  <artifactId>%s</artifactId>
  <version>%s</version>
  <dependencies>
    <dependency>
      <groupId>%s</groupId>
      <artifactId>%s</artifactId>
      <version>%s</version>
    </dependency>
  </dependencies>
</project>`, group, artifact, version, depGroup, depArtifact, depVersion)
}
