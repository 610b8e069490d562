package types

import "encoding/xml"

// RepoMetadata mirrors the maven-metadata.xml descriptor found under
// <root>/<group-as-path>/<artifact>/. Only the pieces the scanner needs
// are mapped.
type RepoMetadata struct {
	XMLName    xml.Name `xml:"metadata"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Versions   []string `xml:"versioning>versions>version"`
}

// ManifestDependency is one transitive dependency record declared by a
// resolved artifact's package manifest (.pom).
type ManifestDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// ManifestFile is the package manifest of one published artifact
// version.
type ManifestFile struct {
	XMLName      xml.Name             `xml:"project"`
	GroupID      string               `xml:"groupId"`
	ArtifactID   string               `xml:"artifactId"`
	Version      string               `xml:"version"`
	Dependencies []ManifestDependency `xml:"dependencies>dependency"`
}
