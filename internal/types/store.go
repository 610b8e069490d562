package types

import "encoding/xml"

// DependencyRecord is one persisted <dependency> element in a client's
// store file. Version holds the original constraint string verbatim, not
// the resolved version, so constraints round-trip exactly between runs.
type DependencyRecord struct {
	XMLName      xml.Name `xml:"dependency"`
	GroupID      string   `xml:"groupId"`
	ArtifactID   string   `xml:"artifactId"`
	Version      string   `xml:"version"`
	PackageIDs   string   `xml:"packageIds,omitempty"`
	Repositories string   `xml:"repositories,omitempty"`
}

// ClientStoreFile is the on-disk schema of a per-client dependency set,
// one file per client keyed by client name. SDKPath and Repositories
// carry the environment the client registered with, so a later resolve
// run picks them up without re-registration.
type ClientStoreFile struct {
	XMLName      xml.Name           `xml:"dependencies"`
	Client       string             `xml:"client,attr"`
	SDKPath      string             `xml:"sdkPath,attr,omitempty"`
	Repositories string             `xml:"repositories,attr,omitempty"`
	Dependencies []DependencyRecord `xml:"dependency"`
}
