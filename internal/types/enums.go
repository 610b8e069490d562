package types

// PackagingType is the container format an artifact is distributed in.
// The value doubles as the filename suffix of the packaged artifact.
type PackagingType string

const (
	PackagingTypeAar     PackagingType = ".aar"
	PackagingTypeJar     PackagingType = ".jar"
	PackagingTypeSources PackagingType = "-sources.jar"
)

// PackagingTypes lists the supported packagings in lookup order: a
// library archive wins over a plain archive, sources are the last
// resort.
var PackagingTypes = []PackagingType{
	PackagingTypeAar,
	PackagingTypeJar,
	PackagingTypeSources,
}

// DeployedSuffix is the suffix the packaging materializes under in a
// destination directory. Source-only archives are consumed as plain
// archives.
func (p PackagingType) DeployedSuffix() string {
	if p == PackagingTypeSources {
		return string(PackagingTypeJar)
	}
	return string(p)
}
