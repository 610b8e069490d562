package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Error message prefixes the CLI keys its exit codes on.
const (
	msgSDKPathRequired  = "sdk path required"
	msgNoCandidate      = "no candidate found"
	msgVersionConflict  = "irreconcilable version conflict"
	msgArtifactFileGone = "artifact file missing"
)

func newConfigurationError(root string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: repository %q needs the SDK path; pass --sdk-root or set MAVEN_DEPS_SDK_ROOT", msgSDKPathRequired, root))
}

func newNoCandidateError(dep *Dependency, requesters []string) error {
	msg := fmt.Sprintf("%s for %s", msgNoCandidate, dep)
	if len(requesters) > 0 {
		msg = fmt.Sprintf("%s (required by %v)", msg, requesters)
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg)
}

func newConflictError(a *Dependency, b *Dependency, requesters []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s vs %s (required by %v)", msgVersionConflict, a, b, requesters))
}

func newArtifactGoneError(dep *Dependency) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s under %s", msgArtifactFileGone, dep, dep.BestVersionPath()))
}
