package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"maven-deps/internal/core"
	"maven-deps/internal/ports"
)

// Copy resolves the full closure and deploys the winning artifacts into
// the destination directory. confirm may be nil, which consents to
// removing stale prior copies.
func (s Service) Copy(ctx context.Context, req CopyRequest, confirm ports.ConfirmFunc) (CopyResult, error) {
	destDir := strings.TrimSpace(req.DestDir)
	if destDir == "" {
		return CopyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("destination directory is required")
	}

	clients, candidates, err := s.resolve(ctx, req.ResolveRequest)
	if err != nil {
		return CopyResult{}, err
	}

	deployer := core.NewArtifactDeployer()
	if err := deployer.CopyDependencies(ctx, candidates, destDir, confirm); err != nil {
		return CopyResult{}, err
	}

	resolved := ResolveResult{
		Clients:   clients,
		Artifacts: map[string]ResolvedArtifact{},
	}
	for vk, dep := range candidates {
		resolved.Artifacts[vk] = ResolvedArtifact{
			Group:      dep.Group,
			Artifact:   dep.Artifact,
			Version:    dep.BestVersion(),
			Repository: dep.RepoPath,
			Path:       dep.BestVersionPath(),
		}
	}
	return CopyResult{Resolved: resolved, DestDir: destDir}, nil
}
