package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"maven-deps/internal/adapters"
	"maven-deps/internal/core"
	"maven-deps/internal/shared"
	"maven-deps/internal/types"
)

// Resolve loads every client's persisted declarations from the settings
// directory, runs the resolution engine, and optionally writes the YAML
// lock output.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	clients, candidates, err := s.resolve(ctx, req)
	if err != nil {
		return ResolveResult{}, err
	}

	result := ResolveResult{
		Clients:   clients,
		Artifacts: map[string]ResolvedArtifact{},
	}
	for vk, dep := range candidates {
		result.Artifacts[vk] = ResolvedArtifact{
			Group:      dep.Group,
			Artifact:   dep.Artifact,
			Version:    dep.BestVersion(),
			Repository: dep.RepoPath,
			Path:       dep.BestVersionPath(),
		}
	}

	if strings.TrimSpace(req.OutputDir) != "" {
		lock := types.LockFile{
			Clients:   clients,
			UseLatest: req.UseLatest,
			Artifacts: map[string]types.LockEntry{},
		}
		for vk, artifact := range result.Artifacts {
			lock.Artifacts[vk] = types.LockEntry{
				Version:    artifact.Version,
				Repository: artifact.Repository,
				Path:       artifact.Path,
			}
		}
		writer := adapters.NewLockFileAdapter(req.OutputDir)
		if err := writer.WriteLock(lock); err != nil {
			return ResolveResult{}, err
		}
	}

	return result, nil
}

// resolve is the shared resolution path behind Resolve and Copy.
func (s Service) resolve(ctx context.Context, req ResolveRequest) (int, map[string]*core.Dependency, error) {
	settingsDir := strings.TrimSpace(req.SettingsDir)
	if settingsDir == "" {
		return 0, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("settings directory is required")
	}

	names, err := s.Store.ListClients(settingsDir)
	if err != nil {
		return 0, nil, err
	}
	if len(names) == 0 {
		return 0, nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no registered clients in settings directory")
	}

	sdkPath := strings.TrimSpace(req.SDKPath)
	declared := map[string][]*core.Dependency{}
	for _, name := range names {
		store, _, err := s.Store.Load(settingsDir, name)
		if err != nil {
			return 0, nil, err
		}
		deps, err := dependenciesFromStore(ctx, store, req.KeepMissing)
		if err != nil {
			return 0, nil, err
		}
		// Repositories registered by the client scope to its own
		// declarations; a registered SDK path backs an unset request.
		if clientRepos := shared.SplitList(store.Repositories); len(clientRepos) > 0 {
			for _, dep := range deps {
				dep.Repositories = append(dep.Repositories, clientRepos...)
			}
		}
		if sdkPath == "" {
			sdkPath = strings.TrimSpace(store.SDKPath)
		}
		declared[name] = deps
	}

	scanner := core.NewRepositoryScanner(s.Metadata, sdkPath, req.Repositories)
	engine := core.NewResolutionEngine(scanner, s.Manifest)
	candidates, err := engine.ResolveDependencies(ctx, declared, req.UseLatest)
	if err != nil {
		return 0, nil, err
	}
	return len(names), candidates, nil
}

// dependenciesFromStore rebuilds a client's declared dependencies from
// its persisted records. Malformed records are skipped with a warning
// when keepMissing applies, otherwise they abort the load.
func dependenciesFromStore(ctx context.Context, store types.ClientStoreFile, keepMissing bool) ([]*core.Dependency, error) {
	var deps []*core.Dependency
	for _, record := range store.Dependencies {
		if strings.TrimSpace(record.GroupID) == "" ||
			strings.TrimSpace(record.ArtifactID) == "" ||
			strings.TrimSpace(record.Version) == "" {
			if keepMissing {
				log.Ctx(ctx).Warn().
					Str("client", store.Client).
					Str("group", record.GroupID).
					Str("artifact", record.ArtifactID).
					Msg("skipping malformed dependency record")
				continue
			}
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("malformed dependency record in client store " + store.Client)
		}
		dep := core.NewDependency(ctx, record.GroupID, record.ArtifactID, record.Version)
		dep.PackageIDs = shared.SplitList(record.PackageIDs)
		dep.Repositories = shared.SplitList(record.Repositories)
		deps = append(deps, dep)
	}
	return deps, nil
}
