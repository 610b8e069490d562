package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"maven-deps/internal/shared"
	"maven-deps/internal/types"
)

// Register loads (or creates) the client's persisted dependency set and
// returns a handle the mutation operations work against.
func (s Service) Register(ctx context.Context, req RegisterRequest) (*ClientHandle, error) {
	client := strings.TrimSpace(req.Client)
	if client == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("client name is required")
	}
	settingsDir := strings.TrimSpace(req.SettingsDir)
	if settingsDir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("settings directory is required")
	}

	store, existed, err := s.Store.Load(settingsDir, client)
	if err != nil {
		return nil, err
	}

	// The registered environment is persisted alongside the declared
	// set, so a later resolve run sees the client's SDK path and extra
	// repositories without re-registration. Absent request values keep
	// whatever was stored.
	changed := !existed
	if sdkPath := strings.TrimSpace(req.SDKPath); sdkPath != "" && sdkPath != store.SDKPath {
		store.SDKPath = sdkPath
		changed = true
	}
	if repositories := shared.JoinList(req.Repositories); repositories != "" && repositories != store.Repositories {
		store.Repositories = repositories
		changed = true
	}
	if changed {
		if err := s.Store.Save(settingsDir, store); err != nil {
			return nil, err
		}
		log.Ctx(ctx).Debug().Str("client", client).Msg("client registered")
	}

	return &ClientHandle{
		Client:      client,
		SettingsDir: settingsDir,
		store:       store,
	}, nil
}

// DependOn records a dependency declaration for the client and persists
// it. A declaration with the same concrete key replaces the previous
// one.
func (s Service) DependOn(ctx context.Context, handle *ClientHandle, req DependOnRequest) error {
	if handle == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("client handle is required")
	}
	group := strings.TrimSpace(req.Group)
	artifact := strings.TrimSpace(req.Artifact)
	version := strings.TrimSpace(req.Version)
	if group == "" || artifact == "" || version == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependency requires group, artifact and version")
	}

	record := types.DependencyRecord{
		GroupID:      group,
		ArtifactID:   artifact,
		Version:      version,
		PackageIDs:   shared.JoinList(req.PackageIDs),
		Repositories: shared.JoinList(req.Repositories),
	}

	key := fmt.Sprintf("%s:%s:%s", group, artifact, version)
	replaced := false
	for i, existing := range handle.store.Dependencies {
		if fmt.Sprintf("%s:%s:%s", existing.GroupID, existing.ArtifactID, existing.Version) == key {
			handle.store.Dependencies[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		handle.store.Dependencies = append(handle.store.Dependencies, record)
	}

	if err := s.Store.Save(handle.SettingsDir, handle.store); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().
		Str("client", handle.Client).
		Str("dependency", key).
		Msg("dependency recorded")
	return nil
}

// ClearDependencies erases the client's declared set and its persisted
// file.
func (s Service) ClearDependencies(ctx context.Context, handle *ClientHandle) error {
	if handle == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("client handle is required")
	}
	handle.store.Dependencies = nil
	if err := s.Store.Delete(handle.SettingsDir, handle.Client); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("client", handle.Client).Msg("dependencies cleared")
	return nil
}
