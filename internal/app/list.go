package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"maven-deps/internal/shared"
)

// List reports the declared (unresolved) dependencies persisted for one
// client, or for every client when none is named.
func (s Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	settingsDir := strings.TrimSpace(req.SettingsDir)
	if settingsDir == "" {
		return ListResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("settings directory is required")
	}

	names := []string{strings.TrimSpace(req.Client)}
	if names[0] == "" {
		listed, err := s.Store.ListClients(settingsDir)
		if err != nil {
			return ListResult{}, err
		}
		names = listed
	}

	var result ListResult
	for _, name := range names {
		store, found, err := s.Store.Load(settingsDir, name)
		if err != nil {
			return ListResult{}, err
		}
		if !found {
			return ListResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("unknown client " + name)
		}
		for _, record := range store.Dependencies {
			result.Entries = append(result.Entries, ListEntry{
				Client:       name,
				Group:        record.GroupID,
				Artifact:     record.ArtifactID,
				Version:      record.Version,
				PackageIDs:   shared.SplitList(record.PackageIDs),
				Repositories: shared.SplitList(record.Repositories),
			})
		}
	}
	return result, nil
}
