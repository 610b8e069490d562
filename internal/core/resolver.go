package core

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"maven-deps/internal/ports"
)

// ResolutionEngine computes a globally consistent candidate set for all
// clients' declared dependencies plus their transitive closure. All
// state lives inside one ResolveDependencies call.
type ResolutionEngine struct {
	Scanner  RepositoryScanner
	Manifest ports.ManifestPort
}

func NewResolutionEngine(scanner RepositoryScanner, manifest ports.ManifestPort) ResolutionEngine {
	return ResolutionEngine{
		Scanner:  scanner,
		Manifest: manifest,
	}
}

// resolutionState is the engine-local bookkeeping for a single call: the
// current winner per versionless key, every declaration sharing a key
// (for re-queuing after refinement), the reverse requester map used only
// for diagnostics, and the widen-warning dedupe set.
type resolutionState struct {
	candidates map[string]*Dependency
	declared   map[string][]*Dependency
	requesters map[string][]string
	warned     map[string]struct{}
}

func newResolutionState() *resolutionState {
	return &resolutionState{
		candidates: map[string]*Dependency{},
		declared:   map[string][]*Dependency{},
		requesters: map[string][]string{},
		warned:     map[string]struct{}{},
	}
}

func (s *resolutionState) declare(dep *Dependency, requester string) {
	vk := dep.VersionlessKey()
	for _, existing := range s.declared[vk] {
		if existing == dep {
			s.addRequester(vk, requester)
			return
		}
	}
	s.declared[vk] = append(s.declared[vk], dep)
	s.addRequester(vk, requester)
}

func (s *resolutionState) addRequester(vk string, requester string) {
	if requester == "" {
		return
	}
	for _, existing := range s.requesters[vk] {
		if existing == requester {
			return
		}
	}
	s.requesters[vk] = append(s.requesters[vk], requester)
}

// pass is the worklist being built for the next iteration. Keys already
// queued in the same pass are skipped.
type pass struct {
	entries []*Dependency
	queued  map[string]struct{}
}

func newPass() *pass {
	return &pass{queued: map[string]struct{}{}}
}

func (p *pass) add(dep *Dependency) {
	key := dep.Key()
	if _, ok := p.queued[key]; ok {
		return
	}
	p.queued[key] = struct{}{}
	p.entries = append(p.entries, dep)
}

// ResolveDependencies runs the fixed-point worklist over the union of
// every client's declared dependencies. Each pass classifies entries as
// unseen (scan the repositories), compatible with the current candidate
// (keep, possibly upgrade), or conflicting (refine the open-ended older
// side, else fall back per useLatest). Transitive dependencies read from
// a winner's manifest feed the next pass. The loop ends when a pass
// produces an empty next-worklist: every pass either shrinks the
// unresolved set, narrows an open constraint, or fails.
func (e ResolutionEngine) ResolveDependencies(ctx context.Context, clients map[string][]*Dependency, useLatest bool) (map[string]*Dependency, error) {
	state := newResolutionState()
	worklist := e.seed(clients, state)

	for len(worklist.entries) > 0 {
		next := newPass()
		for _, dep := range worklist.entries {
			if err := e.classify(ctx, dep, state, next, useLatest); err != nil {
				return nil, err
			}
		}
		worklist = next
	}

	log.Ctx(ctx).Debug().Int("artifacts", len(state.candidates)).Msg("resolution converged")
	return state.candidates, nil
}

// seed builds the first worklist from all clients, deduplicating
// concrete keys across clients. Client order is fixed for deterministic
// diagnostics.
func (e ResolutionEngine) seed(clients map[string][]*Dependency, state *resolutionState) *pass {
	names := make([]string, 0, len(clients))
	for name := range clients {
		names = append(names, name)
	}
	sort.Strings(names)

	seeded := newPass()
	for _, name := range names {
		for _, dep := range clients[name] {
			state.declare(dep, name)
			seeded.add(dep)
		}
	}
	return seeded
}

func (e ResolutionEngine) classify(ctx context.Context, dep *Dependency, state *resolutionState, next *pass, useLatest bool) error {
	vk := dep.VersionlessKey()
	state.declare(dep, "")

	candidate, exists := state.candidates[vk]
	if !exists {
		found, err := e.Scanner.FindCandidate(ctx, dep)
		if err != nil {
			return err
		}
		if found == nil {
			return newNoCandidateError(dep, state.requesters[vk])
		}
		state.candidates[vk] = found
		return e.expandTransitives(ctx, found, state, next)
	}

	best := candidate.BestVersion()
	if dep.IsAcceptableVersion(best) {
		// Compatible. Upgrade the winner when this entry already knows
		// a newer version the winner's constraint also accepts.
		if dep.HasPossibleVersions() &&
			CompareVersions(dep.BestVersion(), best) > 0 &&
			candidate.IsAcceptableVersion(dep.BestVersion()) {
			state.candidates[vk] = dep
			return e.expandTransitives(ctx, dep, state, next)
		}
		return nil
	}

	return e.reconcile(ctx, dep, candidate, state, next, useLatest)
}

// reconcile handles a conflicting entry: refine the open-ended older
// side toward the other's version, and when refinement is impossible
// either widen to the newer side (useLatest) or fail.
func (e ResolutionEngine) reconcile(ctx context.Context, dep *Dependency, candidate *Dependency, state *resolutionState, next *pass, useLatest bool) error {
	vk := dep.VersionlessKey()

	if (candidate.Spec.OpenEnded || candidate.Spec.Latest) && !candidate.IsNewer(dep) {
		// The winner was picked under a constraint wider than this
		// entry's. Narrow every open declaration of the library, then
		// re-anchor the candidate on the stricter side so the chosen
		// version satisfies both.
		if e.refineDeclared(state, vk, dep) {
			found, err := e.Scanner.FindCandidate(ctx, dep)
			if err != nil {
				return err
			}
			if found != nil {
				state.candidates[vk] = found
				for _, declared := range state.declared[vk] {
					next.add(declared)
				}
				return e.expandTransitives(ctx, found, state, next)
			}
		}
	} else if dep.Spec.OpenEnded && candidate.IsNewer(dep) {
		if dep.RefineVersionRange(candidate) {
			// Re-validate the narrowed constraint against every
			// declaration of this library on the next pass.
			for _, declared := range state.declared[vk] {
				next.add(declared)
			}
			return nil
		}
	}

	if !useLatest {
		return newConflictError(dep, candidate, state.requesters[vk])
	}

	newer, older := candidate, dep
	if dep.IsNewer(candidate) {
		newer, older = dep, candidate
	}
	if !newer.HasPossibleVersions() {
		found, err := e.Scanner.FindCandidate(ctx, newer)
		if err != nil {
			return err
		}
		if found == nil {
			return newNoCandidateError(newer, state.requesters[vk])
		}
		newer = found
	}
	state.candidates[vk] = newer
	e.warnWidened(ctx, state, vk, newer, older)
	return e.expandTransitives(ctx, newer, state, next)
}

// refineDeclared narrows every open-ended declaration of the library
// not newer than the stricter side. All must refine cleanly, else the
// conflict takes the fallback path.
func (e ResolutionEngine) refineDeclared(state *resolutionState, vk string, stricter *Dependency) bool {
	for _, declared := range state.declared[vk] {
		if declared == stricter || !declared.Spec.OpenEnded || declared.IsNewer(stricter) {
			continue
		}
		if !declared.RefineVersionRange(stricter) {
			return false
		}
	}
	return true
}

// warnWidened emits the constraint-widening diagnostic at most once per
// versionless key, with the full requester chain for traceability.
func (e ResolutionEngine) warnWidened(ctx context.Context, state *resolutionState, vk string, kept *Dependency, dropped *Dependency) {
	if _, done := state.warned[vk]; done {
		return
	}
	state.warned[vk] = struct{}{}
	log.Ctx(ctx).Warn().
		Str("artifact", vk).
		Str("kept", kept.Key()).
		Str("discarded", dropped.Key()).
		Strs("required_by", state.requesters[vk]).
		Msg("version constraint widened to newest requested")
}

// expandTransitives queues the winner's manifest-declared dependencies
// for the next pass. Concrete manifest versions are re-resolved against
// the repositories first, so a declared exact version maps to a version
// actually installed.
func (e ResolutionEngine) expandTransitives(ctx context.Context, winner *Dependency, state *resolutionState, next *pass) error {
	manifest, ok, err := e.Manifest.LoadManifest(ManifestPath(winner))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	for _, record := range manifest.Dependencies {
		transitive := NewDependency(ctx, record.GroupID, record.ArtifactID, record.Version)
		vk := transitive.VersionlessKey()
		if _, alreadyQueued := next.queued[transitive.Key()]; alreadyQueued {
			continue
		}
		if _, haveCandidate := state.candidates[vk]; !haveCandidate {
			found, err := e.Scanner.FindCandidate(ctx, transitive)
			if err != nil {
				return err
			}
			if found != nil {
				transitive = found
			}
		}
		state.declare(transitive, winner.Key())
		next.add(transitive)
	}
	return nil
}
