// Package frontier maintains the bounded set of currently non-dominated
// candidates for an optimization run, together with a larger historical
// archive of high-fitness candidates used for warm-starting.
package frontier

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
	"github.com/XiaoConstantine/pareto-go/pkg/errors"
	"github.com/XiaoConstantine/pareto-go/pkg/hypervolume"
	"github.com/XiaoConstantine/pareto-go/pkg/logging"
	"github.com/XiaoConstantine/pareto-go/pkg/pareto"
)

// Default bounds for the live frontier and the archive.
const (
	DefaultMaxSize        = 100
	DefaultMaxArchiveSize = 500
)

// Options bounds the frontier and its archive.
type Options struct {
	MaxSize        int `json:"max_size"`
	MaxArchiveSize int `json:"max_archive_size"`
}

// DefaultOptions returns the default frontier bounds.
func DefaultOptions() Options {
	return Options{
		MaxSize:        DefaultMaxSize,
		MaxArchiveSize: DefaultMaxArchiveSize,
	}
}

// Frontier is a value type: every mutating operation returns a new Frontier
// and leaves the receiver untouched. A Frontier is owned by the optimization
// loop that created it; the package takes no locks.
type Frontier struct {
	Spec      core.ObjectiveSpec  `json:"spec"`
	Reference core.ReferencePoint `json:"reference"`
	Options   Options             `json:"options"`

	// Solutions are pairwise non-dominated at all times. The invariant is
	// restored before any mutating operation returns.
	Solutions []core.Candidate `json:"solutions"`

	// Fronts ranks solution ids by non-domination level (1 = best). Rebuilt
	// on demand by UpdateFronts, not maintained incrementally.
	Fronts map[int][]string `json:"fronts,omitempty"`

	// Archive is a bounded history of high-fitness candidates, independent
	// of current frontier membership and never required to be non-dominated.
	Archive []core.Candidate `json:"archive,omitempty"`

	Hypervolume float64   `json:"hypervolume"`
	Generation  int       `json:"generation"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates an empty frontier for a run. Construction-time configuration
// errors are hard failures: a mismatched objective/direction/reference domain
// indicates a misconfigured run and is never silently defaulted. Zero-valued
// bounds mean "use the default"; only negative bounds are rejected.
func New(spec core.ObjectiveSpec, reference core.ReferencePoint, opts Options) (Frontier, error) {
	if err := spec.Validate(); err != nil {
		return Frontier{}, err
	}
	if err := reference.Validate(spec.Objectives); err != nil {
		return Frontier{}, err
	}
	if opts.MaxSize == 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.MaxArchiveSize == 0 {
		opts.MaxArchiveSize = DefaultMaxArchiveSize
	}
	if opts.MaxSize < 0 {
		return Frontier{}, errors.WithFields(
			errors.New(errors.ValidationFailed, "max_size must not be negative"),
			errors.Fields{"max_size": opts.MaxSize})
	}
	if opts.MaxArchiveSize < 0 {
		return Frontier{}, errors.WithFields(
			errors.New(errors.ValidationFailed, "max_archive_size must not be negative"),
			errors.Fields{"max_archive_size": opts.MaxArchiveSize})
	}

	now := time.Now()
	return Frontier{
		Spec:      spec,
		Reference: reference.Clone(),
		Options:   opts,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddSolution inserts a candidate, keeping the frontier non-dominated.
// A candidate dominated by an existing member is rejected and the frontier
// comes back unchanged; that is a normal outcome, not an error. Members
// dominated by the new candidate are evicted, and a member with the same id
// is replaced rather than duplicated. If the result exceeds the frontier
// bound, trimming runs before returning.
func (f Frontier) AddSolution(ctx context.Context, candidate core.Candidate) (Frontier, error) {
	logger := logging.GetLogger()

	if !candidate.IsNormalized() {
		return f, errors.WithFields(
			errors.New(errors.MissingNormalizedObjectives, "candidate has no normalized objectives"),
			errors.Fields{"candidate": candidate.ID})
	}

	// Solution ids are unique; an already present id means the candidate is
	// being updated, so its old entry takes no part in the dominance checks.
	replaced := false
	current := make([]core.Candidate, 0, len(f.Solutions))
	for _, member := range f.Solutions {
		if member.ID == candidate.ID {
			replaced = true
			continue
		}
		current = append(current, member)
	}

	for _, member := range current {
		if pareto.Compare(ctx, member, candidate) == pareto.Dominates {
			logger.Debug(ctx, "candidate %s rejected: dominated by frontier member %s", candidate.ID, member.ID)
			return f, nil
		}
	}
	if replaced {
		logger.Debug(ctx, "frontier member %s replaced by re-added candidate", candidate.ID)
	}

	kept := make([]core.Candidate, 0, len(current)+1)
	for _, member := range current {
		if pareto.Compare(ctx, candidate, member) == pareto.Dominates {
			logger.Debug(ctx, "frontier member %s evicted: dominated by %s", member.ID, candidate.ID)
			continue
		}
		kept = append(kept, member)
	}
	kept = append(kept, candidate)

	next := f
	next.Solutions = kept
	if candidate.Generation > next.Generation {
		next.Generation = candidate.Generation
	}
	next.UpdatedAt = time.Now()

	if len(next.Solutions) > next.Options.MaxSize {
		next = next.Trim(next.Options.MaxSize)
	}
	next.Hypervolume = next.currentHypervolume(ctx)

	return next, nil
}

// RemoveSolution removes the candidate with the given id.
func (f Frontier) RemoveSolution(ctx context.Context, id string) (Frontier, error) {
	kept := make([]core.Candidate, 0, len(f.Solutions))
	found := false
	for _, member := range f.Solutions {
		if member.ID == id {
			found = true
			continue
		}
		kept = append(kept, member)
	}
	if !found {
		return f, errors.WithFields(
			errors.New(errors.ResourceNotFound, "solution not on frontier"),
			errors.Fields{"candidate": id})
	}

	next := f
	next.Solutions = kept
	next.UpdatedAt = time.Now()
	next.Hypervolume = next.currentHypervolume(ctx)
	return next, nil
}

// Trim bounds the solution set to maxSize using crowding distance over the
// whole set treated as a single front. Boundary members (infinite distance)
// sort first and are never evicted ahead of interior ones. A frontier at or
// under the bound comes back unchanged.
func (f Frontier) Trim(maxSize int) Frontier {
	if maxSize <= 0 || len(f.Solutions) <= maxSize {
		return f
	}

	distances := pareto.CrowdingDistance(f.Solutions)

	ranked := make([]core.Candidate, len(f.Solutions))
	copy(ranked, f.Solutions)
	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := distances[ranked[i].ID], distances[ranked[j].ID]
		if di != dj {
			return di > dj
		}
		// Equal distances (including Inf vs Inf) tie-break by id for
		// deterministic trims.
		return ranked[i].ID < ranked[j].ID
	})

	next := f
	next.Solutions = ranked[:maxSize]
	next.UpdatedAt = time.Now()
	return next
}

// ArchiveSolution records a candidate in the bounded history. Already
// archived ids are a no-op. Over the bound, only the highest-fitness members
// survive, ties broken by id.
func (f Frontier) ArchiveSolution(candidate core.Candidate) Frontier {
	for _, archived := range f.Archive {
		if archived.ID == candidate.ID {
			return f
		}
	}

	archive := make([]core.Candidate, 0, len(f.Archive)+1)
	archive = append(archive, candidate)
	archive = append(archive, f.Archive...)

	if len(archive) > f.Options.MaxArchiveSize {
		sort.SliceStable(archive, func(i, j int) bool {
			if archive[i].Fitness != archive[j].Fitness {
				return archive[i].Fitness > archive[j].Fitness
			}
			return archive[i].ID < archive[j].ID
		})
		archive = archive[:f.Options.MaxArchiveSize]
	}

	next := f
	next.Archive = archive
	next.UpdatedAt = time.Now()
	return next
}

// UpdateFronts recomputes the non-domination ranking over the current
// solution set. An empty solution set yields an empty fronts map.
func (f Frontier) UpdateFronts(ctx context.Context) Frontier {
	ranked := pareto.Sort(ctx, f.Solutions)

	fronts := make(map[int][]string, len(ranked))
	for number, members := range ranked {
		ids := make([]string, len(members))
		for i, member := range members {
			ids[i] = member.ID
		}
		fronts[number] = ids
	}

	next := f
	next.Fronts = fronts
	next.UpdatedAt = time.Now()
	return next
}

// GetParetoOptimal returns a copy of the current solution set. The live
// frontier is non-dominated by construction, so every member is Pareto
// optimal.
func (f Frontier) GetParetoOptimal() []core.Candidate {
	out := make([]core.Candidate, len(f.Solutions))
	copy(out, f.Solutions)
	return out
}

// GetFront returns the candidates ranked in front n by the last UpdateFronts
// call, or nil when the front does not exist.
func (f Frontier) GetFront(n int) []core.Candidate {
	ids, ok := f.Fronts[n]
	if !ok {
		return nil
	}

	byID := make(map[string]core.Candidate, len(f.Solutions))
	for _, member := range f.Solutions {
		byID[member.ID] = member
	}

	out := make([]core.Candidate, 0, len(ids))
	for _, id := range ids {
		if member, ok := byID[id]; ok {
			out = append(out, member)
		}
	}
	return out
}

// Stats is a snapshot summary used by callers for convergence logging.
type Stats struct {
	Size        int     `json:"size"`
	ArchiveSize int     `json:"archive_size"`
	Hypervolume float64 `json:"hypervolume"`
	Generation  int     `json:"generation"`
	BestFitness float64 `json:"best_fitness"`
}

// Stats summarizes the frontier for progress reporting.
func (f Frontier) Stats() Stats {
	best := math.Inf(-1)
	for _, member := range f.Solutions {
		if member.Fitness > best {
			best = member.Fitness
		}
	}
	if len(f.Solutions) == 0 {
		best = 0
	}
	return Stats{
		Size:        len(f.Solutions),
		ArchiveSize: len(f.Archive),
		Hypervolume: f.Hypervolume,
		Generation:  f.Generation,
		BestFitness: best,
	}
}

// currentHypervolume refreshes the bookkeeping indicator. A calculation
// failure is advisory: the previous value is kept and the error logged, so a
// single odd candidate never aborts a frontier update.
func (f Frontier) currentHypervolume(ctx context.Context) float64 {
	hv, err := hypervolume.Calculate(ctx, f.Solutions, f.Reference, f.Spec.Objectives)
	if err != nil {
		logging.GetLogger().Warn(ctx, "hypervolume refresh failed, keeping previous value: %v", err)
		return f.Hypervolume
	}
	return hv
}
