// Package pareto implements pairwise dominance, NSGA-II style non-dominated
// sorting and crowding distance over normalized objective maps.
package pareto

import (
	"context"
	"sort"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
	"github.com/XiaoConstantine/pareto-go/pkg/logging"
)

// Relation is the outcome of a pairwise dominance comparison.
type Relation int

const (
	NonDominated Relation = iota
	Dominates
	DominatedBy
)

// String provides human-readable relation names.
func (r Relation) String() string {
	switch r {
	case Dominates:
		return "dominates"
	case DominatedBy:
		return "dominated_by"
	default:
		return "non_dominated"
	}
}

// DefaultEpsilon is the tolerance used by epsilon-dominance when the caller
// does not supply one.
const DefaultEpsilon = 0.01

// Compare decides the dominance relation between two candidates over their
// normalized objectives. The objective set is the union of keys present in
// either candidate; missing keys default to 0.0. A candidate without
// normalized objectives never dominates anything: the comparison degrades to
// NonDominated with a warning instead of failing.
func Compare(ctx context.Context, a, b core.Candidate) Relation {
	if !a.IsNormalized() || !b.IsNormalized() {
		logging.GetLogger().Warn(ctx, "comparing candidates without normalized objectives: %s vs %s", a.ID, b.ID)
		return NonDominated
	}

	aBetter := false
	bBetter := false
	for _, name := range objectiveUnion(a.NormalizedObjectives, b.NormalizedObjectives) {
		av := a.NormalizedObjectives[name]
		bv := b.NormalizedObjectives[name]
		if av > bv {
			aBetter = true
		}
		if bv > av {
			bBetter = true
		}
	}

	switch {
	case aBetter && !bBetter:
		return Dominates
	case bBetter && !aBetter:
		return DominatedBy
	default:
		return NonDominated
	}
}

// EpsilonDominates reports whether a dominates b under an epsilon relaxation:
// a is within epsilon of or better than b in every objective, and strictly
// better than b by more than epsilon in at least one. Useful when objectives
// carry measurement noise; the strict Compare has no tolerance.
func EpsilonDominates(ctx context.Context, a, b core.Candidate, epsilon float64) bool {
	if !a.IsNormalized() || !b.IsNormalized() {
		logging.GetLogger().Warn(ctx, "epsilon-comparing candidates without normalized objectives: %s vs %s", a.ID, b.ID)
		return false
	}

	strictlyBetter := false
	for _, name := range objectiveUnion(a.NormalizedObjectives, b.NormalizedObjectives) {
		av := a.NormalizedObjectives[name]
		bv := b.NormalizedObjectives[name]
		if av < bv-epsilon {
			return false
		}
		if av > bv+epsilon {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// objectiveUnion returns the sorted union of objective names in both maps.
// Sorting keeps comparisons and their logs deterministic.
func objectiveUnion(a, b core.ObjectiveMap) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for name := range a {
		seen[name] = struct{}{}
	}
	for name := range b {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
