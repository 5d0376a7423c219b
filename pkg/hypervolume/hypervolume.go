// Package hypervolume computes the dominated-hypervolume quality indicator
// for sets of normalized solutions: a single scalar capturing both how close
// a frontier is to the ideal point and how well it spreads across objectives.
package hypervolume

import (
	"context"
	"math"
	"sort"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
	"github.com/XiaoConstantine/pareto-go/pkg/errors"
	"github.com/XiaoConstantine/pareto-go/pkg/logging"
)

// DefaultMargin is the gap subtracted below the observed minimum when
// choosing a reference point automatically.
const DefaultMargin = 0.1

// Calculate computes the hypervolume dominated by the solution set relative
// to the reference point. Candidates without normalized objectives are
// filtered out with a log line rather than failing the batch; an empty
// filtered set yields 0.0. The result is rounded to 6 decimal places.
//
// Dispatch is dimensional: a closed form for one objective, a sweep for two,
// and recursive slicing for three or more.
func Calculate(ctx context.Context, solutions []core.Candidate, reference core.ReferencePoint, objectives []string) (float64, error) {
	if len(objectives) == 0 {
		return 0, errors.New(errors.ValidationFailed, "hypervolume requires at least one objective")
	}
	if err := reference.Validate(objectives); err != nil {
		return 0, err
	}

	points := collectPoints(ctx, solutions, objectives)
	if len(points) == 0 {
		return 0.0, nil
	}

	var hv float64
	switch len(objectives) {
	case 1:
		hv = oneDimensional(points, 0, reference[objectives[0]])
	case 2:
		hv = twoDimensional(points, reference[objectives[0]], reference[objectives[1]])
	default:
		refs := make([]float64, len(objectives))
		for i, name := range objectives {
			refs[i] = reference[name]
		}
		hv = slice(points, refs, 0)
	}

	return roundTo(hv, 6), nil
}

// point is a candidate's normalized values laid out in objective order, so
// the recursion can slice index ranges instead of rebuilding maps.
type point []float64

func collectPoints(ctx context.Context, solutions []core.Candidate, objectives []string) []point {
	logger := logging.GetLogger()
	points := make([]point, 0, len(solutions))
	for _, solution := range solutions {
		if !solution.IsNormalized() {
			logger.Debug(ctx, "skipping candidate %s in hypervolume: no normalized objectives", solution.ID)
			continue
		}
		p := make(point, len(objectives))
		for i, name := range objectives {
			p[i] = solution.NormalizedObjectives[name]
		}
		points = append(points, p)
	}
	return points
}

// oneDimensional is the closed form: the best value's gap to the reference,
// floored at zero.
func oneDimensional(points []point, dim int, reference float64) float64 {
	best := math.Inf(-1)
	for _, p := range points {
		if p[dim] > best {
			best = p[dim]
		}
	}
	return math.Max(0, best-reference)
}

// twoDimensional sweeps points in descending first-objective order, adding
// the rectangle each point contributes beyond the running second-objective
// maximum. Points that do not raise the maximum are dominated in this
// projection and contribute nothing.
func twoDimensional(points []point, ref1, ref2 float64) float64 {
	sorted := make([]point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i][0] > sorted[j][0]
	})

	total := 0.0
	runningMax := ref2
	for _, p := range sorted {
		if p[1] > runningMax {
			total += (p[0] - ref1) * (p[1] - runningMax)
			runningMax = p[1]
		}
	}
	return total
}

// slice implements WFG-style recursive decomposition from the given
// dimension onward. Points are sorted descending on the current objective;
// the sweep walks from the reference value upward, and each gap's volume is
// the gap width times the recursive volume of every point reaching at least
// that far on the current objective.
func slice(points []point, refs []float64, dim int) float64 {
	if dim == len(refs)-1 {
		return oneDimensional(points, dim, refs[dim])
	}

	sorted := make([]point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i][dim] > sorted[j][dim]
	})

	total := 0.0
	prev := refs[dim]
	for i := len(sorted) - 1; i >= 0; i-- {
		v := sorted[i][dim]
		if v <= prev {
			continue
		}
		// sorted[:i+1] is exactly the set reaching at least v on this
		// objective.
		width := v - prev
		total += width * slice(sorted[:i+1], refs, dim+1)
		prev = v
	}
	return total
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
