package hypervolume

import (
	"context"
	"math"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
	"github.com/XiaoConstantine/pareto-go/pkg/errors"
	"github.com/XiaoConstantine/pareto-go/pkg/logging"
)

// Contribution computes each solution's marginal hypervolume: the loss in
// total hypervolume if that solution were removed, floored at zero. The map
// is advisory and used for ranking; on any calculation error every id maps
// to zero instead of propagating the failure.
func Contribution(ctx context.Context, solutions []core.Candidate, reference core.ReferencePoint, objectives []string) map[string]float64 {
	contributions := make(map[string]float64, len(solutions))
	for _, solution := range solutions {
		contributions[solution.ID] = 0.0
	}
	if len(solutions) == 0 {
		return contributions
	}

	total, err := Calculate(ctx, solutions, reference, objectives)
	if err != nil {
		logging.GetLogger().Warn(ctx, "hypervolume contribution degraded to zero: %v", err)
		return contributions
	}

	// Leave-one-out calculations are independent; fan out across cores.
	results := make([]float64, len(solutions))
	failed := make([]bool, len(solutions))
	p := pool.New().WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for i := range solutions {
		i := i
		p.Go(func() {
			rest := make([]core.Candidate, 0, len(solutions)-1)
			rest = append(rest, solutions[:i]...)
			rest = append(rest, solutions[i+1:]...)

			without, err := Calculate(ctx, rest, reference, objectives)
			if err != nil {
				failed[i] = true
				return
			}
			results[i] = math.Max(0, total-without)
		})
	}
	p.Wait()

	for i, solution := range solutions {
		if failed[i] {
			// contributions has not been written yet, so it is still all zero.
			logging.GetLogger().Warn(ctx, "hypervolume contribution degraded to zero: leave-one-out failed for %s", solution.ID)
			return contributions
		}
	}
	for i, solution := range solutions {
		contributions[solution.ID] = results[i]
	}
	return contributions
}

// AutoReferencePoint derives a reference point from population statistics:
// per objective, the minimum normalized value observed across candidates,
// minus margin, floored at zero. An empty candidate set yields an all-zero
// reference.
func AutoReferencePoint(candidates []core.Candidate, objectives []string, margin float64) core.ReferencePoint {
	reference := make(core.ReferencePoint, len(objectives))
	for _, name := range objectives {
		reference[name] = 0.0
	}

	mins := make(map[string]float64, len(objectives))
	seen := false
	for _, candidate := range candidates {
		if !candidate.IsNormalized() {
			continue
		}
		for _, name := range objectives {
			value := candidate.NormalizedObjectives[name]
			if !seen {
				mins[name] = value
				continue
			}
			if value < mins[name] {
				mins[name] = value
			}
		}
		seen = true
	}
	if !seen {
		return reference
	}

	for _, name := range objectives {
		reference[name] = math.Max(0, mins[name]-margin)
	}
	return reference
}

// Improvement measures frontier progress across generations as the ratio of
// current to previous hypervolume. A previous hypervolume of zero yields
// +Inf when the current one is positive and 1.0 when both are zero.
func Improvement(ctx context.Context, current, previous []core.Candidate, reference core.ReferencePoint, objectives []string) (ratio, currentHV float64, err error) {
	currentHV, err = Calculate(ctx, current, reference, objectives)
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.CalculationFailed, "current frontier hypervolume")
	}
	previousHV, err := Calculate(ctx, previous, reference, objectives)
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.CalculationFailed, "previous frontier hypervolume")
	}

	switch {
	case previousHV == 0 && currentHV > 0:
		return math.Inf(1), currentHV, nil
	case previousHV == 0:
		return 1.0, currentHV, nil
	default:
		return currentHV / previousHV, currentHV, nil
	}
}
