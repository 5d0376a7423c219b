package pareto

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
)

// parallelThreshold is the population size above which pairwise dominance is
// fanned out across goroutines. Below it the goroutine overhead outweighs
// the O(M*N^2) comparison work.
const parallelThreshold = 256

// Sort performs NSGA-II fast non-dominated sorting. The returned map ranks
// candidates into fronts keyed from 1 upward; front 1 is globally
// non-dominated. Candidates keep their input order within a front. An empty
// input yields an empty map.
//
// Complexity is O(M*N^2) for M objectives and N candidates; for populations
// above parallelThreshold the per-candidate comparison rows run in parallel.
func Sort(ctx context.Context, candidates []core.Candidate) map[int][]core.Candidate {
	fronts := make(map[int][]core.Candidate)
	n := len(candidates)
	if n == 0 {
		return fronts
	}

	// dominationCount[i] = number of candidates dominating i.
	// dominated[i] = indices of candidates that i dominates.
	dominationCount := make([]int, n)
	dominated := make([][]int, n)

	computeRow := func(i int) {
		for j := 0; j < n; j++ {
			if i == j || candidates[i].ID == candidates[j].ID {
				continue
			}
			switch Compare(ctx, candidates[i], candidates[j]) {
			case Dominates:
				dominated[i] = append(dominated[i], j)
			case DominatedBy:
				dominationCount[i]++
			}
		}
	}

	if n > parallelThreshold {
		// Each goroutine writes only its own row; no locking needed.
		p := pool.New().WithMaxGoroutines(runtime.GOMAXPROCS(0))
		for i := 0; i < n; i++ {
			i := i
			p.Go(func() {
				computeRow(i)
			})
		}
		p.Wait()
	} else {
		for i := 0; i < n; i++ {
			computeRow(i)
		}
	}

	// Peel fronts: front 1 is everyone with domination count 0; removing a
	// front's credit exposes the next front.
	remaining := dominationCount
	current := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if remaining[i] == 0 {
			current = append(current, i)
		}
	}

	for frontNumber := 1; len(current) > 0; frontNumber++ {
		members := make([]core.Candidate, 0, len(current))
		for _, i := range current {
			members = append(members, candidates[i])
		}
		fronts[frontNumber] = members

		next := make([]int, 0)
		for _, i := range current {
			for _, j := range dominated[i] {
				remaining[j]--
				if remaining[j] == 0 {
					next = append(next, j)
				}
			}
		}
		current = next
	}

	return fronts
}
