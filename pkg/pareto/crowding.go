package pareto

import (
	"math"
	"sort"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
)

// CrowdingDistance computes the NSGA-II crowding distance for every member
// of a front. Boundary members (minimum or maximum in any objective) receive
// +Inf so that later trimming never evicts them; a front of size <= 2 is all
// boundary. Interior members accumulate, per objective, the normalized gap
// between their neighbors; objectives with zero range across the front are
// skipped since identical values carry no diversity information.
func CrowdingDistance(front []core.Candidate) map[string]float64 {
	distances := make(map[string]float64, len(front))

	if len(front) <= 2 {
		for _, candidate := range front {
			distances[candidate.ID] = math.Inf(1)
		}
		return distances
	}

	for _, candidate := range front {
		distances[candidate.ID] = 0.0
	}

	for _, objective := range frontObjectives(front) {
		sorted := make([]core.Candidate, len(front))
		copy(sorted, front)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].NormalizedObjectives[objective] < sorted[j].NormalizedObjectives[objective]
		})

		distances[sorted[0].ID] = math.Inf(1)
		distances[sorted[len(sorted)-1].ID] = math.Inf(1)

		minVal := sorted[0].NormalizedObjectives[objective]
		maxVal := sorted[len(sorted)-1].NormalizedObjectives[objective]
		objRange := maxVal - minVal
		if objRange == 0 {
			continue
		}

		for i := 1; i < len(sorted)-1; i++ {
			// Inf from an earlier objective stays Inf: adding a finite gap
			// to +Inf is still +Inf.
			prev := sorted[i-1].NormalizedObjectives[objective]
			next := sorted[i+1].NormalizedObjectives[objective]
			distances[sorted[i].ID] += (next - prev) / objRange
		}
	}

	return distances
}

// frontObjectives returns the sorted union of objective names across the
// front's normalized maps.
func frontObjectives(front []core.Candidate) []string {
	seen := make(map[string]struct{})
	for _, candidate := range front {
		for name := range candidate.NormalizedObjectives {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
