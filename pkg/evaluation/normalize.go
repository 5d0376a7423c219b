package evaluation

import (
	"github.com/XiaoConstantine/pareto-go/pkg/core"
)

// Stats holds the observed min/max for one objective across a population.
type Stats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PopulationStats reduces a candidate list to per-objective min/max over raw
// objective values. Objectives absent from every candidate produce no entry.
func PopulationStats(candidates []core.Candidate) map[string]Stats {
	stats := make(map[string]Stats)
	for _, candidate := range candidates {
		for name, value := range candidate.RawObjectives {
			s, seen := stats[name]
			if !seen {
				stats[name] = Stats{Min: value, Max: value}
				continue
			}
			if value < s.Min {
				s.Min = value
			}
			if value > s.Max {
				s.Max = value
			}
			stats[name] = s
		}
	}
	return stats
}

// Normalize min-max scales each raw objective value into [0, 1] and orients
// it so that larger is better. A degenerate objective (max == min across the
// population) normalizes to exactly 0.5 regardless of direction.
func Normalize(raw core.ObjectiveMap, stats map[string]Stats, directions map[string]core.Direction) core.ObjectiveMap {
	normalized := make(core.ObjectiveMap, len(raw))
	for name, value := range raw {
		s, ok := stats[name]
		if !ok || s.Max == s.Min {
			normalized[name] = 0.5
			continue
		}

		scaled := (value - s.Min) / (s.Max - s.Min)
		if directions[name] == core.Minimize {
			scaled = 1.0 - scaled
		}
		normalized[name] = scaled
	}
	return normalized
}

// NormalizeCandidates computes population statistics once and returns a new
// slice of candidates carrying normalized objectives. Inputs are not mutated.
func NormalizeCandidates(candidates []core.Candidate, spec core.ObjectiveSpec) []core.Candidate {
	stats := PopulationStats(candidates)
	out := make([]core.Candidate, len(candidates))
	for i, candidate := range candidates {
		out[i] = candidate.WithNormalized(Normalize(candidate.RawObjectives, stats, spec.Directions))
	}
	return out
}
