// Package pareto provides the multi-objective evaluation and frontier
// management engine used to rank evolved prompt candidates along competing
// performance dimensions without collapsing them into a single score.
//
// The engine is split into small, composable packages:
//
//   - Core: shared value types (Candidate, TrialResult, ObjectiveSpec,
//     ReferencePoint) used across the engine.
//
//   - Evaluation: turns per-trial raw measurements into named objective
//     values (accuracy, latency, cost, robustness, plus custom objectives)
//     and min-max normalizes them against population statistics so that
//     every objective is maximize-oriented in [0, 1].
//
//   - Pareto: pairwise dominance, NSGA-II fast non-dominated sorting into
//     ranked fronts, crowding distance for diversity preservation, and an
//     epsilon-relaxed dominance test for noisy objectives.
//
//   - Frontier: the bounded, always non-dominated solution set for a run,
//     with insertion, eviction, crowding-based trimming, a fitness-ranked
//     archive and optional SQLite persistence for warm-starting.
//
//   - Hypervolume: the dominated-hypervolume quality indicator with exact
//     closed forms for one and two objectives and recursive slicing for
//     three or more, per-solution contributions, automatic reference point
//     selection and cross-generation improvement ratios.
//
// All algorithms are pure functions over immutable values; a Frontier is
// updated functionally and owned by the optimization loop that created it.
package pareto
