// Package evaluation turns raw per-trial measurements into named objective
// values and normalizes them against population statistics so that every
// objective lives in [0, 1] with larger always better.
package evaluation

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
	"github.com/XiaoConstantine/pareto-go/pkg/errors"
	"github.com/XiaoConstantine/pareto-go/pkg/logging"
)

// Built-in objective names.
const (
	ObjectiveAccuracy   = "accuracy"
	ObjectiveLatency    = "latency"
	ObjectiveCost       = "cost"
	ObjectiveRobustness = "robustness"
)

// ObjectiveFunc computes a custom objective value from trial results.
type ObjectiveFunc func(trials []core.TrialResult) float64

// EvaluatorConfig contains configuration options for the objective evaluator.
type EvaluatorConfig struct {
	// Price per 1,000 tokens used by the cost objective, in dollars.
	CostPerThousandTokens float64 `json:"cost_per_thousand_tokens"`
}

// DefaultEvaluatorConfig returns the default evaluator configuration.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		CostPerThousandTokens: 0.002,
	}
}

// Evaluator computes objective maps from trial results. Custom objectives can
// be registered alongside the built-ins; unknown requested names degrade to
// 0.0 with a warning rather than failing the whole evaluation.
type Evaluator struct {
	config EvaluatorConfig
	custom map[string]ObjectiveFunc
}

// NewEvaluator creates an evaluator with the given configuration.
func NewEvaluator(config EvaluatorConfig) *Evaluator {
	return &Evaluator{
		config: config,
		custom: make(map[string]ObjectiveFunc),
	}
}

// RegisterObjective adds a custom objective function under the given name.
// A custom function shadows a built-in of the same name.
func (e *Evaluator) RegisterObjective(name string, fn ObjectiveFunc) {
	e.custom[name] = fn
}

// Evaluate computes the requested objectives over the trial results.
// Returns NoResults for an empty trial list and InvalidInput for trials
// carrying negative durations or token counts.
func (e *Evaluator) Evaluate(ctx context.Context, trials []core.TrialResult, requested []string) (core.ObjectiveMap, error) {
	logger := logging.GetLogger()

	if len(trials) == 0 {
		return nil, errors.New(errors.NoResults, "no trial results to evaluate")
	}
	for i, trial := range trials {
		if trial.DurationMs < 0 || trial.PromptTokens < 0 || trial.CompletionTokens < 0 {
			return nil, errors.WithFields(
				errors.New(errors.InvalidInput, "trial result has negative measurement"),
				errors.Fields{"trial": i})
		}
	}

	objectives := make(core.ObjectiveMap, len(requested))
	for _, name := range requested {
		if fn, ok := e.custom[name]; ok {
			objectives[name] = fn(trials)
			continue
		}

		switch name {
		case ObjectiveAccuracy:
			objectives[name] = accuracy(trials)
		case ObjectiveLatency:
			objectives[name] = meanLatencySeconds(trials)
		case ObjectiveCost:
			objectives[name] = e.totalCost(trials)
		case ObjectiveRobustness:
			objectives[name] = robustness(qualityScores(trials))
		default:
			logger.Warn(ctx, "unknown objective %q requested, defaulting to 0.0", name)
			objectives[name] = 0.0
		}
	}

	return objectives, nil
}

// accuracy is the fraction of trials flagged successful.
func accuracy(trials []core.TrialResult) float64 {
	successes := 0
	for _, trial := range trials {
		if trial.Success {
			successes++
		}
	}
	return float64(successes) / float64(len(trials))
}

// meanLatencySeconds is the mean trial duration converted from milliseconds
// to seconds, rounded to 4 decimals.
func meanLatencySeconds(trials []core.TrialResult) float64 {
	durations := make([]float64, len(trials))
	for i, trial := range trials {
		durations[i] = trial.DurationMs
	}
	return roundTo(stat.Mean(durations, nil)/1000.0, 4)
}

// totalCost prices the combined token usage across all trials.
func (e *Evaluator) totalCost(trials []core.TrialResult) float64 {
	totalTokens := 0
	for _, trial := range trials {
		totalTokens += trial.TotalTokens()
	}
	return float64(totalTokens) * e.config.CostPerThousandTokens / 1000.0
}

func qualityScores(trials []core.TrialResult) []float64 {
	scores := make([]float64, len(trials))
	for i, trial := range trials {
		scores[i] = trial.QualityScore
	}
	return scores
}

// robustness maps the population variance of quality scores through exp(-v):
// perfectly consistent scores yield 1.0, high variance decays toward 0.
// A single score is perfectly consistent; no scores at all yield 0.0.
func robustness(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	if len(scores) == 1 {
		return 1.0
	}
	return math.Exp(-stat.PopVariance(scores, nil))
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
