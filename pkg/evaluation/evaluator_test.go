package evaluation

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
	"github.com/XiaoConstantine/pareto-go/pkg/errors"
)

func testTrials() []core.TrialResult {
	return []core.TrialResult{
		{Success: true, DurationMs: 1200, PromptTokens: 100, CompletionTokens: 50, QualityScore: 0.9},
		{Success: true, DurationMs: 800, PromptTokens: 120, CompletionTokens: 30, QualityScore: 0.8},
		{Success: false, DurationMs: 1000, PromptTokens: 80, CompletionTokens: 20, QualityScore: 0.4},
		{Success: true, DurationMs: 600, PromptTokens: 90, CompletionTokens: 10, QualityScore: 0.7},
	}
}

func TestEvaluateBuiltinObjectives(t *testing.T) {
	evaluator := NewEvaluator(DefaultEvaluatorConfig())
	ctx := context.Background()

	objectives, err := evaluator.Evaluate(ctx, testTrials(), []string{
		ObjectiveAccuracy, ObjectiveLatency, ObjectiveCost, ObjectiveRobustness,
	})
	require.NoError(t, err)

	t.Run("accuracy", func(t *testing.T) {
		assert.InDelta(t, 0.75, objectives[ObjectiveAccuracy], 1e-9)
	})

	t.Run("latency", func(t *testing.T) {
		// Mean of 1200, 800, 1000, 600 ms is 900 ms.
		assert.InDelta(t, 0.9, objectives[ObjectiveLatency], 1e-9)
	})

	t.Run("cost", func(t *testing.T) {
		// 500 total tokens at $0.002 per 1k tokens.
		assert.InDelta(t, 0.001, objectives[ObjectiveCost], 1e-9)
	})

	t.Run("robustness", func(t *testing.T) {
		scores := []float64{0.9, 0.8, 0.4, 0.7}
		mean := 0.0
		for _, s := range scores {
			mean += s
		}
		mean /= float64(len(scores))
		variance := 0.0
		for _, s := range scores {
			variance += (s - mean) * (s - mean)
		}
		variance /= float64(len(scores))
		assert.InDelta(t, math.Exp(-variance), objectives[ObjectiveRobustness], 1e-9)
	})
}

func TestEvaluateLatencyRounding(t *testing.T) {
	evaluator := NewEvaluator(DefaultEvaluatorConfig())
	trials := []core.TrialResult{
		{DurationMs: 333},
		{DurationMs: 334},
		{DurationMs: 332},
	}

	objectives, err := evaluator.Evaluate(context.Background(), trials, []string{ObjectiveLatency})
	require.NoError(t, err)
	// 333ms mean rounds to 4 decimals in seconds.
	assert.InDelta(t, 0.333, objectives[ObjectiveLatency], 1e-12)
}

func TestEvaluateSingleTrialRobustness(t *testing.T) {
	evaluator := NewEvaluator(DefaultEvaluatorConfig())
	trials := []core.TrialResult{{Success: true, DurationMs: 100, QualityScore: 0.5}}

	objectives, err := evaluator.Evaluate(context.Background(), trials, []string{ObjectiveRobustness})
	require.NoError(t, err)
	assert.Equal(t, 1.0, objectives[ObjectiveRobustness])
}

func TestEvaluateEmptyTrials(t *testing.T) {
	evaluator := NewEvaluator(DefaultEvaluatorConfig())

	_, err := evaluator.Evaluate(context.Background(), nil, []string{ObjectiveAccuracy})
	require.Error(t, err)
	assert.Equal(t, errors.NoResults, errors.Code(err))
}

func TestEvaluateInvalidTrial(t *testing.T) {
	evaluator := NewEvaluator(DefaultEvaluatorConfig())
	trials := []core.TrialResult{{DurationMs: -5}}

	_, err := evaluator.Evaluate(context.Background(), trials, []string{ObjectiveLatency})
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.Code(err))
}

func TestEvaluateUnknownObjectiveDefaultsToZero(t *testing.T) {
	evaluator := NewEvaluator(DefaultEvaluatorConfig())

	objectives, err := evaluator.Evaluate(context.Background(), testTrials(), []string{"novelty"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, objectives["novelty"])
}

func TestEvaluateCustomObjective(t *testing.T) {
	evaluator := NewEvaluator(DefaultEvaluatorConfig())
	evaluator.RegisterObjective("trial_count", func(trials []core.TrialResult) float64 {
		return float64(len(trials))
	})

	objectives, err := evaluator.Evaluate(context.Background(), testTrials(), []string{"trial_count"})
	require.NoError(t, err)
	assert.Equal(t, 4.0, objectives["trial_count"])
}

func TestCustomObjectiveShadowsBuiltin(t *testing.T) {
	evaluator := NewEvaluator(DefaultEvaluatorConfig())
	evaluator.RegisterObjective(ObjectiveAccuracy, func(trials []core.TrialResult) float64 {
		return 42.0
	})

	objectives, err := evaluator.Evaluate(context.Background(), testTrials(), []string{ObjectiveAccuracy})
	require.NoError(t, err)
	assert.Equal(t, 42.0, objectives[ObjectiveAccuracy])
}
