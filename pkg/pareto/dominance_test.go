package pareto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
)

func normalizedCandidate(id string, objectives core.ObjectiveMap) core.Candidate {
	return core.NewCandidate(id, nil, 0).WithNormalized(objectives)
}

func TestCompare(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		a        core.ObjectiveMap
		b        core.ObjectiveMap
		expected Relation
	}{
		{
			name:     "a dominates on all objectives",
			a:        core.ObjectiveMap{"accuracy": 0.9, "latency": 0.8},
			b:        core.ObjectiveMap{"accuracy": 0.5, "latency": 0.4},
			expected: Dominates,
		},
		{
			name:     "a dominates with one tie",
			a:        core.ObjectiveMap{"accuracy": 0.9, "latency": 0.5},
			b:        core.ObjectiveMap{"accuracy": 0.5, "latency": 0.5},
			expected: Dominates,
		},
		{
			name:     "b dominates",
			a:        core.ObjectiveMap{"accuracy": 0.2, "latency": 0.3},
			b:        core.ObjectiveMap{"accuracy": 0.4, "latency": 0.3},
			expected: DominatedBy,
		},
		{
			name:     "trade-off is non-dominated",
			a:        core.ObjectiveMap{"accuracy": 0.9, "latency": 0.2},
			b:        core.ObjectiveMap{"accuracy": 0.3, "latency": 0.8},
			expected: NonDominated,
		},
		{
			name:     "all equal is non-dominated",
			a:        core.ObjectiveMap{"accuracy": 0.5, "latency": 0.5},
			b:        core.ObjectiveMap{"accuracy": 0.5, "latency": 0.5},
			expected: NonDominated,
		},
		{
			name:     "missing key defaults to zero",
			a:        core.ObjectiveMap{"accuracy": 0.5, "latency": 0.1},
			b:        core.ObjectiveMap{"accuracy": 0.5},
			expected: Dominates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := normalizedCandidate("a", tt.a)
			b := normalizedCandidate("b", tt.b)
			assert.Equal(t, tt.expected, Compare(ctx, a, b))

			// Symmetry: swapping the arguments flips the relation.
			flipped := Compare(ctx, b, a)
			switch tt.expected {
			case Dominates:
				assert.Equal(t, DominatedBy, flipped)
			case DominatedBy:
				assert.Equal(t, Dominates, flipped)
			default:
				assert.Equal(t, NonDominated, flipped)
			}
		})
	}
}

func TestCompareIsIrreflexive(t *testing.T) {
	a := normalizedCandidate("a", core.ObjectiveMap{"accuracy": 0.7, "latency": 0.3})
	assert.Equal(t, NonDominated, Compare(context.Background(), a, a))
}

func TestCompareIsTransitive(t *testing.T) {
	ctx := context.Background()
	best := normalizedCandidate("best", core.ObjectiveMap{"accuracy": 0.9, "latency": 0.9})
	mid := normalizedCandidate("mid", core.ObjectiveMap{"accuracy": 0.6, "latency": 0.6})
	worst := normalizedCandidate("worst", core.ObjectiveMap{"accuracy": 0.3, "latency": 0.3})

	assert.Equal(t, Dominates, Compare(ctx, best, mid))
	assert.Equal(t, Dominates, Compare(ctx, mid, worst))
	assert.Equal(t, Dominates, Compare(ctx, best, worst))
}

func TestCompareWithoutNormalizationFailsOpen(t *testing.T) {
	ctx := context.Background()
	raw := core.NewCandidate("raw", core.ObjectiveMap{"accuracy": 0.9}, 0)
	normalized := normalizedCandidate("norm", core.ObjectiveMap{"accuracy": 0.1})

	assert.Equal(t, NonDominated, Compare(ctx, raw, normalized))
	assert.Equal(t, NonDominated, Compare(ctx, normalized, raw))
}

func TestEpsilonDominates(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		a        core.ObjectiveMap
		b        core.ObjectiveMap
		epsilon  float64
		expected bool
	}{
		{
			name:     "clearly better in one, equal elsewhere",
			a:        core.ObjectiveMap{"accuracy": 0.8, "latency": 0.5},
			b:        core.ObjectiveMap{"accuracy": 0.5, "latency": 0.5},
			epsilon:  DefaultEpsilon,
			expected: true,
		},
		{
			name:     "slightly worse within tolerance, much better elsewhere",
			a:        core.ObjectiveMap{"accuracy": 0.495, "latency": 0.9},
			b:        core.ObjectiveMap{"accuracy": 0.5, "latency": 0.5},
			epsilon:  DefaultEpsilon,
			expected: true,
		},
		{
			name:     "worse beyond tolerance",
			a:        core.ObjectiveMap{"accuracy": 0.4, "latency": 0.9},
			b:        core.ObjectiveMap{"accuracy": 0.5, "latency": 0.5},
			epsilon:  DefaultEpsilon,
			expected: false,
		},
		{
			name:     "improvement inside epsilon does not count as strict",
			a:        core.ObjectiveMap{"accuracy": 0.505, "latency": 0.5},
			b:        core.ObjectiveMap{"accuracy": 0.5, "latency": 0.5},
			epsilon:  DefaultEpsilon,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := normalizedCandidate("a", tt.a)
			b := normalizedCandidate("b", tt.b)
			assert.Equal(t, tt.expected, EpsilonDominates(ctx, a, b, tt.epsilon))
		})
	}
}

func TestEpsilonDominatesWithoutNormalization(t *testing.T) {
	raw := core.NewCandidate("raw", core.ObjectiveMap{"accuracy": 0.9}, 0)
	normalized := normalizedCandidate("norm", core.ObjectiveMap{"accuracy": 0.1})
	assert.False(t, EpsilonDominates(context.Background(), raw, normalized, DefaultEpsilon))
}
