package logging

import "context"

type contextKey string

const (
	runIDKey      contextKey = "pareto_run_id"
	generationKey contextKey = "pareto_generation"
)

// WithRunID attaches an optimization run identifier to the context so every
// log entry written under it can be correlated.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID extracts the run identifier from the context, if present.
func GetRunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}

// WithGeneration attaches the current generation counter to the context.
func WithGeneration(ctx context.Context, generation int) context.Context {
	return context.WithValue(ctx, generationKey, generation)
}

// GetGeneration extracts the generation counter from the context, if present.
func GetGeneration(ctx context.Context) (int, bool) {
	g, ok := ctx.Value(generationKey).(int)
	return g, ok
}
