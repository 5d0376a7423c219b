package core

// TrialResult is one raw measurement of a candidate against one test case.
// The evaluation harness produces these; the objective evaluator aggregates
// them into an ObjectiveMap.
type TrialResult struct {
	Success          bool    `json:"success"`
	DurationMs       float64 `json:"duration_ms"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	QualityScore     float64 `json:"quality_score"`
}

// TotalTokens returns the combined prompt and completion token count.
func (t TrialResult) TotalTokens() int {
	return t.PromptTokens + t.CompletionTokens
}
