package core

import (
	"time"

	"github.com/google/uuid"
)

// ObjectiveMap holds named objective values for a single candidate.
// Raw maps carry objective-specific units; normalized maps are in [0, 1]
// with every objective oriented so that larger is better.
type ObjectiveMap map[string]float64

// Clone returns an independent copy of the map. A nil map clones to nil.
func (m ObjectiveMap) Clone() ObjectiveMap {
	if m == nil {
		return nil
	}
	out := make(ObjectiveMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Candidate is a single evaluated solution in the population. Once a
// candidate has been normalized it is treated as an immutable value: the
// frontier and the archive may both hold it, and any update goes through
// the With* helpers which return a fresh copy.
type Candidate struct {
	ID                   string       `json:"id"`
	RawObjectives        ObjectiveMap `json:"raw_objectives"`
	NormalizedObjectives ObjectiveMap `json:"normalized_objectives,omitempty"`
	Fitness              float64      `json:"fitness"`
	Generation           int          `json:"generation"`
	CreatedAt            time.Time    `json:"created_at"`
}

// NewCandidate creates a candidate for the given generation. An empty id
// gets a generated UUID.
func NewCandidate(id string, raw ObjectiveMap, generation int) Candidate {
	if id == "" {
		id = uuid.New().String()
	}
	return Candidate{
		ID:            id,
		RawObjectives: raw.Clone(),
		Generation:    generation,
		CreatedAt:     time.Now(),
	}
}

// IsNormalized reports whether normalization has produced values for this
// candidate. The dominance and hypervolume code only looks at normalized
// objectives.
func (c Candidate) IsNormalized() bool {
	return c.NormalizedObjectives != nil
}

// WithNormalized returns a copy of the candidate carrying the given
// normalized objective values.
func (c Candidate) WithNormalized(normalized ObjectiveMap) Candidate {
	c.RawObjectives = c.RawObjectives.Clone()
	c.NormalizedObjectives = normalized.Clone()
	return c
}

// WithFitness returns a copy of the candidate with a scalar fitness summary.
// The core algorithms never read this; it is carried for callers that rank
// archives or report progress with a single number.
func (c Candidate) WithFitness(fitness float64) Candidate {
	c.RawObjectives = c.RawObjectives.Clone()
	c.NormalizedObjectives = c.NormalizedObjectives.Clone()
	c.Fitness = fitness
	return c
}
