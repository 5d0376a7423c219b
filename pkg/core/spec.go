package core

import (
	"math"

	"github.com/XiaoConstantine/pareto-go/pkg/errors"
)

// Direction states whether an objective should be maximized or minimized.
type Direction string

const (
	Maximize Direction = "maximize"
	Minimize Direction = "minimize"
)

// Valid reports whether d is one of the two recognized directions.
func (d Direction) Valid() bool {
	return d == Maximize || d == Minimize
}

// ObjectiveSpec is the static per-run objective configuration: the ordered
// objective names and a direction for each. Every listed objective must have
// a direction entry; extra direction entries are allowed.
type ObjectiveSpec struct {
	Objectives []string             `json:"objectives"`
	Directions map[string]Direction `json:"directions"`
}

// Validate checks the spec's internal consistency.
func (s ObjectiveSpec) Validate() error {
	if len(s.Objectives) == 0 {
		return errors.New(errors.ValidationFailed, "objective spec has no objectives")
	}
	for _, name := range s.Objectives {
		dir, ok := s.Directions[name]
		if !ok {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "objective has no direction entry"),
				errors.Fields{"objective": name})
		}
		if !dir.Valid() {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "objective direction must be maximize or minimize"),
				errors.Fields{"objective": name, "direction": string(dir)})
		}
	}
	return nil
}

// ReferencePoint maps each objective to a value weakly dominated by every
// valid solution. It bounds the hypervolume integration.
type ReferencePoint map[string]float64

// Validate checks that the reference point covers every objective in the
// spec with a finite value.
func (r ReferencePoint) Validate(objectives []string) error {
	for _, name := range objectives {
		v, ok := r[name]
		if !ok {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "reference point missing objective"),
				errors.Fields{"objective": name})
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "reference point value must be finite"),
				errors.Fields{"objective": name, "value": v})
		}
	}
	return nil
}

// Clone returns an independent copy of the reference point.
func (r ReferencePoint) Clone() ReferencePoint {
	if r == nil {
		return nil
	}
	out := make(ReferencePoint, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
