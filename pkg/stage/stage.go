// Package stage models the user's journey phase, which decides what the
// carousel shows.
package stage

import (
	"strings"
)

// Stage is one of a closed set of journey phases.
type Stage int

const (
	Planning Stage = iota
	Treatment
	Aftercare

	// Count is the number of stages; tables indexed by Stage use it as
	// their length.
	Count = int(iota)
)

// Default is used when no stage was ever chosen or the persisted value is
// not recognized.
const Default = Planning

var names = [Count]string{
	Planning:  "planning",
	Treatment: "treatment",
	Aftercare: "aftercare",
}

func (s Stage) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return names[s]
}

// Valid reports whether s is a defined stage.
func (s Stage) Valid() bool {
	return s >= 0 && int(s) < Count
}

// Parse maps a stage name to a Stage.
func Parse(v string) (Stage, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, n := range names {
		if n == v {
			return Stage(i), true
		}
	}
	return Default, false
}

// All returns every stage in declaration order.
func All() []Stage {
	out := make([]Stage, Count)
	for i := range out {
		out[i] = Stage(i)
	}
	return out
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(b []byte) error {
	v, ok := Parse(string(b))
	if !ok {
		return &UnknownError{Value: string(b)}
	}
	*s = v
	return nil
}

// UnknownError is returned when decoding an unrecognized stage name.
type UnknownError struct {
	Value string
}

func (e *UnknownError) Error() string {
	return "stage: unknown stage " + `"` + e.Value + `"`
}
