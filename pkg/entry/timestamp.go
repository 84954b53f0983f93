package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp serializes as an RFC3339 string with nanoseconds and treats the
// empty string as the zero time.
type Timestamp struct {
	time.Time
}

// At wraps t.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// SameDay reports whether t and then fall on the same calendar day in loc.
func (t Timestamp) SameDay(then time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	a, b := t.In(loc), then.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// Millis returns the timestamp as epoch milliseconds.
func (t Timestamp) Millis() int64 {
	return t.UnixMilli()
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
