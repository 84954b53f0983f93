package entry

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampJSON(t *testing.T) {
	now := time.Date(2024, time.March, 10, 8, 30, 0, 123000000, time.UTC)
	e := Entry{ID: "a", Created: At(now), DateKey: "2024-03-10"}
	b, err := json.Marshal([]Entry{e})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back []Entry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back[0].Created.Equal(now) {
		t.Fatalf("expected %v, got %v", now, back[0].Created)
	}
}

func TestTimestampEmpty(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`""`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ts.IsZero() {
		t.Fatalf("expected zero time")
	}
}

func TestSameDay(t *testing.T) {
	loc := time.UTC
	ts := At(time.Date(2024, time.March, 10, 0, 0, 0, 0, loc))
	if !ts.SameDay(time.Date(2024, time.March, 10, 23, 59, 0, 0, loc), loc) {
		t.Fatalf("expected same day")
	}
	if ts.SameDay(time.Date(2025, time.March, 10, 0, 0, 0, 0, loc), loc) {
		t.Fatalf("different years matched")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{"", false},
		{"  ", false},
		{"calm", true},
		{false, false},
		{true, true},
		{0, false},
		{3, true},
		{0.0, false},
		{[]any{}, false},
		{[]any{"headache"}, true},
		{[]string{"a"}, true},
		{map[string]any{}, false},
	}
	for _, tc := range tests {
		if got := Truthy(tc.in); got != tc.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestField(t *testing.T) {
	e := &Entry{Payload: map[string]any{"symptoms": []any{"nausea", "fatigue"}, "score": 4.0}}
	if got, _ := e.Field("symptoms"); got != "nausea, fatigue" {
		t.Fatalf("unexpected symptoms %q", got)
	}
	if got, _ := e.Field("score"); got != "4" {
		t.Fatalf("unexpected score %q", got)
	}
	if _, ok := e.Field("missing"); ok {
		t.Fatalf("missing field reported present")
	}
}
