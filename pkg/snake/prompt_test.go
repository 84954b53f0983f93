package snake

import (
	"testing"

	"tableflip.dev/tend/pkg/page"
)

func TestPageSearcher(t *testing.T) {
	pages := page.Default().Pages()
	search := pageSearcher(pages)

	tests := map[string]int{
		"mood":        0,
		"doctor appt": -1,
		"doctorapp":   4,
		"SLEEP":       1,
	}
	for input, want := range tests {
		got := -1
		for i := range pages {
			if search(input, i) {
				got = i
				break
			}
		}
		if got != want {
			t.Errorf("search(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestRequired(t *testing.T) {
	if required("  ") == nil {
		t.Error("blank input should be rejected")
	}
	if required("calm") != nil {
		t.Error("non-empty input should pass")
	}
}
