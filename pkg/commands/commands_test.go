package commands

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommandTree(t *testing.T) {
	root := New()
	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
	}
	sort.Strings(got)
	want := []string{"completion", "delete", "history", "log", "meds", "pages", "stage", "ui", "upgrade", "version"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("commands (-want +got):\n%s", diff)
	}
	if root.PersistentFlags().Lookup("ephemeral") == nil {
		t.Error("missing --ephemeral")
	}
}

func TestPageCompletions(t *testing.T) {
	got := pageCompletions()
	if len(got) != 7 || got[0] != "mood-tracker" {
		t.Errorf("pageCompletions() = %v", got)
	}
}
