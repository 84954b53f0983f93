package page

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	ids := c.IDs()
	if len(ids) != 7 {
		t.Fatalf("expected 7 pages, got %d", len(ids))
	}
	for _, id := range ids {
		p, ok := c.Lookup(id)
		if !ok {
			t.Fatalf("lookup %q failed", id)
		}
		if p.LogKey == "" {
			t.Errorf("page %q has no log key", id)
		}
		if p.DataCollecting && len(p.Required) == 0 {
			t.Errorf("data page %q has no required fields", id)
		}
		if p.Render == nil || p.Render.Render(40) == "" {
			t.Errorf("page %q renders empty", id)
		}
	}
	if c.Contains("nope") {
		t.Fatalf("unexpected page")
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(Page{ID: Mood}, Page{ID: Mood})
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
}
