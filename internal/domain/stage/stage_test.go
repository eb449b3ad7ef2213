package stage

import "testing"

func catalog() Catalog {
	return NewCatalog([]Stage{
		{ID: 3, Order: 3, MinPercent: 20, MaxPercent: 70, Name: "Execution"},
		{ID: 1, Order: 1, MinPercent: 0, MaxPercent: 10, Name: "Initiation"},
		{ID: 5, Order: 5, MinPercent: 90, MaxPercent: 101, Name: "Completion"},
		{ID: 2, Order: 2, MinPercent: 10, MaxPercent: 20, Name: "Planning"},
		{ID: 4, Order: 4, MinPercent: 70, MaxPercent: 90, Name: "Monitoring"},
	})
}

func TestCatalog_First(t *testing.T) {
	t.Parallel()

	first, ok := catalog().First()
	if !ok {
		t.Fatal("First() ok = false, want true")
	}
	if first.ID != 1 {
		t.Errorf("First().ID = %d, want 1 (lowest order)", first.ID)
	}

	if _, ok := NewCatalog(nil).First(); ok {
		t.Error("First() on empty catalog ok = true, want false")
	}
}

func TestCatalog_All_Sorted(t *testing.T) {
	t.Parallel()

	all := catalog().All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Order > all[i].Order {
			t.Fatalf("All() not sorted by order: %v", all)
		}
	}
}

func TestCatalog_ForPercent(t *testing.T) {
	t.Parallel()

	c := catalog()
	tests := []struct {
		percent int
		wantID  int64
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{50, 3},
		{89, 4},
		{90, 5},
		{100, 5},
	}
	for _, tt := range tests {
		got, ok := c.ForPercent(tt.percent)
		if !ok {
			t.Errorf("ForPercent(%d) ok = false", tt.percent)
			continue
		}
		if got.ID != tt.wantID {
			t.Errorf("ForPercent(%d).ID = %d, want %d", tt.percent, got.ID, tt.wantID)
		}
	}

	if _, ok := NewCatalog(nil).ForPercent(50); ok {
		t.Error("ForPercent on empty catalog ok = true, want false")
	}
}

func TestCatalog_ByID(t *testing.T) {
	t.Parallel()

	c := catalog()
	if got, ok := c.ByID(4); !ok || got.Name != "Monitoring" {
		t.Errorf("ByID(4) = %v, %v", got, ok)
	}
	if _, ok := c.ByID(99); ok {
		t.Error("ByID(99) ok = true, want false")
	}
}
