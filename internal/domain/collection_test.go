package domain

import (
	"testing"
	"time"
)

func TestAddNewsIdempotent(t *testing.T) {
	item := SavedNews{ID: "n1", Title: "Breaking News", SavedAt: time.Now()}

	items := AddNews(nil, item)
	items = AddNews(items, item)

	if len(items) != 1 {
		t.Errorf("AddNews() twice with same ID produced %d entries, want 1", len(items))
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	base := []SavedNews{
		{ID: "n1", Title: "Budget Update"},
		{ID: "n2", Title: "Sports Gala"},
	}

	items := AddNews(base, SavedNews{ID: "n3", Title: "Weather"})
	items = RemoveNews(items, "n3")

	if len(items) != len(base) {
		t.Fatalf("round trip left %d entries, want %d", len(items), len(base))
	}
	for i, it := range base {
		if items[i].ID != it.ID {
			t.Errorf("round trip changed member set: got %s at %d, want %s", items[i].ID, i, it.ID)
		}
	}
}

func TestRemoveNewsAbsentIsNoop(t *testing.T) {
	items := []SavedNews{{ID: "n1"}}
	got := RemoveNews(items, "missing")
	if len(got) != 1 {
		t.Errorf("RemoveNews() of absent ID changed length to %d, want 1", len(got))
	}
}

func TestRemoveNewsLeavesInputUntouched(t *testing.T) {
	items := []SavedNews{{ID: "n1"}, {ID: "n2"}}
	_ = RemoveNews(items, "n1")

	if items[0].ID != "n1" || items[1].ID != "n2" {
		t.Error("RemoveNews() mutated the input slice")
	}
}

func TestJobCollectionSetSemantics(t *testing.T) {
	item := SavedJob{ID: "j1", Title: "Engineer", Company: "Acme"}

	items := AddJob(nil, item)
	items = AddJob(items, item)
	if len(items) != 1 {
		t.Fatalf("AddJob() twice produced %d entries, want 1", len(items))
	}
	if !ContainsJob(items, "j1") {
		t.Error("ContainsJob() = false after add")
	}

	items = RemoveJob(items, "j1")
	if ContainsJob(items, "j1") {
		t.Error("ContainsJob() = true after remove")
	}
	if len(items) != 0 {
		t.Errorf("RemoveJob() left %d entries, want 0", len(items))
	}
}
