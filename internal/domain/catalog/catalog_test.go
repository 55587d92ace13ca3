package catalog

import "testing"

func makeItem(t *testing.T, id string) Item {
	t.Helper()
	item, err := New(id, "double", 2, "sea", nil, "desc "+id)
	if err != nil {
		t.Fatalf("New(%s): %v", id, err)
	}
	return item
}

func TestCatalog_InsertionOrder(t *testing.T) {
	cat := NewCatalog()
	for _, id := range []string{"c", "a", "b"} {
		cat.Add(makeItem(t, id))
	}

	items := cat.Items()
	if len(items) != 3 {
		t.Fatalf("Len = %d, want 3", len(items))
	}
	for i, want := range []string{"c", "a", "b"} {
		if items[i].ID() != want {
			t.Errorf("items[%d].ID() = %q, want %q", i, items[i].ID(), want)
		}
	}
}

func TestCatalog_ReplaceKeepsPosition(t *testing.T) {
	cat := NewCatalog()
	cat.Add(makeItem(t, "a"))
	cat.Add(makeItem(t, "b"))

	replacement, err := New("a", "suite", 4, "garden", nil, "updated")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cat.Add(replacement)

	if cat.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cat.Len())
	}
	items := cat.Items()
	if items[0].ID() != "a" || items[0].RoomType() != "suite" {
		t.Errorf("items[0] = %s/%s, want a/suite", items[0].ID(), items[0].RoomType())
	}
}

func TestCatalog_CloneIsIndependent(t *testing.T) {
	cat := NewCatalog()
	cat.Add(makeItem(t, "a"))

	clone := cat.Clone()
	clone.Add(makeItem(t, "b"))

	if cat.Len() != 1 {
		t.Errorf("original Len = %d after clone mutation, want 1", cat.Len())
	}
	if clone.Len() != 2 {
		t.Errorf("clone Len = %d, want 2", clone.Len())
	}
}
