package redis

import (
	"testing"

	"github.com/herathmmr/stash/internal/domain"
)

func TestDecodeSlotCorruptPayloads(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage bytes", "\x00\x01not json at all"},
		{"truncated json", `[{"id":"n1","title":"Bud`},
		{"object instead of array", `{"id":"n1"}`},
		{"wrong element shape", `[{"id":123}]`},
		{"bare string", `"saved"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeSlot[domain.SavedNews]([]byte(tt.data))
			if err == nil {
				t.Error("decodeSlot() error = nil, want parse error")
			}
			if items == nil {
				t.Fatal("decodeSlot() returned nil, want empty collection")
			}
			if len(items) != 0 {
				t.Errorf("decodeSlot() returned %d items, want 0", len(items))
			}
		})
	}
}

func TestDecodeSlotValidPayloads(t *testing.T) {
	items, err := decodeSlot[domain.SavedNews]([]byte(`[{"id":"n1","title":"Harbor Expansion Approved"}]`))
	if err != nil {
		t.Fatalf("decodeSlot() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "n1" {
		t.Errorf("decodeSlot() = %+v, want one item n1", items)
	}

	empty, err := decodeSlot[domain.SavedJob]([]byte(`[]`))
	if err != nil {
		t.Fatalf("decodeSlot(empty array) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("decodeSlot(empty array) returned %d items, want 0", len(empty))
	}

	// A "null" slot parses but is still an empty collection, never nil.
	nulled, err := decodeSlot[domain.SavedJob]([]byte(`null`))
	if err != nil {
		t.Fatalf("decodeSlot(null) error = %v", err)
	}
	if nulled == nil || len(nulled) != 0 {
		t.Errorf("decodeSlot(null) = %v, want empty non-nil collection", nulled)
	}
}
