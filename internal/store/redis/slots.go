package redis

import "encoding/json"

// Slot payloads are decoded fail-soft: a payload that does not parse as the
// expected collection (older release, manual tampering) yields an empty
// collection and the parse error so the caller can log it. The slot is
// rewritten wholesale on the next save, which heals it.

func decodeSlot[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return []T{}, err
	}
	if items == nil {
		// JSON "null" parses cleanly but is not a collection.
		return []T{}, nil
	}
	return items, nil
}
