package domain

// A saved-items collection is an ordered sequence with set semantics keyed by
// item ID: at most one entry per identifier. Appends preserve insertion
// order; removals filter in place.

// ContainsNews reports whether an article with the given ID is in the collection.
func ContainsNews(items []SavedNews, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// AddNews appends item unless an entry with the same ID already exists.
// A duplicate add is a no-op, not an error.
func AddNews(items []SavedNews, item SavedNews) []SavedNews {
	if ContainsNews(items, item.ID) {
		return items
	}
	return append(items, item)
}

// RemoveNews filters out the entry with the given ID. No-op if absent.
// The input slice is left untouched.
func RemoveNews(items []SavedNews, id string) []SavedNews {
	out := make([]SavedNews, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// ContainsJob reports whether a job with the given ID is in the collection.
func ContainsJob(items []SavedJob, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// AddJob appends item unless an entry with the same ID already exists.
// A duplicate add is a no-op, not an error.
func AddJob(items []SavedJob, item SavedJob) []SavedJob {
	if ContainsJob(items, item.ID) {
		return items
	}
	return append(items, item)
}

// RemoveJob filters out the entry with the given ID. No-op if absent.
// The input slice is left untouched.
func RemoveJob(items []SavedJob, id string) []SavedJob {
	out := make([]SavedJob, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
