package redis

// Slot key layout. These literals are part of the persisted-state contract:
// renaming them orphans every user's saved items, so they stay stable across
// releases.
const (
	// KeyPrefixSaved is the prefix for all saved-items slots.
	KeyPrefixSaved = "stash:saved:"

	slotNews = "news"
	slotJobs = "jobs"
)

// NewsSlotKey returns the Redis key holding a user's saved-news collection.
func NewsSlotKey(user string) string {
	return KeyPrefixSaved + user + ":" + slotNews
}

// JobsSlotKey returns the Redis key holding a user's saved-jobs collection.
func JobsSlotKey(user string) string {
	return KeyPrefixSaved + user + ":" + slotJobs
}
