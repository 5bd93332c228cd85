package domain

import "time"

// SavedNews is a denormalized snapshot of a news article, copied from the
// content API at save time. It is never updated in place: a re-save goes
// through remove+add, and later edits to the source article are not tracked.
type SavedNews struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the article identifier assigned by the content API.
	ID string `json:"id"`

	// ─────────────────────────────
	// Snapshot fields
	// ─────────────────────────────

	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`

	// SavedAt is the moment the user saved the article.
	SavedAt time.Time `json:"saved_at"`
}

// SavedJob is a denormalized snapshot of a job posting, copied from the
// content API at save time. Same lifecycle as SavedNews.
type SavedJob struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the job identifier assigned by the content API.
	ID string `json:"id"`

	// ─────────────────────────────
	// Snapshot fields
	// ─────────────────────────────

	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`

	// Category is "government" or "private".
	Category string `json:"category"`

	Location    string    `json:"location"`
	Salary      string    `json:"salary,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	ClosingDate time.Time `json:"closing_date"`

	// SavedAt is the moment the user saved the job.
	SavedAt time.Time `json:"saved_at"`
}

// TaggedItem wraps a saved item with its kind for mixed "all" listings.
type TaggedItem struct {
	Kind Kind       `json:"kind"`
	News *SavedNews `json:"news,omitempty"`
	Job  *SavedJob  `json:"job,omitempty"`
}
