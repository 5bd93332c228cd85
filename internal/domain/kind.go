package domain

import "fmt"

// Kind discriminates a saved news article from a saved job posting.
type Kind string

const (
	KindNews Kind = "news"
	KindJobs Kind = "jobs"
)

// ParseKind validates a kind coming from a URL segment or query parameter.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNews:
		return KindNews, nil
	case KindJobs:
		return KindJobs, nil
	default:
		return "", fmt.Errorf("unknown kind: %q", s)
	}
}

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindNews || k == KindJobs
}
