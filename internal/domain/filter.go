package domain

import "strings"

// Tab narrows the saved-list view to one kind, or shows both.
type Tab string

const (
	TabAll  Tab = "all"
	TabNews Tab = "news"
	TabJobs Tab = "jobs"
)

// ParseTab maps a query parameter to a Tab, defaulting to "all".
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "", TabAll:
		return TabAll, nil
	case TabNews:
		return TabNews, nil
	case TabJobs:
		return TabJobs, nil
	default:
		return "", &UnknownTabError{Value: s}
	}
}

// UnknownTabError is returned when a tab parameter is not all/news/jobs.
type UnknownTabError struct {
	Value string
}

func (e *UnknownTabError) Error() string {
	return "unknown tab: " + e.Value
}

// ListState distinguishes an empty collection from an empty search result.
// The two drive different UI states and must not be conflated.
type ListState string

const (
	ListStateOK        ListState = "ok"
	ListStateEmpty     ListState = "empty"      // nothing saved at all
	ListStateNoMatches ListState = "no_matches" // items exist, search matched none
)

// FilterNews keeps articles whose title, author or category contains the
// search text, case-insensitively. An empty search passes everything.
func FilterNews(items []SavedNews, search string) []SavedNews {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return items
	}
	out := make([]SavedNews, 0, len(items))
	for _, it := range items {
		if containsFold(it.Title, search) ||
			containsFold(it.Author, search) ||
			containsFold(it.Category, search) {
			out = append(out, it)
		}
	}
	return out
}

// FilterJobs keeps jobs whose title, company or location contains the search
// text, case-insensitively. An empty search passes everything.
func FilterJobs(items []SavedJob, search string) []SavedJob {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return items
	}
	out := make([]SavedJob, 0, len(items))
	for _, it := range items {
		if containsFold(it.Title, search) ||
			containsFold(it.Company, search) ||
			containsFold(it.Location, search) {
			out = append(out, it)
		}
	}
	return out
}

// containsFold reports whether s contains needle, ignoring case.
// needle must already be lowercased.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

// ListView is the assembled saved-list: both collections filtered by search,
// narrowed by tab, with the count badges the portal shows.
type ListView struct {
	Tab       Tab          `json:"tab"`
	Search    string       `json:"search,omitempty"`
	Items     []TaggedItem `json:"items"`
	NewsCount int          `json:"news_count"`
	JobsCount int          `json:"jobs_count"`
	Total     int          `json:"total"`
	State     ListState    `json:"state"`
}

// BuildListView filters both collections, applies the tab selection and
// computes counts. Counts always reflect the filtered collections: the news
// badge equals len(filtered news) and the "all" total is the sum of both.
func BuildListView(news []SavedNews, jobs []SavedJob, tab Tab, search string) ListView {
	filteredNews := FilterNews(news, search)
	filteredJobs := FilterJobs(jobs, search)

	v := ListView{
		Tab:       tab,
		Search:    strings.TrimSpace(search),
		NewsCount: len(filteredNews),
		JobsCount: len(filteredJobs),
		Total:     len(filteredNews) + len(filteredJobs),
	}

	switch tab {
	case TabNews:
		v.Items = tagNews(filteredNews)
	case TabJobs:
		v.Items = tagJobs(filteredJobs)
	default:
		v.Items = append(tagNews(filteredNews), tagJobs(filteredJobs)...)
	}

	v.State = listState(tab, len(news), len(jobs), len(v.Items))
	return v
}

// listState picks the UI state for the current tab: an empty store and a
// search that matched nothing are different situations.
func listState(tab Tab, rawNews, rawJobs, shown int) ListState {
	if shown > 0 {
		return ListStateOK
	}

	var raw int
	switch tab {
	case TabNews:
		raw = rawNews
	case TabJobs:
		raw = rawJobs
	default:
		raw = rawNews + rawJobs
	}

	if raw == 0 {
		return ListStateEmpty
	}
	return ListStateNoMatches
}

func tagNews(items []SavedNews) []TaggedItem {
	out := make([]TaggedItem, 0, len(items))
	for i := range items {
		out = append(out, TaggedItem{Kind: KindNews, News: &items[i]})
	}
	return out
}

func tagJobs(items []SavedJob) []TaggedItem {
	out := make([]TaggedItem, 0, len(items))
	for i := range items {
		out = append(out, TaggedItem{Kind: KindJobs, Job: &items[i]})
	}
	return out
}
