package categories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/herathmmr/stash/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeFile(t, `
news:
  - Politics
  - Sports
  - Economy
jobs:
  - government
  - private
`)

	cfg, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.News) != 3 {
		t.Errorf("News categories = %d, want 3", len(cfg.News))
	}
	if len(cfg.Jobs) != 2 {
		t.Errorf("Jobs categories = %d, want 2", len(cfg.Jobs))
	}
}

func TestLoaderEmptyFile(t *testing.T) {
	path := writeFile(t, "")

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() of empty file should return error")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader("/does/not/exist.yaml").Load(); err == nil {
		t.Error("Load() of missing file should return error")
	}
}

func TestLoaderInvalidYAML(t *testing.T) {
	path := writeFile(t, "news: [unclosed")

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() of invalid yaml should return error")
	}
}

func TestCatalogKnown(t *testing.T) {
	c := NewCatalog()

	// Empty catalog knows nothing.
	if c.Known(domain.KindNews, "politics") {
		t.Error("empty catalog Known() = true")
	}

	c.Update(&Config{
		News: []string{"Politics", " Sports "},
		Jobs: []string{"government"},
	})

	tests := []struct {
		kind domain.Kind
		cat  string
		want bool
	}{
		{kind: domain.KindNews, cat: "politics", want: true},
		{kind: domain.KindNews, cat: "POLITICS", want: true},
		{kind: domain.KindNews, cat: "sports", want: true},
		{kind: domain.KindNews, cat: "government", want: false},
		{kind: domain.KindJobs, cat: "government", want: true},
		{kind: domain.KindJobs, cat: "private", want: false},
	}

	for _, tt := range tests {
		if got := c.Known(tt.kind, tt.cat); got != tt.want {
			t.Errorf("Known(%s, %q) = %v, want %v", tt.kind, tt.cat, got, tt.want)
		}
	}

	news, jobs := c.Count()
	if news != 2 || jobs != 1 {
		t.Errorf("Count() = %d/%d, want 2/1", news, jobs)
	}
}
