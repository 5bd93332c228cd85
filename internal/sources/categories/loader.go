// Package categories loads the portal's category definitions file. The file
// only drives display grouping and the unknown-category log line; the content
// API remains canonical for what a snapshot's category actually is.
package categories

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads and parses categories.yaml.
type Loader struct {
	filePath string
}

// NewLoader creates a categories loader for the given file.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the categories file.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse categories yaml: %w", err)
	}

	if len(cfg.News) == 0 && len(cfg.Jobs) == 0 {
		return nil, fmt.Errorf("categories file defines no categories")
	}

	return &cfg, nil
}

// normalize lowercases and trims a category for lookup.
func normalize(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
