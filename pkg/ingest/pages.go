package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadPages reads a pre-extracted prior-year report: one text file with
// pages separated by form feeds, as PDF text extractors emit them. The
// core never decodes PDFs itself.
func LoadPages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report text %s: %w", path, err)
	}
	return SplitPages(string(data)), nil
}

// SplitPages breaks form-feed separated report text into pages, dropping
// blank ones.
func SplitPages(text string) []string {
	var pages []string
	for _, page := range strings.Split(text, "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

// LoadPagesDir reads a directory of per-page .txt files in name order.
func LoadPagesDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading report pages dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	pages := make([]string, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading page %s: %w", name, err)
		}
		pages = append(pages, string(data))
	}
	return pages, nil
}
