package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"feed-reporter/pkg/domain"
)

const timestampLayout = "20060102_150405"

// SaveResults writes the run's entries and narrative into a timestamped
// subdirectory of baseDir and returns the directory path. The narrative
// file is only written when a narrative was produced.
func SaveResults(baseDir string, entries []domain.Entry, narrative string) (string, error) {
	runDir := filepath.Join(baseDir, time.Now().Format(timestampLayout))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding entries: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "entries.json"), data, 0o644); err != nil {
		return "", fmt.Errorf("writing entries: %w", err)
	}

	if narrative != "" {
		if err := os.WriteFile(filepath.Join(runDir, "narrative.md"), []byte(narrative), 0o644); err != nil {
			return "", fmt.Errorf("writing narrative: %w", err)
		}
	}

	return runDir, nil
}

// LatestNarrative returns the most recently saved narrative if its run
// directory is younger than maxAge, or an empty string.
func LatestNarrative(baseDir string, maxAge time.Duration) string {
	dirEntries, err := os.ReadDir(baseDir)
	if err != nil {
		return ""
	}

	var runs []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			runs = append(runs, entry.Name())
		}
	}
	if len(runs) == 0 {
		return ""
	}
	sort.Strings(runs)

	latest := runs[len(runs)-1]
	runTime, err := time.ParseInLocation(timestampLayout, latest, time.Local)
	if err != nil {
		return ""
	}
	if time.Since(runTime) > maxAge {
		return ""
	}

	narrative, err := os.ReadFile(filepath.Join(baseDir, latest, "narrative.md"))
	if err != nil {
		return ""
	}
	return string(narrative)
}
