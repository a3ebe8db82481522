package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

// FormatResults formats batch results in the specified output format.
func FormatResults(results []FileResult, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(results)
	case "csv":
		return formatCSV(results)
	default: // text
		return formatText(results), nil
	}
}

// formatJSON formats results as indented JSON.
func formatJSON(results []FileResult) (string, error) {
	wrapper := struct {
		Files []FileResult `json:"files"`
		Count int          `json:"count"`
	}{
		Files: results,
		Count: len(results),
	}
	bts, err := json.MarshalIndent(wrapper, "", "  ")
	return string(bts), err
}

// formatCSV formats results as CSV rows, one per file.
func formatCSV(results []FileResult) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"file", "language", "name", "score", "error"}); err != nil {
		return "", err
	}
	for _, res := range results {
		row := []string{
			res.File,
			res.Language,
			res.Name,
			fmt.Sprintf("%.4f", res.Score),
			res.Error,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

// formatText formats results as human-readable lines.
func formatText(results []FileResult) string {
	var sb strings.Builder
	for _, res := range results {
		if res.Error != "" {
			fmt.Fprintf(&sb, "%s: error: %s\n", res.File, res.Error)
			continue
		}
		if res.Name != "" {
			fmt.Fprintf(&sb, "%s: %s (%s, score %.4f)\n", res.File, res.Language, res.Name, res.Score)
		} else {
			fmt.Fprintf(&sb, "%s: %s (score %.4f)\n", res.File, res.Language, res.Score)
		}
	}
	return sb.String()
}
