package batch

import (
	"log/slog"
	"sync"
	"time"

	"github.com/MeKo-Tech/langid/internal/langid"
	"github.com/MeKo-Tech/langid/internal/profiles"
	"github.com/MeKo-Tech/langid/internal/textutil"
)

// FileResult is the identification outcome for a single input file.
type FileResult struct {
	File     string         `json:"file"`
	Language string         `json:"language"`
	Name     string         `json:"name,omitempty"`
	Score    float64        `json:"score"`
	Matches  []langid.Match `json:"matches,omitempty"`
	Error    string         `json:"error,omitempty"`
	Duration time.Duration  `json:"-"`
}

// fileJob is a single identification job for the worker pool.
type fileJob struct {
	index int
	path  string
}

// identifyFilesParallel identifies files using a fixed worker pool.
// Results are returned in input order regardless of completion order.
func identifyFilesParallel(set *profiles.Set, opts langid.Options, paths []string,
	workers int, continueOnError bool) ([]FileResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]FileResult, len(paths))
	jobs := make(chan fileJob)
	var firstErr error
	var errOnce sync.Once

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				res := identifySingleFile(set, opts, job.path)
				results[job.index] = res
				if res.Error != "" && !continueOnError {
					errOnce.Do(func() { firstErr = &FileError{Path: job.path, Message: res.Error} })
				}
			}
		}()
	}

	for i, path := range paths {
		jobs <- fileJob{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// identifySingleFile loads one file and runs the decision rule against the
// shared reference set. The set is read-only, so workers need no locking.
func identifySingleFile(set *profiles.Set, opts langid.Options, path string) FileResult {
	start := time.Now()
	result := FileResult{File: path, Language: langid.Unknown}

	text, err := textutil.FromFile(path)
	if err != nil {
		slog.Warn("Failed to load input file", "file", path, "error", err)
		result.Error = err.Error()
		return result
	}

	matches := langid.Rank(text, set.Profiles, opts)
	code := langid.Decide(matches, opts)

	result.Language = code
	result.Matches = matches
	if len(matches) > 0 {
		result.Score = matches[0].Score
	}
	if code != langid.Unknown {
		result.Name = set.Name(code)
	}
	result.Duration = time.Since(start)
	return result
}

// FileError reports a failure on one input file.
type FileError struct {
	Path    string
	Message string
}

func (e *FileError) Error() string {
	return "processing " + e.Path + ": " + e.Message
}
