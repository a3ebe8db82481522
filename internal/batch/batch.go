// Package batch identifies the language of many input files at once using
// a worker pool over a shared reference profile set.
package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/MeKo-Tech/langid/internal/langid"
	"github.com/MeKo-Tech/langid/internal/profiles"
)

// Result aggregates the outcome of a batch run.
type Result struct {
	Results     []FileResult
	FilePaths   []string
	Duration    time.Duration
	WorkerCount int
}

// Process identifies a batch of files with the given configuration.
func Process(paths []string, config *Config) (*Result, error) {
	files, err := discoverTextFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover input files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no input files found")
	}

	set, err := profiles.LoadDir(config.ProfilesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load language profiles: %w", err)
	}

	opts := langid.Options{
		Threshold: config.Threshold,
		Margin:    config.Margin,
		MaxLines:  config.MaxLines,
	}

	startTime := time.Now()
	results, err := identifyFilesParallel(set, opts, files, config.Workers, config.ContinueOnError)
	duration := time.Since(startTime)

	if err != nil {
		return nil, fmt.Errorf("batch identification failed: %w", err)
	}

	return &Result{
		Results:     results,
		FilePaths:   files,
		Duration:    duration,
		WorkerCount: config.Workers,
	}, nil
}
