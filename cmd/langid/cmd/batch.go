package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/MeKo-Tech/langid/internal/batch"
	"github.com/MeKo-Tech/langid/internal/config"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command for parallel file identification.
var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Identify the language of many files in parallel",
	Long: `Identify the language of multiple text files using parallel workers.
Directories are expanded; with --recursive, subdirectories are included.

Examples:
  langid batch *.txt
  langid batch corpus/ --recursive --workers 8
  langid batch a.txt b.txt --format json --output results.json
  langid batch corpus/ --include "*.txt" --exclude "README*"`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values through Viper's precedence system.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := &batch.Config{}

	batchConfig.ProfilesDir = cfg.ProfilesDir

	batchConfig.Threshold = cfg.Identify.Threshold
	if cmd.Flags().Changed("threshold") {
		batchConfig.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	batchConfig.Margin = cfg.Identify.Margin
	if cmd.Flags().Changed("margin") {
		batchConfig.Margin, _ = cmd.Flags().GetFloat64("margin")
	}
	batchConfig.MaxLines = cfg.Identify.MaxLines
	if cmd.Flags().Changed("max-lines") {
		batchConfig.MaxLines, _ = cmd.Flags().GetInt("max-lines")
	}

	batchConfig.Format = cfg.Output.Format
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}
	batchConfig.OutputFile = cfg.Output.File
	if cmd.Flags().Changed("output") {
		batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	}

	batchConfig.Workers = cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}
	batchConfig.Recursive = cfg.Batch.Recursive
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	batchConfig.ContinueOnError = cfg.Batch.ContinueOnError
	if cmd.Flags().Changed("continue-on-error") {
		batchConfig.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}

	batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
	batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")

	return batchConfig
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	batchConfig := configToBatchConfig(cfg, cmd)

	if batchConfig.Workers <= 0 {
		return fmt.Errorf("invalid worker count: %d (must be positive)", batchConfig.Workers)
	}

	startTime := time.Now()
	result, err := batch.Process(args, batchConfig)
	if err != nil {
		return err
	}

	out, err := batch.FormatResults(result.Results, batchConfig.Format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if batchConfig.OutputFile != "" {
		if err := os.WriteFile(batchConfig.OutputFile, []byte(out), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	} else if _, err := fmt.Fprint(cmd.OutOrStdout(), out); err != nil {
		return err
	}

	if !batchConfig.Quiet {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Identified %d file(s) in %v with %d worker(s)\n",
			len(result.Results), time.Since(startTime).Round(time.Millisecond), result.WorkerCount); err != nil {
			return err
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().Float64P("threshold", "t", 0.3, "minimum similarity score to accept a match (0..1)")
	batchCmd.Flags().Float64P("margin", "m", 0, "minimum gap between best and second-best score (0 disables)")
	batchCmd.Flags().Int("max-lines", 0, "maximum number of input lines to profile (0 = all)")
	batchCmd.Flags().StringP("format", "f", "text", "output format: text, json, or csv")
	batchCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	batchCmd.Flags().IntP("workers", "w", 4, "number of parallel workers")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.Flags().Bool("continue-on-error", true, "continue when a file fails to load")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns for files to include (e.g. '*.txt')")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns for files to exclude")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress the summary line")
}
