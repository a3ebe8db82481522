package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MeKo-Tech/langid/internal/batch"
	"github.com/MeKo-Tech/langid/internal/langid"
	"github.com/MeKo-Tech/langid/internal/profiles"
	"github.com/MeKo-Tech/langid/internal/textutil"
	"github.com/spf13/cobra"
)

const (
	outputFormatJSON = "json"
	outputFormatCSV  = "csv"
	outputFormatText = "text"
)

// identifyCmd represents the identify command.
var identifyCmd = &cobra.Command{
	Use:   "identify [files...]",
	Short: "Identify the language of text files or stdin",
	Long: `Identify the natural language of one or more text files by trigram
profile similarity. With no file arguments, or with "-", text is read
from standard input.

Examples:
  langid identify letter.txt
  langid identify *.txt --format json
  echo "Bonjour tout le monde" | langid identify
  langid identify letter.txt --threshold 0.4 --margin 0.05`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		threshold := cfg.Identify.Threshold
		if cmd.Flags().Changed("threshold") {
			threshold, _ = cmd.Flags().GetFloat64("threshold")
		}
		margin := cfg.Identify.Margin
		if cmd.Flags().Changed("margin") {
			margin, _ = cmd.Flags().GetFloat64("margin")
		}
		maxLines := cfg.Identify.MaxLines
		if cmd.Flags().Changed("max-lines") {
			maxLines, _ = cmd.Flags().GetInt("max-lines")
		}
		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}

		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("invalid threshold: %.2f (must be between 0.0 and 1.0)", threshold)
		}
		if margin < 0 || margin > 1 {
			return fmt.Errorf("invalid margin: %.2f (must be between 0.0 and 1.0)", margin)
		}

		validFormats := []string{outputFormatText, outputFormatJSON, outputFormatCSV}
		isValidFormat := false
		for _, f := range validFormats {
			if format == f {
				isValidFormat = true
				break
			}
		}
		if !isValidFormat {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(validFormats, ", "))
		}

		set, err := profiles.LoadDir(cfg.ProfilesDir)
		if err != nil {
			return fmt.Errorf("failed to load language profiles: %w", err)
		}

		opts := langid.Options{Threshold: threshold, Margin: margin, MaxLines: maxLines}

		results, err := identifyInputs(args, set, opts, cmd.InOrStdin())
		if err != nil {
			return err
		}

		out, err := batch.FormatResults(results, format)
		if err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(out), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

// identifyInputs identifies each file argument, or stdin when no files are
// given (or "-" is passed).
func identifyInputs(args []string, set *profiles.Set, opts langid.Options, stdin io.Reader) ([]batch.FileResult, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(io.LimitReader(stdin, textutil.MaxFileBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) == 0 {
			return nil, errors.New("no input provided")
		}
		text, err := textutil.FromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("stdin is not decodable text: %w", err)
		}
		return []batch.FileResult{identifyText("stdin", text, set, opts)}, nil
	}

	results := make([]batch.FileResult, 0, len(args))
	for _, path := range args {
		text, err := textutil.FromFile(path)
		if err != nil {
			results = append(results, batch.FileResult{
				File:     path,
				Language: langid.Unknown,
				Error:    err.Error(),
			})
			continue
		}
		results = append(results, identifyText(path, text, set, opts))
	}
	return results, nil
}

// identifyText runs the decision rule for one input.
func identifyText(name string, text textutil.Text, set *profiles.Set, opts langid.Options) batch.FileResult {
	start := time.Now()
	matches := langid.Rank(text, set.Profiles, opts)
	code := langid.Decide(matches, opts)

	result := batch.FileResult{
		File:     name,
		Language: code,
		Matches:  matches,
		Duration: time.Since(start),
	}
	if len(matches) > 0 {
		result.Score = matches[0].Score
	}
	if code != langid.Unknown {
		result.Name = set.Name(code)
	}
	return result
}

func init() {
	rootCmd.AddCommand(identifyCmd)
	identifyCmd.Flags().Float64P("threshold", "t", 0.3, "minimum similarity score to accept a match (0..1)")
	identifyCmd.Flags().Float64P("margin", "m", 0, "minimum gap between best and second-best score (0 disables)")
	identifyCmd.Flags().Int("max-lines", 0, "maximum number of input lines to profile (0 = all)")
	identifyCmd.Flags().StringP("format", "f", "text", "output format: text, json, or csv")
	identifyCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
}
