package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/langid/internal/profiles"
	"github.com/spf13/cobra"
)

// profileCmd groups reference-profile management subcommands.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage reference trigram profiles",
}

// profileBuildCmd builds a reference profile CSV from a sample corpus.
var profileBuildCmd = &cobra.Command{
	Use:   "build [corpus]",
	Short: "Build a reference trigram profile from a sample corpus",
	Long: `Profile a corpus text file and write its trigram frequencies as a
trigram,count CSV usable as a reference profile.

Examples:
  langid profile build corpus-fr.txt --out profiles/fr.csv
  langid profile build samples/de.txt --out profiles/de.csv --max-lines 50000`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus := args[0]

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			base := filepath.Base(corpus)
			out = strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
		}
		maxLines, _ := cmd.Flags().GetInt("max-lines")
		if maxLines < 0 {
			return errors.New("max-lines must not be negative")
		}

		n, err := profiles.BuildCSV(corpus, out, maxLines)
		if err != nil {
			return fmt.Errorf("failed to build profile: %w", err)
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d trigrams to %s\n", n, out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileBuildCmd)
	profileBuildCmd.Flags().StringP("out", "o", "", "output profile path (default: <corpus>.csv)")
	profileBuildCmd.Flags().Int("max-lines", 0, "maximum number of corpus lines to profile (0 = all)")
}
