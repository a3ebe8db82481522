package cmd

import (
	"fmt"
	"sort"

	"github.com/MeKo-Tech/langid/internal/profiles"
	"github.com/spf13/cobra"
)

// languagesCmd lists the languages available in the configured profile set.
var languagesCmd = &cobra.Command{
	Use:          "languages",
	Short:        "List the languages in the profile directory",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		set, err := profiles.LoadDir(cfg.ProfilesDir)
		if err != nil {
			return fmt.Errorf("failed to load profiles from %s: %w", cfg.ProfilesDir, err)
		}

		codes := make([]string, 0, len(set.Profiles))
		for _, p := range set.Profiles {
			codes = append(codes, p.Code)
		}
		sort.Strings(codes)

		for _, code := range codes {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, set.Name(code))
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
