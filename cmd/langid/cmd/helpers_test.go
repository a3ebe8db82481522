package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetCommandFlags restores every flag in the command tree to its default
// value and clears the Changed marker. Cobra keeps flag state on the
// package-level commands between Execute calls, so each test that runs the
// CLI starts here to avoid inheriting flags from an earlier test.
func resetCommandFlags(t *testing.T) {
	t.Helper()
	resetFlagsRecursive(rootCmd)
}

func resetFlagsRecursive(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlagsRecursive(sub)
	}
}
