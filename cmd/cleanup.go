package cmd

import (
	"fmt"

	"github.com/jsphweid/hummingbird/constants"
	"github.com/jsphweid/hummingbird/errs"
	"github.com/jsphweid/hummingbird/store"
	"github.com/spf13/cobra"
)

var cleanupMaxAge float64

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().Float64Var(&cleanupMaxAge, "max-age-hours", 0, "delete files older than this (default MAX_FILE_AGE_HOURS)")
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Deletes old generated files",
	RunE: func(cmd *cobra.Command, args []string) error {
		maxAge := cfg.MaxFileAge
		if cmd.Flags().Changed("max-age-hours") {
			if cleanupMaxAge < 0 {
				return errs.NewConfigError("max_age_hours", cleanupMaxAge, "must not be negative")
			}
			maxAge = constants.Hours(cleanupMaxAge)
		}
		s, err := store.New(cfg.OutputDir)
		if err != nil {
			return err
		}
		n, err := s.Cleanup(maxAge)
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d files from %s\n", n, s.Dir())
		return nil
	},
}
