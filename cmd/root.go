package cmd

import (
	"github.com/jsphweid/hummingbird/constants"
	"github.com/jsphweid/hummingbird/logging"
	"github.com/spf13/cobra"
)

var cfg *constants.Config

var rootCmd = &cobra.Command{
	Use:   "hummingbird",
	Short: "Turns a hummed melody into an accompanied MIDI arrangement",
	Long: `hummingbird extracts a melody from a recording of someone humming,
then adds chords and a bass line in the detected key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = constants.Load()
		if err != nil {
			return err
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logging.SetLevel(level)
		return nil
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
