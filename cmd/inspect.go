package cmd

import (
	"fmt"
	"sort"

	"github.com/jsphweid/hummingbird/chord"
	"github.com/jsphweid/hummingbird/midi"
	"github.com/jsphweid/hummingbird/pitch"
	"github.com/jsphweid/hummingbird/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Prints every track of a MIDI file, with notes that start together shown as chords.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	file, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	tracks := midi.ReadTracks(file)
	fmt.Printf("%s: %d tracks with notes\n", path, len(tracks))
	for _, t := range tracks {
		fmt.Printf("track %d (channel %d): %d notes\n", t.Index, t.Channel, len(t.Notes))
		onsets := midi.GroupByOnset(t.Notes)
		for _, ms := range util.GetKeys(onsets) {
			pitches := onsets[ms]
			sort.Ints(pitches)
			if len(pitches) == 1 {
				fmt.Printf("  %8.3f  %s\n", float64(ms)/1000, pitch.NoteName(pitches[0]))
				continue
			}
			fmt.Printf("  %8.3f  %-5s %s\n", float64(ms)/1000, chord.Name(pitches), chord.CreateChordKey(pitches))
		}
	}
	return nil
}
