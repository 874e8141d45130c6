package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/hummingbird/logging"
	"github.com/jsphweid/hummingbird/melody"
	"github.com/jsphweid/hummingbird/midi"
	"github.com/jsphweid/hummingbird/pitch"
	"github.com/jsphweid/hummingbird/pitchsrc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var extractFlags struct {
	out       string
	threshold float64
	minNote   float64
	tolerance int
	window    int
}

func init() {
	rootCmd.AddCommand(extractCmd)
	f := extractCmd.Flags()
	f.StringVarP(&extractFlags.out, "out", "o", "", "where to write the melody MIDI (default <input>.mid)")
	f.Float64Var(&extractFlags.threshold, "threshold", melody.DefaultConfidenceThreshold, "minimum pitch confidence")
	f.Float64Var(&extractFlags.minNote, "min-note-duration", 0.1, "shortest note kept, in seconds")
	f.IntVar(&extractFlags.tolerance, "tolerance", 1, "semitones a note may drift before it is split")
	f.IntVar(&extractFlags.window, "window", melody.DefaultSmoothWindow, "smoothing window in frames, odd")
}

var extractCmd = &cobra.Command{
	Use:   "extract <recording.wav|frames.csv>",
	Short: "Extracts the melody of a recording",
	Long: `Extracts the melody of a hummed recording and writes it as MIDI.
A .csv input is read as a precomputed time,frequency,confidence contour,
anything else is handed to crepe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := melody.DefaultConfig()
		conf.SmoothWindow = extractFlags.window
		conf.ConfidenceThreshold = extractFlags.threshold
		conf.Segment.MinNoteDuration = extractFlags.minNote
		conf.Segment.PitchTolerance = extractFlags.tolerance

		out := extractFlags.out
		if out == "" {
			out = replaceExt(args[0], ".mid")
		}
		return extract(cmd.Context(), args[0], out, conf)
	},
}

func estimatorFor(path string) pitchsrc.Estimator {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return pitchsrc.CSVFile{}
	}
	return pitchsrc.NewCrepe(cfg.CrepePath, cfg.CrepeModel)
}

func extract(ctx context.Context, in, out string, conf melody.Config) error {
	if err := conf.Validate(); err != nil {
		return err
	}
	frames, err := estimatorFor(in).Estimate(ctx, in, conf.ConfidenceThreshold)
	if err != nil {
		return err
	}
	m, err := melody.Extract(frames, conf)
	if err != nil {
		return err
	}
	logging.Debug("estimated contour", logging.Fields{"frames": len(frames), "voiced": m.VoicedFrames})

	fmt.Printf("key: %s\n", m.KeyName)
	for _, n := range m.Notes {
		fmt.Printf("%8.3f %8.3f  %-4s (%d)\n", n.Start, n.End, pitch.NoteName(n.Pitch), n.Pitch)
	}

	if err := writeSong(out, midi.NewSong(m.Notes)); err != nil {
		return err
	}
	fmt.Printf("wrote %d notes to %s\n", len(m.Notes), out)
	return nil
}

func writeSong(path string, song *midi.Song) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create midi file")
	}
	defer f.Close()
	if _, err := song.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
