package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jsphweid/hummingbird/bass"
	"github.com/jsphweid/hummingbird/chord"
	"github.com/jsphweid/hummingbird/key"
	"github.com/jsphweid/hummingbird/logging"
	"github.com/jsphweid/hummingbird/melody"
	"github.com/jsphweid/hummingbird/midi"
	"github.com/jsphweid/hummingbird/render"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var accompanyFlags struct {
	out      string
	template string
	pattern  string
	noChords bool
	noBass   bool
	render   string
}

func init() {
	rootCmd.AddCommand(accompanyCmd)
	f := accompanyCmd.Flags()
	f.StringVarP(&accompanyFlags.out, "out", "o", "", "where to write the arrangement (default <input>_accompanied.mid)")
	f.StringVar(&accompanyFlags.template, "template", melody.DefaultTemplate,
		"chord template: "+strings.Join(chord.TemplateNames(), ", "))
	f.StringVar(&accompanyFlags.pattern, "pattern", melody.DefaultPattern,
		"bass pattern: "+strings.Join(bass.PatternNames(), ", "))
	f.BoolVar(&accompanyFlags.noChords, "no-chords", false, "leave out the chord track")
	f.BoolVar(&accompanyFlags.noBass, "no-bass", false, "leave out the bass track")
	f.StringVar(&accompanyFlags.render, "render", "", "also render a WAV here, needs SOUNDFONT_PATH")
}

var accompanyCmd = &cobra.Command{
	Use:   "accompany <melody.mid>",
	Short: "Adds chords and a bass line to a melody",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := melody.DefaultAccompanimentOptions()
		opts.Template = accompanyFlags.template
		opts.Pattern = accompanyFlags.pattern
		opts.AddChords = !accompanyFlags.noChords
		opts.AddBass = !accompanyFlags.noBass

		out := accompanyFlags.out
		if out == "" {
			out = replaceExt(args[0], "_accompanied.mid")
		}
		return accompany(args[0], out, accompanyFlags.render, opts)
	},
}

func accompany(in, out, wavPath string, opts melody.AccompanimentOptions) error {
	file, err := midi.ReadMidiFile(in)
	if err != nil {
		return err
	}
	notes := midi.ReadNotes(file)
	acc, err := melody.Accompany(notes, opts)
	if err != nil {
		return err
	}

	song := arrange(notes, acc, opts)
	if err := writeSong(out, song); err != nil {
		return err
	}
	fmt.Printf("key %s, template %s, %d chords, %d bass notes -> %s\n",
		key.Name(acc.Key), acc.Template, len(acc.Chords), len(acc.Bass), out)
	for _, c := range acc.Chords {
		fmt.Printf("%8.3f %8.3f  %s\n", c.Start, c.End, c.Name)
	}

	if wavPath == "" {
		return nil
	}
	h := render.NewHandle(cfg.SoundFontPath)
	if err := h.Load(); err != nil {
		return errors.Wrap(err, "cannot render audio")
	}
	defer h.Close()

	data, err := renderWAV(h, song)
	if err != nil {
		return err
	}
	if err := os.WriteFile(wavPath, data, 0644); err != nil {
		return errors.Wrap(err, "could not write wav")
	}
	logging.Info("rendered audio", logging.Fields{"path": wavPath, "bytes": len(data)})
	return nil
}
