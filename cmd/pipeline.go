package cmd

import (
	"bytes"

	"github.com/jsphweid/hummingbird/melody"
	"github.com/jsphweid/hummingbird/midi"
	"github.com/jsphweid/hummingbird/model"
	"github.com/jsphweid/hummingbird/render"
)

// arrange turns a melody and its accompaniment into a song, skipping disabled tracks.
func arrange(notes []model.Note, acc *melody.Accompaniment, opts melody.AccompanimentOptions) *midi.Song {
	song := midi.NewSong(notes)
	if acc == nil {
		return song
	}
	if opts.AddChords {
		song.AddChords(acc.Chords)
	}
	if opts.AddBass {
		song.AddBass(acc.Bass)
	}
	return song
}

// renderWAV returns nil, nil when no renderer is loaded so callers can still hand out
// the MIDI file.
func renderWAV(h *render.Handle, song *midi.Song) ([]byte, error) {
	if h == nil || !h.Ready() {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := h.RenderWAV(&buf, song); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
