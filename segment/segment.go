package segment

import (
	"math"

	"github.com/jsphweid/hummingbird/errs"
	"github.com/jsphweid/hummingbird/model"
	"github.com/jsphweid/hummingbird/pitch"
)

const (
	DefaultMinNoteDuration = 0.1
	DefaultPitchTolerance  = 1
	MaxPitchTolerance      = 12
)

type Config struct {
	// MinNoteDuration is in seconds. Shorter notes are dropped, not merged.
	MinNoteDuration float64
	// PitchTolerance is the number of semitones a frame may drift from the pitch the
	// note opened with before a new note starts.
	PitchTolerance int
}

func DefaultConfig() Config {
	return Config{
		MinNoteDuration: DefaultMinNoteDuration,
		PitchTolerance:  DefaultPitchTolerance,
	}
}

func (c Config) Validate() error {
	if c.MinNoteDuration < 0 || math.IsNaN(c.MinNoteDuration) || math.IsInf(c.MinNoteDuration, 0) {
		return errs.NewConfigError("min_note_duration", c.MinNoteDuration, "must be a finite number >= 0")
	}
	if c.PitchTolerance < 0 || c.PitchTolerance > MaxPitchTolerance {
		return errs.NewConfigError("pitch_tolerance", c.PitchTolerance, "must be between 0 and 12 semitones")
	}
	return nil
}

// segmenter is the Silent / Sounding(pitch) state machine. sounding is false while
// Silent; pitch and start describe the open note otherwise.
type segmenter struct {
	cfg      Config
	sounding bool
	pitch    int
	start    float64
	notes    []model.Note
}

func (s *segmenter) open(t float64, p int) {
	s.sounding = true
	s.pitch = p
	s.start = t
}

func (s *segmenter) close(t float64) {
	if t-s.start >= s.cfg.MinNoteDuration && t > s.start {
		s.notes = append(s.notes, model.Note{Start: s.start, End: t, Pitch: s.pitch})
	}
	s.sounding = false
}

func (s *segmenter) step(t float64, f float64) {
	if !pitch.Voiced(f) {
		if s.sounding {
			s.close(t)
		}
		return
	}

	p := pitch.FrequencyToMidi(f)
	switch {
	case !s.sounding:
		s.open(t, p)
	case abs(p-s.pitch) > s.cfg.PitchTolerance:
		s.close(t)
		s.open(t, p)
	}
}

// Segment turns a (smoothed) frequency contour into chronological, non-overlapping notes.
func Segment(times []float64, freq []float64, cfg Config) ([]model.Note, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(times) != len(freq) {
		return nil, errs.NewConfigError("times", len(times), "must have one time stamp per frequency frame")
	}

	notes := make([]model.Note, 0)
	if len(freq) == 0 {
		return notes, nil
	}

	s := segmenter{cfg: cfg, notes: notes}
	for i, f := range freq {
		s.step(times[i], f)
	}
	if s.sounding {
		s.close(times[len(times)-1])
	}
	return s.notes, nil
}

// Expand renders notes back into a flat contour of n frames spaced hop seconds apart.
// Frames whose time falls inside [Start, End) carry the note's frequency.
func Expand(notes []model.Note, hop float64, n int) (times []float64, freq []float64) {
	times = make([]float64, n)
	freq = make([]float64, n)
	for i := range times {
		times[i] = float64(i) * hop
	}

	for _, note := range notes {
		f := pitch.MidiToFrequency(note.Pitch)
		first := int(math.Ceil(note.Start/hop - 1e-9))
		for i := max(first, 0); i < n && times[i] < note.End-1e-9; i++ {
			freq[i] = f
		}
	}
	return times, freq
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
