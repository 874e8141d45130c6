package midi

import (
	"bytes"
	"io"
	"math"
	"sort"

	"github.com/jsphweid/hummingbird/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	DefaultTempo    = 120
	TicksPerQuarter = 480
	AcousticGrand   = 0
	AcousticBass    = 32
	MelodyVelocity  = 80
	ChordVelocity   = 60
	BassVelocity    = 70
	melodyChannel   = 0
	chordChannel    = 1
	bassChannel     = 2
)

// Voice is one track of a song: a channel, a GM program and its notes.
type Voice struct {
	Name     string
	Channel  uint8
	Program  uint8
	Velocity uint8
	Notes    []model.Note
}

// Song is everything needed to write a multi-track file.
type Song struct {
	Tempo  float64
	Voices []Voice
}

func NewSong(melody []model.Note) *Song {
	return &Song{
		Tempo: DefaultTempo,
		Voices: []Voice{{
			Name:     "Melody",
			Channel:  melodyChannel,
			Program:  AcousticGrand,
			Velocity: MelodyVelocity,
			Notes:    melody,
		}},
	}
}

// AddChords flattens every chord into one note per pitch on the chord channel.
func (s *Song) AddChords(progression model.Progression) {
	var notes []model.Note
	for _, c := range progression {
		for _, p := range c.Pitches {
			notes = append(notes, model.Note{Start: c.Start, End: c.End, Pitch: p})
		}
	}
	s.Voices = append(s.Voices, Voice{
		Name:     "Chords",
		Channel:  chordChannel,
		Program:  AcousticGrand,
		Velocity: ChordVelocity,
		Notes:    notes,
	})
}

func (s *Song) AddBass(line model.BassLine) {
	notes := make([]model.Note, 0, len(line))
	for _, b := range line {
		notes = append(notes, model.Note{Start: b.Start, End: b.End, Pitch: b.Pitch})
	}
	s.Voices = append(s.Voices, Voice{
		Name:     "Bass",
		Channel:  bassChannel,
		Program:  AcousticBass,
		Velocity: BassVelocity,
		Notes:    notes,
	})
}

type tickEvent struct {
	tick  uint32
	isOff bool
	key   uint8
}

func secondsToTicks(sec float64, tempo float64) uint32 {
	if sec <= 0 {
		return 0
	}
	return uint32(math.Round(sec * tempo / 60 * TicksPerQuarter))
}

func buildTrack(v Voice, tempo float64, withTempo bool) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(v.Name))
	if withTempo {
		tr.Add(0, smf.MetaTempo(tempo))
	}
	tr.Add(0, midi.ProgramChange(v.Channel, v.Program))

	var events []tickEvent
	for _, n := range v.Notes {
		if n.Pitch < 0 || n.Pitch > 127 {
			continue
		}
		on, off := secondsToTicks(n.Start, tempo), secondsToTicks(n.End, tempo)
		if off <= on {
			continue
		}
		events = append(events,
			tickEvent{tick: on, key: uint8(n.Pitch)},
			tickEvent{tick: off, isOff: true, key: uint8(n.Pitch)},
		)
	}
	// note offs go first so a repeated key can retrigger on the same tick
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].isOff && !events[j].isOff
	})

	var last uint32
	for _, e := range events {
		delta := e.tick - last
		last = e.tick
		if e.isOff {
			tr.Add(delta, midi.NoteOff(v.Channel, e.key))
		} else {
			tr.Add(delta, midi.NoteOn(v.Channel, e.key, v.Velocity))
		}
	}
	tr.Close(0)
	return tr
}

func (s *Song) SMF() (*smf.SMF, error) {
	tempo := s.Tempo
	if tempo <= 0 {
		tempo = DefaultTempo
	}

	res := smf.New()
	res.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	for i, v := range s.Voices {
		if err := res.Add(buildTrack(v, tempo, i == 0)); err != nil {
			return nil, errors.Wrapf(err, "could not add %s track", v.Name)
		}
	}
	return res, nil
}

func (s *Song) WriteTo(w io.Writer) (int64, error) {
	file, err := s.SMF()
	if err != nil {
		return 0, err
	}
	n, err := file.WriteTo(w)
	if err != nil {
		return n, errors.Wrap(err, "could not write midi")
	}
	return n, nil
}

func (s *Song) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
