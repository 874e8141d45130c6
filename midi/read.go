package midi

import (
	"sort"

	"github.com/jsphweid/hummingbird/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Track struct {
	Index   int
	Channel uint8
	Notes   []model.Note
}

type reducedEvent struct {
	offset    int64
	isNoteOff bool
	channel   uint8
	note      uint8
}

func reduceTrack(s *smf.SMF, events smf.Track) []reducedEvent {
	var res []reducedEvent
	var absTicks int64
	for _, event := range events {
		absTicks += int64(event.Delta)
		var channel, key, velocity uint8
		switch {
		case event.Message.GetNoteOn(&channel, &key, &velocity):
			res = append(res, reducedEvent{
				offset:    s.TimeAt(absTicks),
				isNoteOff: velocity == 0,
				channel:   channel,
				note:      key,
			})
		case event.Message.GetNoteOff(&channel, &key, &velocity):
			res = append(res, reducedEvent{
				offset:    s.TimeAt(absTicks),
				isNoteOff: true,
				channel:   channel,
				note:      key,
			})
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].offset != res[j].offset {
			return res[i].offset < res[j].offset
		}
		return res[i].isNoteOff && !res[j].isNoteOff
	})
	return res
}

// ReadTracks pairs note on/off events per track. Times come back in seconds.
// Tracks without notes are skipped.
func ReadTracks(s *smf.SMF) []Track {
	var tracks []Track
	for i, events := range s.Tracks {
		t := Track{Index: i}
		pressed := make(map[[2]uint8]int64)
		for _, evt := range reduceTrack(s, events) {
			id := [2]uint8{evt.channel, evt.note}
			if !evt.isNoteOff {
				if _, ok := pressed[id]; !ok {
					pressed[id] = evt.offset
				}
				t.Channel = evt.channel
				continue
			}
			start, ok := pressed[id]
			if !ok {
				continue
			}
			delete(pressed, id)
			if evt.offset > start {
				t.Notes = append(t.Notes, model.Note{
					Start: micros(start),
					End:   micros(evt.offset),
					Pitch: int(evt.note),
				})
			}
		}
		if len(t.Notes) == 0 {
			continue
		}
		sort.SliceStable(t.Notes, func(i, j int) bool {
			return t.Notes[i].Start < t.Notes[j].Start
		})
		tracks = append(tracks, t)
	}
	return tracks
}

// ReadNotes returns the melody of a file, which is the first track that has notes.
func ReadNotes(s *smf.SMF) []model.Note {
	tracks := ReadTracks(s)
	if len(tracks) == 0 {
		return []model.Note{}
	}
	return tracks[0].Notes
}

// GroupByOnset collects notes starting at the same time, which is how chord tracks
// are laid out. Keys are start offsets in milliseconds.
func GroupByOnset(notes []model.Note) map[int64][]int {
	res := make(map[int64][]int)
	for _, n := range notes {
		ms := int64(n.Start*1000 + 0.5)
		res[ms] = append(res[ms], n.Pitch)
	}
	return res
}

func micros(us int64) float64 {
	return float64(us) / 1e6
}
