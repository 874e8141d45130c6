package render

import (
	"encoding/binary"
	"io"
	"math"
	"sort"

	"github.com/jsphweid/hummingbird/midi"
	"github.com/pkg/errors"
	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

const (
	SampleRate = 44100
	blockSize  = 1024
	// tailSamples leaves room for release and reverb after the last note.
	tailSamples = SampleRate

	programChange = 0xC0
)

type synthesizer interface {
	ProcessMidiMessage(channel int32, command int32, data1, data2 int32)
	NoteOn(channel, key, vel int32)
	NoteOff(channel, key int32)
	Render(left, right []float32)
}

// newSynthesizer is swapped out in tests.
var newSynthesizer = func(sf *meltysynth.SoundFont, settings *meltysynth.SynthesizerSettings) (synthesizer, error) {
	return meltysynth.NewSynthesizer(sf, settings)
}

type event struct {
	sample  int
	off     bool
	channel int32
	key     int32
	vel     int32
}

func secondsToSamples(sec float64) int {
	return int(math.Round(sec * SampleRate))
}

func schedule(song *midi.Song) ([]event, int) {
	var events []event
	var maxEnd int
	for _, v := range song.Voices {
		for _, n := range v.Notes {
			start, end := secondsToSamples(n.Start), secondsToSamples(n.End)
			if end <= start {
				continue
			}
			events = append(events,
				event{sample: start, channel: int32(v.Channel), key: int32(n.Pitch), vel: int32(v.Velocity)},
				event{sample: end, off: true, channel: int32(v.Channel), key: int32(n.Pitch)},
			)
			maxEnd = max(maxEnd, end)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].sample != events[j].sample {
			return events[i].sample < events[j].sample
		}
		return events[i].off && !events[j].off
	})
	return events, maxEnd
}

// Render synthesises every voice of the song and returns the left and right channels.
func (h *Handle) Render(song *midi.Song) ([]float32, []float32, error) {
	syn, err := h.synthesizer()
	if err != nil {
		return nil, nil, err
	}
	for _, v := range song.Voices {
		syn.ProcessMidiMessage(int32(v.Channel), programChange, int32(v.Program), 0)
	}

	events, maxEnd := schedule(song)
	total := 0
	if maxEnd > 0 {
		total = maxEnd + tailSamples
	}

	leftAll := make([]float32, 0, total)
	rightAll := make([]float32, 0, total)
	left := make([]float32, blockSize)
	right := make([]float32, blockSize)
	next := 0
	for pos := 0; pos < total; pos += blockSize {
		n := min(blockSize, total-pos)
		for ; next < len(events) && events[next].sample < pos+n; next++ {
			e := events[next]
			if e.off {
				syn.NoteOff(e.channel, e.key)
			} else {
				syn.NoteOn(e.channel, e.key, e.vel)
			}
		}
		syn.Render(left, right)
		leftAll = append(leftAll, left[:n]...)
		rightAll = append(rightAll, right[:n]...)
	}
	return leftAll, rightAll, nil
}

// PCM normalises the channels and interleaves them as 16-bit little endian samples.
func PCM(left, right []float32) []byte {
	var peak float32
	for i := range left {
		peak = max(peak, abs32(left[i]), abs32(right[i]))
	}
	gain := float32(1)
	if peak > 1 {
		gain = 1 / peak
	}

	out := make([]byte, len(left)*4)
	for i := range left {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(toInt16(left[i]*gain)))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(toInt16(right[i]*gain)))
	}
	return out
}

// WriteWAV writes 16-bit stereo PCM as a RIFF/WAVE file.
func WriteWAV(w io.Writer, pcm []byte) error {
	const channels = 2
	const bits = 16
	dataLen := uint32(len(pcm))

	var header [44]byte
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], 36+dataLen)
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 16)
	binary.LittleEndian.PutUint16(header[20:], 1)
	binary.LittleEndian.PutUint16(header[22:], channels)
	binary.LittleEndian.PutUint32(header[24:], SampleRate)
	binary.LittleEndian.PutUint32(header[28:], SampleRate*channels*bits/8)
	binary.LittleEndian.PutUint16(header[32:], channels*bits/8)
	binary.LittleEndian.PutUint16(header[34:], bits)
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], dataLen)

	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(err, "could not write wav header")
	}
	if _, err := w.Write(pcm); err != nil {
		return errors.Wrap(err, "could not write wav data")
	}
	return nil
}

// RenderWAV renders the song and writes it as a WAV file to w.
func (h *Handle) RenderWAV(w io.Writer, song *midi.Song) error {
	left, right, err := h.Render(song)
	if err != nil {
		return err
	}
	return WriteWAV(w, PCM(left, right))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func toInt16(v float32) int16 {
	s := math.Round(float64(v) * math.MaxInt16)
	return int16(math.Max(math.MinInt16, math.Min(math.MaxInt16, s)))
}
