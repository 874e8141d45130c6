package pitch

import (
	"fmt"
	"math"

	"github.com/jsphweid/hummingbird/util"
)

const (
	A4Frequency = 440.0
	A4Midi      = 69

	MinMidi = 0
	MaxMidi = 127
)

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// FrequencyToMidi returns the nearest MIDI note for f, clamped to 0..127.
// Unvoiced frames (f <= 0) and non-finite values map to 0.
func FrequencyToMidi(f float64) int {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return MinMidi
	}
	n := int(math.Round(A4Midi + 12*math.Log2(f/A4Frequency)))
	return util.Clamp(n, MinMidi, MaxMidi)
}

// Voiced reports whether a contour frequency carries a usable pitch.
func Voiced(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

func MidiToFrequency(n int) float64 {
	return A4Frequency * math.Pow(2, float64(n-A4Midi)/12)
}

func PitchClassName(pc int) string {
	return noteNames[((pc%12)+12)%12]
}

// NoteName renders a MIDI number the standard way, 60 -> C4, 69 -> A4.
func NoteName(n int) string {
	return fmt.Sprintf("%s%d", PitchClassName(n), n/12-1)
}
