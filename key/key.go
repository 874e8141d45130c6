package key

import (
	"gonum.org/v1/gonum/floats"

	"github.com/jsphweid/hummingbird/model"
	"github.com/jsphweid/hummingbird/pitch"
)

// Default is returned for an empty melody.
const Default = 0

func Histogram(notes []model.Note) [12]float64 {
	var hist [12]float64
	for _, n := range notes {
		hist[((n.Pitch%12)+12)%12]++
	}
	return hist
}

// Detect returns the most frequent pitch class of the melody as its tonic. Ties go to
// the lowest pitch class.
func Detect(notes []model.Note) int {
	if len(notes) == 0 {
		return Default
	}
	hist := Histogram(notes)
	return floats.MaxIdx(hist[:])
}

func Name(k int) string {
	return pitch.PitchClassName(k)
}
