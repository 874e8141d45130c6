package key

import (
	"math/rand"
	"testing"

	"github.com/jsphweid/hummingbird/model"
	"github.com/stretchr/testify/assert"
)

func notesOf(pitches ...int) []model.Note {
	var res []model.Note
	for i, p := range pitches {
		res = append(res, model.Note{Start: float64(i) * 0.5, End: float64(i+1) * 0.5, Pitch: p})
	}
	return res
}

func TestDetectEmptyDefaultsToC(t *testing.T) {
	assert.Equal(t, 0, Detect(nil))
}

func TestDetectMostCommonPitchClass(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Detect(notesOf(60, 60, 67)))
	assert.Equal(7, Detect(notesOf(55, 67, 79, 60)))
	assert.Equal(9, Detect(notesOf(57, 69, 81, 60, 64)))
}

func TestDetectTieGoesToLowestPitchClass(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, Detect(notesOf(71, 62, 71, 62)))
	assert.Equal(4, Detect(notesOf(76, 64, 67, 79, 68)))
}

func TestDetectIgnoresOrder(t *testing.T) {
	notes := notesOf(60, 62, 64, 65, 67, 67, 69, 71, 72, 74, 67, 62)
	want := Detect(notes)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]model.Note(nil), notes...)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		assert.Equal(t, want, Detect(shuffled))
	}
	assert.Equal(t, 2, want)
}

func TestHistogram(t *testing.T) {
	hist := Histogram(notesOf(60, 72, 61))
	assert.Equal(t, 2.0, hist[0])
	assert.Equal(t, 1.0, hist[1])
	assert.Equal(t, 3.0, hist[0]+hist[1]+hist[2])
}

func TestName(t *testing.T) {
	assert.Equal(t, "F#", Name(6))
}
