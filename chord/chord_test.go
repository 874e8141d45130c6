package chord

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/jsphweid/hummingbird/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioNotes() []model.Note {
	return []model.Note{
		{Start: 0.0, End: 0.5, Pitch: 60},
		{Start: 0.5, End: 1.0, Pitch: 60},
		{Start: 1.0, End: 1.5, Pitch: 67},
	}
}

func TestPopProgressionInC(t *testing.T) {
	progression := Generate(scenarioNotes(), "pop", 4)
	require.Len(t, progression, 4)

	assert := assert.New(t)
	want := []struct {
		start, end float64
		pitches    []int
		name       string
	}{
		{0, 0.375, []int{48, 52, 55}, "C"},
		{0.375, 0.75, []int{57, 60, 64}, "Am"},
		{0.75, 1.125, []int{53, 57, 60}, "F"},
		{1.125, 1.5, []int{55, 59, 62}, "G"},
	}
	for i, w := range want {
		assert.InDelta(w.start, progression[i].Start, 1e-12)
		assert.InDelta(w.end, progression[i].End, 1e-12)
		assert.Equal(w.pitches, progression[i].Pitches)
		assert.Equal(w.name, progression[i].Name)
	}
}

func TestUnknownTemplateFallsBackToSimple(t *testing.T) {
	unknown := Generate(scenarioNotes(), "bossa nova", 4)
	simple := Generate(scenarioNotes(), "simple", 4)

	assert := assert.New(t)
	assert.Equal(simple, unknown)
	assert.Equal("C", unknown[0].Name)
	assert.Equal("G", unknown[1].Name)
	assert.Equal("Am", unknown[2].Name)
	assert.Equal("C", unknown[3].Name)
}

func TestEmptyMelodyGivesEmptyProgression(t *testing.T) {
	progression := Generate(nil, "pop", 4)
	assert.NotNil(t, progression)
	assert.Empty(t, progression)
}

func TestBarsDoNotAffectTiming(t *testing.T) {
	assert.Equal(t, Generate(scenarioNotes(), "jazz", 4), Generate(scenarioNotes(), "jazz", 16))
}

func TestProgressionTilesMelody(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, name := range TemplateNames() {
		for trial := 0; trial < 25; trial++ {
			t.Run(fmt.Sprintf("%s/%d", name, trial), func(t *testing.T) {
				var notes []model.Note
				var cursor float64
				for i := 0; i < 1+r.Intn(12); i++ {
					cursor += r.Float64() * 0.3
					dur := 0.05 + r.Float64()
					notes = append(notes, model.Note{Start: cursor, End: cursor + dur, Pitch: 40 + r.Intn(40)})
					cursor += dur
				}

				progression := Generate(notes, name, 4)
				tmpl, ok := LookupTemplate(name)
				require.True(t, ok)

				assert := assert.New(t)
				assert.Len(progression, len(tmpl.Degrees))
				assert.Equal(0.0, progression[0].Start)
				assert.Equal(notes[len(notes)-1].End, progression[len(progression)-1].End)
				for i := 1; i < len(progression); i++ {
					assert.Equal(progression[i-1].End, progression[i].Start)
				}
				for _, c := range progression {
					assert.Greater(c.End, c.Start)
					for j := 1; j < len(c.Pitches); j++ {
						assert.GreaterOrEqual(c.Pitches[j], c.Pitches[j-1])
					}
				}
			})
		}
	}
}

func TestRootsFollowDetectedKey(t *testing.T) {
	// D is the most common pitch class
	notes := []model.Note{
		{Start: 0, End: 1, Pitch: 62},
		{Start: 1, End: 2, Pitch: 74},
		{Start: 2, End: 3, Pitch: 66},
	}
	progression := Generate(notes, "pop", 4)

	names := make([]string, 0, len(progression))
	for _, c := range progression {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"D", "Bm", "G", "A"}, names)
}

func TestStack(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{48, 52, 55}, Stack(0, Major))
	assert.Equal([]int{57, 60, 64}, Stack(9, Minor))
	assert.Equal([]int{55, 59, 62, 65}, Stack(7, Seventh))
	assert.Equal([]int{59, 63, 66}, Stack(-1, Major))
	assert.Equal("G7", Name(Stack(7, Seventh)))
}

func TestQualityForDegree(t *testing.T) {
	want := []Quality{Major, Minor, Minor, Major, Major, Minor, Minor}
	for degree, q := range want {
		assert.Equal(t, q, QualityForDegree(degree), "degree %d", degree)
	}
}

func TestParseQuality(t *testing.T) {
	q, ok := ParseQuality("seventh")
	assert.True(t, ok)
	assert.Equal(t, Seventh, q)

	_, ok = ParseQuality("diminished")
	assert.False(t, ok)
}

func TestCreateChordKeyDoesNotReorderInput(t *testing.T) {
	pitches := []int{67, 60, 64}
	assert.Equal(t, "60-64-67", CreateChordKey(pitches))
	assert.Equal(t, []int{67, 60, 64}, pitches)
}
