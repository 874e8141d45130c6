package bass

import (
	"testing"

	"github.com/jsphweid/hummingbird/chord"
	"github.com/jsphweid/hummingbird/errs"
	"github.com/jsphweid/hummingbird/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progression() model.Progression {
	return model.Progression{
		{Start: 0, End: 1, Pitches: chord.Stack(0, chord.Major)},
		{Start: 1, End: 2, Pitches: chord.Stack(9, chord.Minor)},
		{Start: 2, End: 3.5, Pitches: chord.Stack(7, chord.Seventh)},
	}
}

func TestRootPattern(t *testing.T) {
	line, err := Generate(progression(), "root")
	require.NoError(t, err)

	assert.Equal(t, model.BassLine{
		{Start: 0, End: 1, Pitch: 24},
		{Start: 1, End: 2, Pitch: 33},
		{Start: 2, End: 3.5, Pitch: 31},
	}, line)
}

func TestWalkingPattern(t *testing.T) {
	line, err := Generate(progression()[:1], "walking")
	require.NoError(t, err)

	assert.Equal(t, model.BassLine{
		{Start: 0, End: 0.5, Pitch: 24},
		{Start: 0.5, End: 1, Pitch: 31},
	}, line)
}

func TestArpeggioPattern(t *testing.T) {
	line, err := Generate(progression(), "arpeggio")
	require.NoError(t, err)
	require.Len(t, line, 3+3+4)

	assert := assert.New(t)
	var pitches []int
	for _, n := range line {
		pitches = append(pitches, n.Pitch)
	}
	assert.Equal([]int{24, 28, 31, 33, 36, 40, 31, 35, 38, 41}, pitches)
	assert.InDelta(1.0/3, line[0].End, 1e-12)
	assert.Equal(1.0, line[2].End)
	assert.Equal(2.375, line[6].End)
	assert.Equal(3.5, line[9].End)
}

func TestBassStaysAnOctaveBelowChordRoot(t *testing.T) {
	for _, name := range PatternNames() {
		line, err := Generate(progression(), name)
		require.NoError(t, err)
		for _, n := range line {
			for _, c := range progression() {
				if n.Start >= c.Start && n.Start < c.End {
					assert.LessOrEqual(t, n.Pitch, c.Root()-12, "pattern %s", name)
				}
			}
		}
	}
}

func TestDurationsSumToProgression(t *testing.T) {
	notes := []model.Note{
		{Start: 0.1, End: 0.7, Pitch: 62},
		{Start: 0.7, End: 1.9, Pitch: 66},
		{Start: 2.0, End: 3.3, Pitch: 69},
	}
	for _, tmpl := range chord.TemplateNames() {
		p := chord.Generate(notes, tmpl, 4)
		for _, name := range PatternNames() {
			t.Run(tmpl+"/"+name, func(t *testing.T) {
				line, err := Generate(p, name)
				require.NoError(t, err)

				assert := assert.New(t)
				assert.InDelta(model.ProgressionDuration(p), model.BassLineDuration(line), 1e-9)
				assert.Equal(p[0].Start, line[0].Start)
				assert.Equal(p[len(p)-1].End, line[len(line)-1].End)
				for i := 1; i < len(line); i++ {
					assert.Equal(line[i-1].End, line[i].Start)
				}
			})
		}
	}
}

func TestEmptyProgression(t *testing.T) {
	line, err := Generate(model.Progression{}, "walking")
	require.NoError(t, err)
	assert.NotNil(t, line)
	assert.Empty(t, line)
}

func TestUnknownPatternIsRejected(t *testing.T) {
	for _, p := range []model.Progression{progression(), nil} {
		line, err := Generate(p, "bossa")

		assert := assert.New(t)
		assert.Nil(line)
		assert.ErrorIs(err, errs.ErrUnknownPattern)
		assert.ErrorIs(err, errs.ErrInvalidConfig)
	}
}

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern("arpeggio")
	require.NoError(t, err)
	assert.Equal(t, Arpeggio, p)

	_, err = ParsePattern("Root")
	assert.ErrorIs(t, err, errs.ErrUnknownPattern)
}
