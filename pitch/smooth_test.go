package pitch

import (
	"math"
	"testing"

	"github.com/jsphweid/hummingbird/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothLeavesSilenceUntouched(t *testing.T) {
	freq := []float64{220, 0, 225, 440, 440}
	conf := []float64{0.9, 0, 0.9, 0.9, 0.9}

	res, err := Smooth(freq, conf, 3)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(res, len(freq))
	assert.Equal(220.0, res[0])
	assert.Equal(0.0, res[1])
	assert.InDelta(332.5, res[2], 1e-9)
	assert.InDelta((225.0+440+440)/3, res[3], 1e-9)
	assert.Equal(440.0, res[4])
}

func TestSmoothDoesNotMutateInput(t *testing.T) {
	freq := []float64{200, 300, 400}
	conf := []float64{1, 1, 1}

	_, err := Smooth(freq, conf, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{200, 300, 400}, freq)
}

func TestSmoothIgnoresLowConfidenceNeighbours(t *testing.T) {
	freq := []float64{220, 880, 220}
	conf := []float64{0.9, 0.5, 0.9}

	res, err := Smooth(freq, conf, 3)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(220.0, res[0])
	// the octave error itself has low confidence, so only its neighbours count
	assert.Equal(220.0, res[1])
	assert.Equal(220.0, res[2])
}

func TestSmoothKeepsValueWhenNothingQualifies(t *testing.T) {
	res, err := Smooth([]float64{300, 310}, []float64{0.2, 0.3}, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{300, 310}, res)
}

func TestSmoothWindowOfOneIsIdentity(t *testing.T) {
	freq := []float64{100, 0, 200}
	res, err := Smooth(freq, []float64{1, 0, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, freq, res)
}

func TestSmoothEmpty(t *testing.T) {
	res, err := Smooth(nil, nil, 5)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSmoothRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		freq   []float64
		conf   []float64
		window int
	}{
		{"zero window", []float64{1}, []float64{1}, 0},
		{"negative window", []float64{1}, []float64{1}, -3},
		{"even window", []float64{1}, []float64{1}, 4},
		{"length mismatch", []float64{1, 2}, []float64{1}, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Smooth(c.freq, c.conf, c.window)
			assert.ErrorIs(t, err, errs.ErrInvalidConfig)
		})
	}
}

func TestSmoothWindowWiderThanContour(t *testing.T) {
	for _, window := range []int{1<<40 + 1, 1<<46 + 1, math.MaxInt} {
		res, err := Smooth([]float64{440, 441}, []float64{0.9, 0.9}, window)
		require.NoError(t, err)
		assert.Equal(t, []float64{440.5, 440.5}, res)
	}
}
