package pitch

import (
	"gonum.org/v1/gonum/stat"

	"github.com/jsphweid/hummingbird/errs"
)

// MinConfidence is the confidence a neighbour needs to take part in the average.
const MinConfidence = 0.5

// Smooth replaces every voiced frame with the mean of the confident, voiced frames in a
// centered window of the given odd size. Unvoiced frames stay at 0 so that note
// boundaries are not smeared into silence.
func Smooth(freq []float64, conf []float64, window int) ([]float64, error) {
	if window <= 0 || window%2 == 0 {
		return nil, errs.NewConfigError("smooth_window", window, "must be a positive odd number")
	}
	if len(freq) != len(conf) {
		return nil, errs.NewConfigError("confidence", len(conf), "must have one value per frequency frame")
	}

	smoothed := make([]float64, len(freq))
	copy(smoothed, freq)

	half := window / 2
	selected := make([]float64, 0, min(window, len(freq)))
	for i, f := range freq {
		if !Voiced(f) {
			continue
		}
		start := max(0, i-half)
		end := min(len(freq), i+half+1)

		selected = selected[:0]
		for j := start; j < end; j++ {
			if Voiced(freq[j]) && conf[j] > MinConfidence {
				selected = append(selected, freq[j])
			}
		}
		if len(selected) > 0 {
			smoothed[i] = stat.Mean(selected, nil)
		}
	}
	return smoothed, nil
}
