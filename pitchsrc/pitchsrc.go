package pitchsrc

import (
	"context"

	"github.com/jsphweid/hummingbird/model"
)

// Estimator produces the per-frame pitch contour of an audio file. Frames whose
// confidence is below threshold come back with frequency 0.
type Estimator interface {
	Estimate(ctx context.Context, audioPath string, threshold float64) ([]model.PitchFrame, error)
}

// ApplyThreshold zeroes the frequency of every frame below threshold, in place.
func ApplyThreshold(frames []model.PitchFrame, threshold float64) []model.PitchFrame {
	for i := range frames {
		if frames[i].Confidence < threshold {
			frames[i].Frequency = 0
		}
	}
	return frames
}
