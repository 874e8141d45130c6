package melody

import (
	"math"

	"github.com/jsphweid/hummingbird/errs"
	"github.com/jsphweid/hummingbird/key"
	"github.com/jsphweid/hummingbird/model"
	"github.com/jsphweid/hummingbird/pitch"
	"github.com/jsphweid/hummingbird/segment"
	"github.com/jsphweid/hummingbird/util"
)

const (
	DefaultSmoothWindow        = 5
	DefaultConfidenceThreshold = 0.5
)

type Config struct {
	SmoothWindow int
	// ConfidenceThreshold is handed to the pitch estimator, frames below it arrive
	// with frequency 0.
	ConfidenceThreshold float64
	Segment             segment.Config
}

func DefaultConfig() Config {
	return Config{
		SmoothWindow:        DefaultSmoothWindow,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		Segment:             segment.DefaultConfig(),
	}
}

func (c Config) Validate() error {
	if c.SmoothWindow <= 0 || c.SmoothWindow%2 == 0 {
		return errs.NewConfigError("smooth_window", c.SmoothWindow, "must be a positive odd number")
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 || math.IsNaN(c.ConfidenceThreshold) {
		return errs.NewConfigError("confidence_threshold", c.ConfidenceThreshold, "must be between 0 and 1")
	}
	return c.Segment.Validate()
}

type Melody struct {
	Notes   []model.Note
	Key     int
	KeyName string
	// VoicedFrames counts the frames the estimator reported as pitched.
	VoicedFrames int
}

// Extract runs smoother, segmenter and key detector over one pitch contour.
func Extract(frames []model.PitchFrame, cfg Config) (*Melody, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	times, freq, conf := model.SplitFrames(frames)
	smoothed, err := pitch.Smooth(freq, conf, cfg.SmoothWindow)
	if err != nil {
		return nil, err
	}
	notes, err := segment.Segment(times, smoothed, cfg.Segment)
	if err != nil {
		return nil, err
	}

	k := key.Detect(notes)
	return &Melody{
		Notes:        notes,
		Key:          k,
		KeyName:      key.Name(k),
		VoicedFrames: len(util.FilterZeros(freq)),
	}, nil
}

func Views(notes []model.Note) []model.NoteView {
	res := make([]model.NoteView, 0, len(notes))
	for _, n := range notes {
		res = append(res, model.NoteView{
			Start:    n.Start,
			End:      n.End,
			Pitch:    n.Pitch,
			NoteName: pitch.NoteName(n.Pitch),
			Duration: n.Duration(),
		})
	}
	return res
}
