package model

// PitchFrame is one frame of the external pitch estimator's output. A Frequency of 0
// means the frame is unvoiced.
type PitchFrame struct {
	Time       float64 `json:"time"`
	Frequency  float64 `json:"frequency"`
	Confidence float64 `json:"confidence"`
}

type Note struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Pitch int     `json:"pitch"`
}

func (n Note) Duration() float64 {
	return n.End - n.Start
}

// NoteView is the row handed to clients for display.
type NoteView struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Pitch    int     `json:"pitch"`
	NoteName string  `json:"note_name"`
	Duration float64 `json:"duration"`
}

func SplitFrames(frames []PitchFrame) (times, freqs, confs []float64) {
	times = make([]float64, len(frames))
	freqs = make([]float64, len(frames))
	confs = make([]float64, len(frames))
	for i, f := range frames {
		times[i] = f.Time
		freqs[i] = f.Frequency
		confs[i] = f.Confidence
	}
	return times, freqs, confs
}
