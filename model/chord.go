package model

type Pitches = []int

// Chord is a stacked triad or tetrad sounding over [Start, End). Pitches[0] is the root
// and the stack is always ascending.
type Chord struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Pitches Pitches `json:"pitches"`

	// NOTE: display only, not used by the bass generator
	Name string `json:"name,omitempty"`
}

func (c Chord) Duration() float64 {
	return c.End - c.Start
}

func (c Chord) Root() int {
	return c.Pitches[0]
}

// Progression tiles [0, total] with no gaps, each chord's End equals the next Start.
type Progression = []Chord

type BassNote struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Pitch int     `json:"pitch"`
}

func (b BassNote) Duration() float64 {
	return b.End - b.Start
}

type BassLine = []BassNote

func ProgressionDuration(p Progression) float64 {
	var total float64
	for _, c := range p {
		total += c.Duration()
	}
	return total
}

func BassLineDuration(b BassLine) float64 {
	var total float64
	for _, n := range b {
		total += n.Duration()
	}
	return total
}
