package bass

import (
	"sort"

	"github.com/jsphweid/hummingbird/errs"
	"github.com/jsphweid/hummingbird/model"
)

type Pattern string

const (
	Root     Pattern = "root"
	Walking  Pattern = "walking"
	Arpeggio Pattern = "arpeggio"
)

const (
	// Transpose drops the chord stack two octaves into the bass register.
	Transpose = -24
	Fifth     = 7

	maxArpeggioNotes = 4
)

var patterns = map[Pattern]bool{Root: true, Walking: true, Arpeggio: true}

// ParsePattern rejects anything that is not a known pattern. There is no default:
// an unrecognised name is a caller error.
func ParsePattern(name string) (Pattern, error) {
	p := Pattern(name)
	if !patterns[p] {
		return "", &errs.ConfigError{
			Field:  "bass_pattern",
			Value:  name,
			Reason: "must be one of root, walking, arpeggio",
			Cause:  errs.ErrUnknownPattern,
		}
	}
	return p, nil
}

func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for p := range patterns {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// Generate derives the bass line for a progression. It returns an error wrapping
// errs.ErrUnknownPattern for an unrecognised pattern, even when the progression is empty.
func Generate(progression model.Progression, patternName string) (model.BassLine, error) {
	p, err := ParsePattern(patternName)
	if err != nil {
		return nil, err
	}

	line := make(model.BassLine, 0, len(progression))
	for _, c := range progression {
		if len(c.Pitches) == 0 {
			continue
		}
		switch p {
		case Root:
			line = append(line, model.BassNote{Start: c.Start, End: c.End, Pitch: c.Root() + Transpose})
		case Walking:
			root := c.Root() + Transpose
			line = append(line, subdivide(c, []int{root, root + Fifth})...)
		case Arpeggio:
			count := min(maxArpeggioNotes, len(c.Pitches))
			pitches := make([]int, count)
			for i := range pitches {
				pitches[i] = c.Pitches[i%len(c.Pitches)] + Transpose
			}
			line = append(line, subdivide(c, pitches)...)
		}
	}
	return line, nil
}

// subdivide splits the chord span into len(pitches) equal notes. The last note ends
// exactly on the chord boundary.
func subdivide(c model.Chord, pitches []int) []model.BassNote {
	step := c.Duration() / float64(len(pitches))
	res := make([]model.BassNote, len(pitches))
	start := c.Start
	for i, p := range pitches {
		end := c.Start + float64(i+1)*step
		if i == len(pitches)-1 {
			end = c.End
		}
		res[i] = model.BassNote{Start: start, End: end, Pitch: p}
		start = end
	}
	return res
}
