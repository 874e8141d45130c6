package chord

import "fmt"

type Quality int

const (
	Major Quality = iota
	Minor
	Seventh
)

// BaseOctave places every chord stack at MIDI 48 + root.
const BaseOctave = 4

var intervals = map[Quality][]int{
	Major:   {0, 4, 7},
	Minor:   {0, 3, 7},
	Seventh: {0, 4, 7, 10},
}

func (q Quality) String() string {
	switch q {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Seventh:
		return "seventh"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

func ParseQuality(s string) (Quality, bool) {
	for q := range intervals {
		if q.String() == s {
			return q, true
		}
	}
	return Major, false
}

// Stack returns the close, ascending voicing of a chord on pitch class root.
func Stack(root int, q Quality) []int {
	iv, ok := intervals[q]
	if !ok {
		iv = intervals[Major]
	}
	base := BaseOctave*12 + ((root%12)+12)%12
	res := make([]int, len(iv))
	for i, v := range iv {
		res[i] = base + v
	}
	return res
}

// QualityForDegree is a fixed heuristic: I, IV and V are major, everything else minor.
func QualityForDegree(degree int) Quality {
	switch degree {
	case 0, 3, 4:
		return Major
	default:
		return Minor
	}
}

// QualityOf reads the quality back from a stack built by Stack.
func QualityOf(pitches []int) Quality {
	if len(pitches) == 4 {
		return Seventh
	}
	if len(pitches) >= 2 && pitches[1]-pitches[0] == 3 {
		return Minor
	}
	return Major
}
