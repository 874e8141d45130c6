package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/hummingbird/key"
	"github.com/jsphweid/hummingbird/model"
	"github.com/jsphweid/hummingbird/pitch"
)

// Generate lays the template over the melody, one equal slot per degree across
// [0, end of the last note]. bars is informational only, timing always follows the
// melody.
func Generate(notes []model.Note, templateName string, bars int) model.Progression {
	progression := make(model.Progression, 0)
	if len(notes) == 0 {
		return progression
	}

	k := key.Detect(notes)
	t := ResolveTemplate(templateName)
	total := notes[len(notes)-1].End
	slot := total / float64(len(t.Degrees))

	for i, degree := range t.Degrees {
		c := model.Chord{
			Start:   float64(i) * slot,
			End:     float64(i+1) * slot,
			Pitches: Stack(DegreeRoot(k, degree), QualityForDegree(degree)),
		}
		if i > 0 {
			c.Start = progression[i-1].End
		}
		if i == len(t.Degrees)-1 {
			c.End = total
		}
		c.Name = Name(c.Pitches)
		progression = append(progression, c)
	}
	return progression
}

// Name renders a chord label like C, Am or G7.
func Name(pitches []int) string {
	if len(pitches) == 0 {
		return ""
	}
	root := pitch.PitchClassName(pitches[0])
	switch QualityOf(pitches) {
	case Minor:
		return root + "m"
	case Seventh:
		return root + "7"
	default:
		return root
	}
}

// CreateChordKey builds a stable key such as "48-52-55" for a set of pitches,
// regardless of their order.
func CreateChordKey(pitches []int) string {
	sorted := append([]int(nil), pitches...)
	sort.Ints(sorted)
	var res string
	for i, p := range sorted {
		res += fmt.Sprintf("%v", p)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}
