package chord

import "sort"

// DefaultTemplate is used whenever a template name is not recognised.
const DefaultTemplate = "simple"

// MajorScale holds the semitone offsets of the seven major scale degrees.
var MajorScale = []int{0, 2, 4, 5, 7, 9, 11}

type Template struct {
	Name    string
	Degrees []int
}

var templates = map[string]Template{
	"pop":    {Name: "pop", Degrees: []int{0, 5, 3, 4}},
	"jazz":   {Name: "jazz", Degrees: []int{0, 3, 4, 5}},
	"blues":  {Name: "blues", Degrees: []int{0, 0, 4, 4, 0, 0, 5, 4, 0, 0}},
	"simple": {Name: "simple", Degrees: []int{0, 4, 5, 0}},
}

func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

// ResolveTemplate never fails, unknown names fall back to DefaultTemplate.
func ResolveTemplate(name string) Template {
	if t, ok := templates[name]; ok {
		return t
	}
	return templates[DefaultTemplate]
}

func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DegreeRoot returns the pitch class of the given scale degree in key.
func DegreeRoot(key int, degree int) int {
	return (key + MajorScale[degree%7]) % 12
}
