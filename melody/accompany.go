package melody

import (
	"github.com/jsphweid/hummingbird/bass"
	"github.com/jsphweid/hummingbird/chord"
	"github.com/jsphweid/hummingbird/key"
	"github.com/jsphweid/hummingbird/model"
)

const (
	DefaultTemplate = "pop"
	DefaultPattern  = string(bass.Root)
	DefaultBars     = 4
)

type AccompanimentOptions struct {
	// Template names a chord template, unknown names fall back to chord.DefaultTemplate.
	Template string
	// Pattern must be a known bass pattern, see bass.ParsePattern.
	Pattern   string
	Bars      int
	AddChords bool
	AddBass   bool
}

func DefaultAccompanimentOptions() AccompanimentOptions {
	return AccompanimentOptions{
		Template:  DefaultTemplate,
		Pattern:   DefaultPattern,
		Bars:      DefaultBars,
		AddChords: true,
		AddBass:   true,
	}
}

type Accompaniment struct {
	Key      int
	Template string
	Pattern  string
	Chords   model.Progression
	Bass     model.BassLine
}

// Accompany builds chords and bass for an existing melody. The bass pattern is
// checked before anything is generated.
func Accompany(notes []model.Note, opts AccompanimentOptions) (*Accompaniment, error) {
	if _, err := bass.ParsePattern(opts.Pattern); err != nil {
		return nil, err
	}

	progression := chord.Generate(notes, opts.Template, opts.Bars)
	line, err := bass.Generate(progression, opts.Pattern)
	if err != nil {
		return nil, err
	}

	a := &Accompaniment{
		Key:      key.Detect(notes),
		Template: chord.ResolveTemplate(opts.Template).Name,
		Pattern:  opts.Pattern,
		Chords:   model.Progression{},
		Bass:     model.BassLine{},
	}
	if opts.AddChords {
		a.Chords = progression
	}
	if opts.AddBass {
		a.Bass = line
	}
	return a, nil
}
