package render

import (
	"os"
)

type Capability int

const (
	CapabilityNone Capability = iota
	CapabilitySoundFont
)

func (c Capability) String() string {
	switch c {
	case CapabilitySoundFont:
		return "soundfont"
	default:
		return "none"
	}
}

// Probe checks for the optional synthesis backend. Audio rendering is only offered
// when a readable SoundFont is configured.
func Probe(soundFontPath string) Capability {
	if soundFontPath == "" {
		return CapabilityNone
	}
	info, err := os.Stat(soundFontPath)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return CapabilityNone
	}
	return CapabilitySoundFont
}
