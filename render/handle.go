package render

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/pkg/errors"
	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

type State int

const (
	Unloaded State = iota
	Loading
	Ready
	Closed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrNotReady = errors.New("renderer is not ready")

// Handle owns a loaded SoundFont. It is created once at startup and handed to
// whatever needs audio, there is no package level synth.
type Handle struct {
	path       string
	sampleRate int32

	mu       sync.RWMutex
	state    State
	sf       *meltysynth.SoundFont
	settings *meltysynth.SynthesizerSettings
}

func NewHandle(soundFontPath string) *Handle {
	return &Handle{path: soundFontPath, sampleRate: SampleRate}
}

func (h *Handle) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

func (h *Handle) Ready() bool {
	return h.State() == Ready
}

func (h *Handle) Capability() Capability {
	if h.Ready() {
		return CapabilitySoundFont
	}
	return CapabilityNone
}

// Load parses the SoundFont. Loading an already loaded handle is a no-op, loading a
// closed one is an error.
func (h *Handle) Load() error {
	h.mu.Lock()
	switch h.state {
	case Ready:
		h.mu.Unlock()
		return nil
	case Closed:
		h.mu.Unlock()
		return errors.New("renderer is closed")
	case Loading:
		h.mu.Unlock()
		return errors.New("renderer is already loading")
	}
	if Probe(h.path) == CapabilityNone {
		h.mu.Unlock()
		return errors.Errorf("no usable soundfont at %q", h.path)
	}
	h.state = Loading
	h.mu.Unlock()

	sf, settings, err := h.load()

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.state = Unloaded
		return err
	}
	h.sf = sf
	h.settings = settings
	h.state = Ready
	return nil
}

func (h *Handle) load() (*meltysynth.SoundFont, *meltysynth.SynthesizerSettings, error) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not read soundfont")
	}
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not parse soundfont")
	}
	settings := meltysynth.NewSynthesizerSettings(h.sampleRate)
	settings.BlockSize = blockSize
	return sf, settings, nil
}

func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sf = nil
	h.settings = nil
	h.state = Closed
}

// synthesizer returns a fresh synth per render so concurrent requests never share
// voice state.
func (h *Handle) synthesizer() (synthesizer, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state != Ready {
		return nil, ErrNotReady
	}
	return newSynthesizer(h.sf, h.settings)
}
