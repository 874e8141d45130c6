package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type ExtractResponse struct {
	Success  bool       `json:"success"`
	Notes    []NoteView `json:"notes"`
	Key      int        `json:"key"`
	KeyName  string     `json:"key_name"`
	MidiUrl  string     `json:"midi_url"`
	NumNotes int        `json:"num_notes"`
}

type AccompanimentResponse struct {
	Success   bool        `json:"success"`
	MidiUrl   string      `json:"midi_url"`
	AudioUrl  string      `json:"audio_url,omitempty"`
	NumTracks int         `json:"num_tracks"`
	Key       int         `json:"key"`
	Chords    Progression `json:"chords"`
	Bass      BassLine    `json:"bass"`
}

type HummingToMusicResponse struct {
	Success   bool        `json:"success"`
	Notes     []NoteView  `json:"notes"`
	MidiUrl   string      `json:"midi_url"`
	AudioUrl  string      `json:"audio_url,omitempty"`
	NumNotes  int         `json:"num_notes"`
	NumTracks int         `json:"num_tracks"`
	Key       int         `json:"key"`
	KeyName   string      `json:"key_name"`
	Chords    Progression `json:"chords"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Synthesis  string `json:"synthesis"`
	Estimation bool   `json:"estimation"`
}

type CleanupResponse struct {
	DeletedFiles int `json:"deleted_files"`
}

type ServiceInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Endpoints   []string `json:"endpoints"`
}
