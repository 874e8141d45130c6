package cmd

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/hummingbird/constants"
	"github.com/jsphweid/hummingbird/errs"
	"github.com/jsphweid/hummingbird/logging"
	"github.com/jsphweid/hummingbird/melody"
	"github.com/jsphweid/hummingbird/midi"
	"github.com/jsphweid/hummingbird/model"
	"github.com/jsphweid/hummingbird/pitchsrc"
	"github.com/jsphweid/hummingbird/render"
	"github.com/jsphweid/hummingbird/store"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

// Server holds everything the HTTP handlers share. Renderer and Janitor may be nil.
type Server struct {
	Store     *store.Store
	Renderer  *render.Handle
	Estimator pitchsrc.Estimator
	Janitor   *store.Janitor
	Log       logging.Logger
	MaxAge    time.Duration
}

func (s *Server) Router() http.Handler {
	if s.Log == nil {
		s.Log = &logging.NoOpLogger{}
	}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.logRequests)
	router.HandleFunc("/", s.handleIndex).Methods("GET")
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/extract-melody", s.handleExtractMelody).Methods("POST")
	router.HandleFunc("/add-accompaniment", s.handleAddAccompaniment).Methods("POST")
	router.HandleFunc("/humming-to-music", s.handleHummingToMusic).Methods("POST")
	router.HandleFunc("/download/{filename}", s.handleDownload).Methods("GET")
	router.HandleFunc("/cleanup", s.handleCleanup).Methods("DELETE")

	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(router)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.Log.Debug("request", logging.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Log.Error(err, "request failed", logging.Fields{"path": r.URL.Path})
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *Server) save(prefix, ext string, data []byte) (string, error) {
	name, err := s.Store.Save(prefix, ext, data)
	if err != nil {
		return "", err
	}
	if s.Janitor != nil {
		s.Janitor.Touch()
	}
	return name, nil
}

func downloadURL(name string) string {
	return "/download/" + name
}

func (s *Server) saveSong(prefix string, song *midi.Song) (string, error) {
	data, err := song.Bytes()
	if err != nil {
		return "", err
	}
	name, err := s.save(prefix, "mid", data)
	if err != nil {
		return "", err
	}
	return downloadURL(name), nil
}

// saveAudio renders the song when asked to and a renderer is loaded. It returns an
// empty url otherwise.
func (s *Server) saveAudio(r *http.Request, prefix string, song *midi.Song) (string, error) {
	want, err := formBool(r, "synthesize", false)
	if err != nil || !want {
		return "", err
	}
	data, err := renderWAV(s.Renderer, song)
	if err != nil {
		return "", err
	}
	if data == nil {
		s.Log.Warn("synthesis requested but no soundfont is loaded")
		return "", nil
	}
	name, err := s.save(prefix, "wav", data)
	if err != nil {
		return "", err
	}
	return downloadURL(name), nil
}

func formFloat(r *http.Request, field string, def float64) (float64, error) {
	v := r.FormValue(field)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &errs.ConfigError{Field: field, Value: v, Reason: "not a number", Cause: err}
	}
	return f, nil
}

func formInt(r *http.Request, field string, def int) (int, error) {
	v := r.FormValue(field)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, &errs.ConfigError{Field: field, Value: v, Reason: "not an integer", Cause: err}
	}
	return i, nil
}

func formBool(r *http.Request, field string, def bool) (bool, error) {
	v := r.FormValue(field)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, &errs.ConfigError{Field: field, Value: v, Reason: "not a boolean", Cause: err}
	}
	return b, nil
}

func melodyConfig(r *http.Request) (melody.Config, error) {
	conf := melody.DefaultConfig()
	var err error
	if conf.ConfidenceThreshold, err = formFloat(r, "confidence_threshold", conf.ConfidenceThreshold); err != nil {
		return conf, err
	}
	if conf.Segment.MinNoteDuration, err = formFloat(r, "min_note_duration", conf.Segment.MinNoteDuration); err != nil {
		return conf, err
	}
	if conf.SmoothWindow, err = formInt(r, "smooth_window", conf.SmoothWindow); err != nil {
		return conf, err
	}
	return conf, conf.Validate()
}

func accompanimentOptions(r *http.Request) (melody.AccompanimentOptions, error) {
	opts := melody.DefaultAccompanimentOptions()
	if v := r.FormValue("progression_type"); v != "" {
		opts.Template = v
	}
	if v := r.FormValue("bass_pattern"); v != "" {
		opts.Pattern = v
	}
	var err error
	if opts.AddChords, err = formBool(r, "add_chords", opts.AddChords); err != nil {
		return opts, err
	}
	if opts.AddBass, err = formBool(r, "add_bass", opts.AddBass); err != nil {
		return opts, err
	}
	return opts, nil
}

func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		return &errs.ConfigError{Field: "form", Value: r.Header.Get("Content-Type"), Reason: "expected multipart form data", Cause: err}
	}
	return nil
}

func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, &errs.ConfigError{Field: field, Value: nil, Reason: "file is required", Cause: err}
	}
	return f, header, nil
}

// contour reads the pitch contour of the request, either a precomputed frames_file or
// an audio_file handed to the estimator.
func (s *Server) contour(ctx context.Context, r *http.Request, threshold float64) ([]model.PitchFrame, error) {
	if f, header, err := r.FormFile("frames_file"); err == nil {
		defer f.Close()
		frames, err := pitchsrc.ReadCSV(f)
		if err != nil {
			return nil, &errs.ConfigError{Field: "frames_file", Value: header.Filename, Reason: err.Error(), Cause: err}
		}
		return pitchsrc.ApplyThreshold(frames, threshold), nil
	}

	f, header, err := formFile(r, "audio_file")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if s.Estimator == nil {
		return nil, errors.New("no pitch estimator configured")
	}

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return nil, errors.Wrap(err, "could not buffer upload")
	}
	defer os.Remove(tmp.Name())
	_, err = io.Copy(tmp, f)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not buffer upload")
	}
	return s.Estimator.Estimate(ctx, tmp.Name(), threshold)
}

func (s *Server) extractMelody(r *http.Request) (*melody.Melody, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	conf, err := melodyConfig(r)
	if err != nil {
		return nil, err
	}
	frames, err := s.contour(r.Context(), r, conf.ConfidenceThreshold)
	if err != nil {
		return nil, err
	}
	return melody.Extract(frames, conf)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.ServiceInfo{
		Name:        "hummingbird",
		Description: "Turns a hummed melody into an accompanied MIDI arrangement",
		Endpoints: []string{
			"GET /health",
			"POST /extract-melody",
			"POST /add-accompaniment",
			"POST /humming-to-music",
			"GET /download/{filename}",
			"DELETE /cleanup",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	capability := render.CapabilityNone
	if s.Renderer != nil {
		capability = s.Renderer.Capability()
	}
	estimation := s.Estimator != nil
	if a, ok := s.Estimator.(interface{ Available() bool }); ok {
		estimation = a.Available()
	}
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:     "healthy",
		Synthesis:  capability.String(),
		Estimation: estimation,
	})
}

func (s *Server) handleExtractMelody(w http.ResponseWriter, r *http.Request) {
	m, err := s.extractMelody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	url, err := s.saveSong("melody", midi.NewSong(m.Notes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Log.Info("extracted melody", logging.Fields{"notes": len(m.Notes), "key": m.KeyName})
	writeJSON(w, http.StatusOK, model.ExtractResponse{
		Success:  true,
		Notes:    melody.Views(m.Notes),
		Key:      m.Key,
		KeyName:  m.KeyName,
		MidiUrl:  url,
		NumNotes: len(m.Notes),
	})
}

func (s *Server) handleAddAccompaniment(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := accompanimentOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, _, err := formFile(r, "midi_file")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer f.Close()
	file, err := midi.ReadFrom(f)
	if err != nil {
		s.writeError(w, r, &errs.ConfigError{Field: "midi_file", Reason: err.Error(), Cause: err})
		return
	}

	notes := midi.ReadNotes(file)
	acc, err := melody.Accompany(notes, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	song := arrange(notes, acc, opts)
	midiURL, err := s.saveSong("accompaniment", song)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	audioURL, err := s.saveAudio(r, "accompaniment", song)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AccompanimentResponse{
		Success:   true,
		MidiUrl:   midiURL,
		AudioUrl:  audioURL,
		NumTracks: len(song.Voices),
		Key:       acc.Key,
		Chords:    acc.Chords,
		Bass:      acc.Bass,
	})
}

func (s *Server) handleHummingToMusic(w http.ResponseWriter, r *http.Request) {
	m, err := s.extractMelody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := accompanimentOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	acc, err := melody.Accompany(m.Notes, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	song := arrange(m.Notes, acc, opts)
	midiURL, err := s.saveSong("music", song)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	audioURL, err := s.saveAudio(r, "music", song)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.HummingToMusicResponse{
		Success:   true,
		Notes:     melody.Views(m.Notes),
		MidiUrl:   midiURL,
		AudioUrl:  audioURL,
		NumNotes:  len(m.Notes),
		NumTracks: len(song.Voices),
		Key:       m.Key,
		KeyName:   m.KeyName,
		Chords:    acc.Chords,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]
	path, err := s.Store.Path(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	switch filepath.Ext(name) {
	case ".mid":
		w.Header().Set("Content-Type", "audio/midi")
	case ".wav":
		w.Header().Set("Content-Type", "audio/wav")
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	maxAge := s.MaxAge
	if v := r.URL.Query().Get("max_age_hours"); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil || hours < 0 {
			s.writeError(w, r, &errs.ConfigError{Field: "max_age_hours", Value: v, Reason: "must be a non-negative number", Cause: err})
			return
		}
		maxAge = constants.Hours(hours)
	}
	n, err := s.Store.Cleanup(maxAge)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Log.Info("cleanup", logging.Fields{"deleted": n})
	writeJSON(w, http.StatusOK, model.CleanupResponse{DeletedFiles: n})
}
