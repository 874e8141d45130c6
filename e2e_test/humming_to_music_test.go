//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/hummingbird/cmd"
	"github.com/jsphweid/hummingbird/midi"
	"github.com/jsphweid/hummingbird/model"
	"github.com/jsphweid/hummingbird/pitch"
	"github.com/jsphweid/hummingbird/store"
	"github.com/stretchr/testify/assert"
)

var ts *httptest.Server

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "hummingbird-e2e")
	if err != nil {
		panic(err.Error())
	}
	s, err := store.New(dir)
	if err != nil {
		panic(err.Error())
	}
	srv := &cmd.Server{Store: s}
	ts = httptest.NewServer(srv.Router())

	exitVal := m.Run()

	ts.Close()
	os.RemoveAll(dir)
	os.Exit(exitVal)
}

// hum builds a contour of the given midi pitches, half a second each followed by a
// short breath, sampled every 10ms like crepe.
func hum(pitches ...int) []byte {
	var b bytes.Buffer
	b.WriteString("time,frequency,confidence\n")
	frame := 0
	for _, p := range pitches {
		for i := 0; i < 55; i++ {
			if i < 50 {
				fmt.Fprintf(&b, "%.2f,%.3f,0.95\n", float64(frame)/100, pitch.MidiToFrequency(p))
			} else {
				fmt.Fprintf(&b, "%.2f,0,0.1\n", float64(frame)/100)
			}
			frame++
		}
	}
	return b.Bytes()
}

func postHum(t *testing.T, path string, fields map[string]string, csv []byte) *http.Response {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	part, _ := mw.CreateFormFile("frames_file", "hum.csv")
	part.Write(csv)
	mw.Close()

	resp, err := http.Post(ts.URL+path, mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHummedArpeggioE2E(t *testing.T) {
	resp := postHum(t, "/humming-to-music", map[string]string{"bass_pattern": "arpeggio"}, hum(60, 64, 67, 72, 67))
	defer resp.Body.Close()

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var res model.HummingToMusicResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	assert.Equal(5, res.NumNotes)
	assert.Equal([]int{60, 64, 67, 72, 67}, []int{res.Notes[0].Pitch, res.Notes[1].Pitch, res.Notes[2].Pitch, res.Notes[3].Pitch, res.Notes[4].Pitch})
	assert.Equal("C", res.KeyName)
	assert.Equal(3, res.NumTracks)

	dl, err := http.Get(ts.URL + res.MidiUrl)
	if err != nil {
		t.Fatal(err)
	}
	defer dl.Body.Close()
	data, _ := io.ReadAll(dl.Body)
	file, err := midi.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	tracks := midi.ReadTracks(file)
	assert.Len(tracks, 3)
	assert.Equal(uint8(2), tracks[2].Channel)
	assert.Len(tracks[2].Notes, 12)
}

func TestCleanupE2E(t *testing.T) {
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/cleanup?max_age_hours=0", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var res model.CleanupResponse
	json.NewDecoder(resp.Body).Decode(&res)
	assert.Equal(t, 200, resp.StatusCode)
}
