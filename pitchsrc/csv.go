package pitchsrc

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/hummingbird/model"
	"github.com/pkg/errors"
)

// ReadCSV parses a time,frequency,confidence table as written by crepe. A header row
// is optional.
func ReadCSV(r io.Reader) ([]model.PitchFrame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	frames := make([]model.PitchFrame, 0)
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "could not read frame on line %d", line)
		}
		if len(record) < 3 {
			return nil, errors.Errorf("line %d: expected time,frequency,confidence but got %d fields", line, len(record))
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "time") {
			continue
		}

		var values [3]float64
		for i := range values {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad number", line)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Errorf("line %d: %s is not a finite number", line, record[i])
			}
			values[i] = v
		}
		if values[1] < 0 || values[2] < 0 || values[2] > 1 {
			return nil, errors.Errorf("line %d: frequency must be >= 0 and confidence within [0,1]", line)
		}
		frames = append(frames, model.PitchFrame{Time: values[0], Frequency: values[1], Confidence: values[2]})
	}
	return frames, nil
}

// CSVFile serves frames that were estimated ahead of time. The audio path is taken
// to be the CSV itself.
type CSVFile struct{}

func (CSVFile) Estimate(ctx context.Context, path string, threshold float64) ([]model.PitchFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open frames file")
	}
	defer f.Close()

	frames, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}
	return ApplyThreshold(frames, threshold), nil
}
