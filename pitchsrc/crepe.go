package pitchsrc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jsphweid/hummingbird/model"
	"github.com/pkg/errors"
)

const (
	DefaultModelCapacity = "tiny"
	// DefaultStepMillis matches a 160 sample hop at 16 kHz.
	DefaultStepMillis = 10
)

// Crepe runs the crepe command line tool and reads the contour it writes.
type Crepe struct {
	Path          string
	ModelCapacity string
	StepMillis    int
	Viterbi       bool
}

func NewCrepe(path string, capacity string) *Crepe {
	if path == "" {
		path = "crepe"
	}
	if capacity == "" {
		capacity = DefaultModelCapacity
	}
	return &Crepe{Path: path, ModelCapacity: capacity, StepMillis: DefaultStepMillis, Viterbi: true}
}

// Available reports whether the crepe binary can be found.
func (c *Crepe) Available() bool {
	_, err := exec.LookPath(c.Path)
	return err == nil
}

func (c *Crepe) args(audioPath string, outDir string) []string {
	args := []string{
		audioPath,
		"--model-capacity", c.ModelCapacity,
		"--step-size", fmt.Sprint(c.StepMillis),
		"--output", outDir,
	}
	if c.Viterbi {
		args = append(args, "--viterbi")
	}
	return args
}

func (c *Crepe) Estimate(ctx context.Context, audioPath string, threshold float64) ([]model.PitchFrame, error) {
	outDir, err := os.MkdirTemp("", "crepe")
	if err != nil {
		return nil, errors.Wrap(err, "could not create crepe output dir")
	}
	defer os.RemoveAll(outDir)

	cmd := exec.CommandContext(ctx, c.Path, c.args(audioPath, outDir)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "crepe failed: %s", strings.TrimSpace(stderr.String()))
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return CSVFile{}.Estimate(ctx, filepath.Join(outDir, base+".f0.csv"), threshold)
}
