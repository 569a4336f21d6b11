// Package export turns a trained model into a deployable predictor pair and
// reads and writes the serialized nets.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
)

// File names of a saved predictor pair.
const (
	InitNetFile    = "init_net.pb"
	PredictNetFile = "predict_net.pb"
)

// Options configures SavePredictor.
type Options struct {
	Text bool // also write .pbtxt renderings beside the binaries
}

// SavePredictor writes the pair under dir, creating it if needed. With Text
// set, a human-readable .pbtxt copy of each net is written too; the text
// files are debug output and LoadPredictor does not read them.
func SavePredictor(dir string, initNet, predictNet *core.Net, opts Options) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := writeFile(filepath.Join(dir, InitNetFile), c2pb.MarshalNetDef(initNet.Proto())); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, PredictNetFile), c2pb.MarshalNetDef(predictNet.Proto())); err != nil {
		return err
	}
	if !opts.Text {
		return nil
	}
	for _, n := range []*core.Net{initNet, predictNet} {
		path := filepath.Join(dir, n.Name()+".pbtxt")
		if err := writeFile(path, []byte(c2pb.FormatNetDef(n.Proto()))); err != nil {
			return err
		}
	}
	return nil
}

// LoadPredictor reads a pair saved by SavePredictor.
func LoadPredictor(dir string) (initNet, predictNet *core.Net, err error) {
	initNet, err = readNet(filepath.Join(dir, InitNetFile))
	if err != nil {
		return nil, nil, err
	}
	predictNet, err = readNet(filepath.Join(dir, PredictNetFile))
	if err != nil {
		return nil, nil, err
	}
	return initNet, predictNet, nil
}

func writeFile(path string, data []byte) error {
	//nolint:gosec // G306: predictor files are shareable artifacts.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readNet(path string) (*core.Net, error) {
	//nolint:gosec // G304: the caller chooses where predictors live.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	def, err := c2pb.UnmarshalNetDef(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return core.FromProto(def), nil
}
