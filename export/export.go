// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package export turns a trained model into a deployable predictor pair: an
// init net that fills the parameters and a predict net that computes the
// outputs.
//
// # Basic Usage
//
//	initNet, predictNet, err := export.ExtractPredictorNets(m,
//	    []core.BlobRef{"data"}, []core.BlobRef{"pred"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := export.SavePredictor("out/", initNet, predictNet,
//	    export.Options{Text: true}); err != nil {
//	    log.Fatal(err)
//	}
//
// The pair round-trips through LoadPredictor; the optional .pbtxt files are
// write-only debug output.
package export

import (
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/export"
	"github.com/born-ml/barista/internal/model"
)

// File names of a saved predictor pair.
const (
	InitNetFile    = export.InitNetFile
	PredictNetFile = export.PredictNetFile
)

// Options configures SavePredictor.
type Options = export.Options

// SavePredictor writes the pair under dir, creating it if needed.
func SavePredictor(dir string, initNet, predictNet *core.Net, opts Options) error {
	return export.SavePredictor(dir, initNet, predictNet, opts)
}

// LoadPredictor reads a pair saved by SavePredictor.
func LoadPredictor(dir string) (initNet, predictNet *core.Net, err error) {
	return export.LoadPredictor(dir)
}

// ExtractPredictorNets builds the deployable pair from a trained model,
// stripping gradient and update operators and pruning back from the outputs.
func ExtractPredictorNets(m *model.Helper, inputs, outputs []core.BlobRef) (initNet, predictNet *core.Net, err error) {
	return export.ExtractPredictorNets(m, inputs, outputs)
}
