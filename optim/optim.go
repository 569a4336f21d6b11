// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
	"github.com/born-ml/barista/internal/optim"
)

// LRBlob is the shared learning-rate blob the builders emit.
const LRBlob = optim.LRBlob

// SGDConfig holds configuration for BuildSGD.
type SGDConfig = optim.SGDConfig

// AdagradConfig holds configuration for BuildAdagrad.
type AdagradConfig = optim.AdagradConfig

// BuildSGD appends stochastic gradient descent updates to the train net:
// one WeightedSum per parameter over a shared learning-rate schedule.
// Gradients must already exist.
//
// Returns the learning-rate blob.
func BuildSGD(m *model.Helper, config SGDConfig) (core.BlobRef, error) {
	return optim.BuildSGD(m, config)
}

// BuildAdagrad appends adaptive gradient updates to the train net: each
// parameter gets a zero-filled moment blob and an Adagrad operator.
// Gradients must already exist.
//
// Returns the learning-rate blob.
func BuildAdagrad(m *model.Helper, config AdagradConfig) (core.BlobRef, error) {
	return optim.BuildAdagrad(m, config)
}
