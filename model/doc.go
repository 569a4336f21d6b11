// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model pairs a computation net with its parameter initialization
// net and tracks the parameters layer helpers create.
//
// # Overview
//
// This package contains:
//   - Helper: the model under construction (train net + init net + params)
//   - Initializer: fill-operator specs (XavierFill, MSRAFill, ConstantFill, ...)
//   - ParamTag: weight/bias/computed classification for optimizers
//   - ArgScope: session-wide defaults the layer helpers consult
//
// # Basic Usage
//
//	m := model.New("mlp")
//	brew.FC(m, "data", "fc1", 784, 256)
//	brew.Relu(m, "fc1", "fc1")
//	brew.FC(m, "fc1", "fc2", 256, 10)
//	brew.Softmax(m, "fc2", "pred")
//
//	m.Net().AddOp("LabelCrossEntropy",
//	    []core.BlobRef{"pred", "label"},
//	    []core.BlobRef{"xent"})
//	m.Net().AddOp("AveragedLoss",
//	    []core.BlobRef{"xent"},
//	    []core.BlobRef{"loss"})
//	if _, err := m.AddGradientOperators("loss"); err != nil {
//	    log.Fatal(err)
//	}
//
// Several computation nets can share one parameter set by constructing the
// extra models with WithParamModel.
package model
