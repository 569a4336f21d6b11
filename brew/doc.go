// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package brew registers layers into a model: each helper creates the
// layer's parameters in the init net and appends its operators to the
// computation net.
//
// # Overview
//
// This package contains:
//   - Layer helpers: Conv, FC, Relu, Softmax, Dropout, SpatialBN, pooling, ...
//   - Functional options shared by all helpers (WithStride, WithOrder, ...)
//   - Training utilities: Iter, Accuracy, AddWeightDecay
//   - A name-indexed helper registry for table-driven graph construction
//
// # Basic Usage
//
//	m := model.New("lenet")
//	conv1 := brew.Conv(m, "data", "conv1", 1, 20, 5)
//	pool1 := brew.MaxPool(m, conv1, "pool1",
//	    brew.WithKernel(2), brew.WithStride(2))
//	fc3 := brew.FC(m, pool1, "fc3", 20*12*12, 500)
//	brew.Relu(m, fc3, fc3)
//	brew.Softmax(m, fc3, "pred")
//
// Option precedence: a per-call option wins over the model's ArgScope, which
// wins over the built-in default. Helpers panic on programmer misuse
// (impossible geometry, missing mandatory options) and never on data.
package brew
