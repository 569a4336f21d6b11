// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim appends parameter-update operators to a model's train net.
//
// # Overview
//
// This package contains:
//   - BuildSGD: stochastic gradient descent via WeightedSum updates
//   - BuildAdagrad: adaptive gradient updates with per-parameter moments
//
// The builders are graph-side only. They emit a shared learning-rate
// schedule (an iteration counter feeding a LearningRate operator) and one
// update operator per parameter; the execution engine that runs the net
// applies the arithmetic.
//
// # Basic Usage
//
//	if _, err := m.AddGradientOperators("loss"); err != nil {
//	    log.Fatal(err)
//	}
//	lr, err := optim.BuildSGD(m, optim.SGDConfig{
//	    BaseLearningRate: 0.1,
//	    Policy:           "step",
//	    StepSize:         1,
//	    Gamma:            0.999,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = lr // feed dashboards, summaries, ...
package optim
