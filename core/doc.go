// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package core builds computation graphs one operator at a time.
//
// # Overview
//
// This package contains:
//   - Net: an operator accumulator producing a c2pb.NetDef
//   - BlobRef: a typed blob name
//   - Argument constructors and accessors (MakeArgument, GetArgInt, ...)
//   - A gradient registry and Net.AddGradientOperators
//
// # Basic Usage
//
//	net := core.NewNet("example")
//	net.AddExternalInput("x")
//	net.AddOp("FC",
//	    []core.BlobRef{"x", "w", "b"},
//	    []core.BlobRef{"y"})
//	net.AddOp("AveragedLoss",
//	    []core.BlobRef{"y"},
//	    []core.BlobRef{"loss"})
//
//	grads, err := net.AddGradientOperators("loss")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Nets never execute anything. They describe graphs; an execution engine
// elsewhere runs them.
package core
