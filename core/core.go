// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package core

import (
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
)

// BlobRef names a blob in a workspace.
type BlobRef = core.BlobRef

// Net accumulates operators into a NetDef.
type Net = core.Net

// Gradient is what a gradient maker returns: the gradient operators for one
// forward operator and the gradient blob of each forward input.
type Gradient = core.Gradient

// GradientMaker derives the gradient operators of one forward operator.
type GradientMaker = core.GradientMaker

// NewNet creates an empty net with the given name.
func NewNet(name string) *Net { return core.NewNet(name) }

// FromProto wraps an existing NetDef in a Net.
func FromProto(def *c2pb.NetDef) *Net { return core.FromProto(def) }

// BlobNames converts blob references to plain strings.
func BlobNames(refs []BlobRef) []string { return core.BlobNames(refs) }

// BlobRefs converts plain strings to blob references.
func BlobRefs(names []string) []BlobRef { return core.BlobRefs(names) }

// MakeArgument builds a named argument from a Go value. Supported kinds:
// float32/float64, bool, signed integers, string, []byte, and slices of
// those.
func MakeArgument(name string, value any) *c2pb.Argument {
	return core.MakeArgument(name, value)
}

// GetArgument returns the named argument, or nil.
func GetArgument(op *c2pb.OperatorDef, name string) *c2pb.Argument {
	return core.GetArgument(op, name)
}

// HasArgument reports whether the operator carries the named argument.
func HasArgument(op *c2pb.OperatorDef, name string) bool {
	return core.HasArgument(op, name)
}

// GetArgInt returns the named integer argument, or def.
func GetArgInt(op *c2pb.OperatorDef, name string, def int64) int64 {
	return core.GetArgInt(op, name, def)
}

// GetArgFloat returns the named float argument, or def.
func GetArgFloat(op *c2pb.OperatorDef, name string, def float32) float32 {
	return core.GetArgFloat(op, name, def)
}

// GetArgString returns the named string argument, or def.
func GetArgString(op *c2pb.OperatorDef, name, def string) string {
	return core.GetArgString(op, name, def)
}

// GetArgInts returns the named integer list argument, or nil.
func GetArgInts(op *c2pb.OperatorDef, name string) []int64 {
	return core.GetArgInts(op, name)
}

// GetArgFloats returns the named float list argument, or nil.
func GetArgFloats(op *c2pb.OperatorDef, name string) []float32 {
	return core.GetArgFloats(op, name)
}

// RegisterGradient installs a gradient maker for an operator type.
// Registering a type twice panics.
func RegisterGradient(opType string, maker GradientMaker) {
	core.RegisterGradient(opType, maker)
}

// HasGradient reports whether a gradient maker exists for an operator type.
func HasGradient(opType string) bool { return core.HasGradient(opType) }
