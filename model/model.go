// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import (
	"github.com/born-ml/barista/internal/model"
)

// Helper owns a computation net and its parameter initialization net, and
// tracks every parameter the layer helpers create.
type Helper = model.Helper

// ArgScope carries session-wide defaults that layer helpers consult when a
// call site does not override them.
type ArgScope = model.ArgScope

// Option configures a Helper.
type Option = model.Option

// Initializer names the fill operator that produces a parameter.
type Initializer = model.Initializer

// ParamTag classifies parameters for optimizers and exporters.
type ParamTag = model.ParamTag

// Parameter classes.
const (
	TagWeight        = model.TagWeight
	TagBias          = model.TagBias
	TagComputedParam = model.TagComputedParam
)

// New creates a model helper with nets "<name>" and "<name>_init".
func New(name string, opts ...Option) *Helper { return model.New(name, opts...) }

// WithInitParams controls whether parameter fill operators are emitted into
// the init net. Defaults to true.
func WithInitParams(v bool) Option { return model.WithInitParams(v) }

// WithSkipSparseOptim excludes sparse parameters from optimizer updates.
func WithSkipSparseOptim(v bool) Option { return model.WithSkipSparseOptim(v) }

// WithParamModel shares parameters with another model.
func WithParamModel(m *Helper) Option { return model.WithParamModel(m) }

// WithArgScope seeds the session-wide helper defaults.
func WithArgScope(s ArgScope) Option { return model.WithArgScope(s) }

// XavierFill scales uniform noise by fan-in.
func XavierFill() Initializer { return model.XavierFill() }

// MSRAFill scales normal noise by fan-out.
func MSRAFill() Initializer { return model.MSRAFill() }

// ConstantFill fills every element with the given value.
func ConstantFill(value float32) Initializer { return model.ConstantFill(value) }

// ZeroFill fills with zeros.
func ZeroFill() Initializer { return model.ZeroFill() }

// GivenTensorFill embeds literal float values.
func GivenTensorFill(values []float32) Initializer { return model.GivenTensorFill(values) }

// GivenTensorInt64Fill embeds literal int64 values.
func GivenTensorInt64Fill(values []int64) Initializer {
	return model.GivenTensorInt64Fill(values)
}

// UniformFill draws from [min, max).
func UniformFill(min, max float32) Initializer { return model.UniformFill(min, max) }

// GaussianFill draws from a normal distribution.
func GaussianFill(mean, std float32) Initializer { return model.GaussianFill(mean, std) }

// ExternalInit marks a parameter created outside this model.
func ExternalInit() Initializer { return model.ExternalInit() }
