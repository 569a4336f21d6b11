// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package brew

import (
	"github.com/born-ml/barista/internal/brew"
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/model"
)

// Option adjusts one helper call. Later options win; unset values fall back
// to the model's ArgScope, then to built-in defaults.
type Option = brew.Option

// WithOrder overrides the tensor layout (NCHW or NHWC) for one call.
func WithOrder(order string) Option { return brew.WithOrder(order) }

// WithKernel sets a square kernel size.
func WithKernel(k int) Option { return brew.WithKernel(k) }

// WithKernels sets per-dimension kernel sizes.
func WithKernels(ks ...int) Option { return brew.WithKernels(ks...) }

// WithStride sets the stride.
func WithStride(s int) Option { return brew.WithStride(s) }

// WithPad sets symmetric padding.
func WithPad(p int) Option { return brew.WithPad(p) }

// WithPads sets per-edge padding (top, left, bottom, right).
func WithPads(t, l, b, r int) Option { return brew.WithPads(t, l, b, r) }

// WithDilation sets the kernel dilation.
func WithDilation(d int) Option { return brew.WithDilation(d) }

// WithGroup sets the convolution group count.
func WithGroup(g int) Option { return brew.WithGroup(g) }

// WithAxis sets the axis an operator works along.
func WithAxis(axis int) Option { return brew.WithAxis(axis) }

// WithTopK scores a prediction as correct when the label is in the top k.
func WithTopK(k int) Option { return brew.WithTopK(k) }

// WithRank sets the decomposition rank.
func WithRank(r int) Option { return brew.WithRank(r) }

// WithNumChannels sets the channel count of a learned per-channel parameter.
func WithNumChannels(n int) Option { return brew.WithNumChannels(n) }

// WithRatio sets the dropout ratio.
func WithRatio(r float32) Option { return brew.WithRatio(r) }

// WithEpsilon sets the numerical-stability term.
func WithEpsilon(e float32) Option { return brew.WithEpsilon(e) }

// WithMomentum sets the running-statistics momentum.
func WithMomentum(v float32) Option { return brew.WithMomentum(v) }

// WithThreshold sets the pruning threshold.
func WithThreshold(v float32) Option { return brew.WithThreshold(v) }

// WithCompLB sets the pruning compression lower bound.
func WithCompLB(v float32) Option { return brew.WithCompLB(v) }

// WithWeightInit overrides the weight initializer.
func WithWeightInit(init model.Initializer) Option { return brew.WithWeightInit(init) }

// WithBiasInit overrides the bias initializer.
func WithBiasInit(init model.Initializer) Option { return brew.WithBiasInit(init) }

// WithSlopeInit overrides the learned-slope initializer.
func WithSlopeInit(init model.Initializer) Option { return brew.WithSlopeInit(init) }

// WithNoBias drops the bias parameter.
func WithNoBias() Option { return brew.WithNoBias() }

// WithIsTest marks the call as test-time or train-time graph construction.
func WithIsTest(v bool) Option { return brew.WithIsTest(v) }

// WithGPUEngine overrides the session's vendor GPU engine preference.
func WithGPUEngine(v bool) Option { return brew.WithGPUEngine(v) }

// WithExhaustiveSearch lets the vendor engine benchmark algorithms.
func WithExhaustiveSearch(v bool) Option { return brew.WithExhaustiveSearch(v) }

// WithWSLimit caps the vendor engine workspace, in bytes.
func WithWSLimit(bytes int64) Option { return brew.WithWSLimit(bytes) }

// WithEngine pins an explicit engine name, beating the GPU preference.
func WithEngine(engine string) Option { return brew.WithEngine(engine) }

// WithDeviceOption pins the emitted operators to a device.
func WithDeviceOption(do *c2pb.DeviceOption) Option { return brew.WithDeviceOption(do) }

// WithUseGPUTransform decodes and lays out input images on the GPU.
func WithUseGPUTransform(v bool) Option { return brew.WithUseGPUTransform(v) }

// WithArg appends a raw named argument to the emitted operator.
func WithArg(name string, value any) Option { return brew.WithArg(name, value) }
