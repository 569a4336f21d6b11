// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package brew

import (
	"github.com/born-ml/barista/internal/brew"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// Conv adds a 2d convolution with weight and bias parameters.
func Conv(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel int, opts ...Option) core.BlobRef {
	return brew.Conv(m, blobIn, blobOut, dimIn, dimOut, kernel, opts...)
}

// ConvNd adds an n-dimensional convolution. NCHW only.
func ConvNd(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, kernels []int, opts ...Option) core.BlobRef {
	return brew.ConvNd(m, blobIn, blobOut, dimIn, dimOut, kernels, opts...)
}

// GroupConv adds a grouped convolution.
func GroupConv(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel, group int, opts ...Option) core.BlobRef {
	return brew.GroupConv(m, blobIn, blobOut, dimIn, dimOut, kernel, group, opts...)
}

// GroupConvDeprecated adds a grouped convolution in its legacy
// split/conv/concat form. Use GroupConv instead.
func GroupConvDeprecated(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel, group int, opts ...Option) core.BlobRef {
	return brew.GroupConvDeprecated(m, blobIn, blobOut, dimIn, dimOut, kernel, group, opts...)
}

// ConvTranspose adds a transposed convolution.
func ConvTranspose(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel int, opts ...Option) core.BlobRef {
	return brew.ConvTranspose(m, blobIn, blobOut, dimIn, dimOut, kernel, opts...)
}

// FC adds a fully connected layer.
func FC(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...Option) core.BlobRef {
	return brew.FC(m, blobIn, blobOut, dimIn, dimOut, opts...)
}

// PackedFC adds a fully connected layer over a pre-packed weight.
func PackedFC(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...Option) core.BlobRef {
	return brew.PackedFC(m, blobIn, blobOut, dimIn, dimOut, opts...)
}

// FCPrune adds a fully connected layer with a pruning mask.
func FCPrune(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...Option) core.BlobRef {
	return brew.FCPrune(m, blobIn, blobOut, dimIn, dimOut, opts...)
}

// FCDecomp adds a rank-factorized fully connected layer.
func FCDecomp(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...Option) core.BlobRef {
	return brew.FCDecomp(m, blobIn, blobOut, dimIn, dimOut, opts...)
}

// FCSparse adds a fully connected layer over pre-allocated sparse weights.
func FCSparse(m *model.Helper, blobIn, blobOut, wCSR, iw, jw, bias core.BlobRef, opts ...Option) (core.BlobRef, error) {
	return brew.FCSparse(m, blobIn, blobOut, wCSR, iw, jw, bias, opts...)
}

// Relu applies rectification.
func Relu(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.Relu(m, blobIn, blobOut, opts...)
}

// PRelu applies rectification with a learned negative slope.
func PRelu(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.PRelu(m, blobIn, blobOut, opts...)
}

// Softmax normalizes along the last axis.
func Softmax(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.Softmax(m, blobIn, blobOut, opts...)
}

// Dropout zeroes a random fraction of activations. The is-test option is
// mandatory.
func Dropout(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.Dropout(m, blobIn, blobOut, opts...)
}

// LRN applies local response normalization.
func LRN(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.LRN(m, blobIn, blobOut, opts...)
}

// SpatialBN adds batch normalization over the channel dimension.
func SpatialBN(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn int, opts ...Option) core.BlobRef {
	return brew.SpatialBN(m, blobIn, blobOut, dimIn, opts...)
}

// InstanceNorm normalizes each sample's channels independently.
func InstanceNorm(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn int, opts ...Option) core.BlobRef {
	return brew.InstanceNorm(m, blobIn, blobOut, dimIn, opts...)
}

// MaxPool adds max pooling.
func MaxPool(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.MaxPool(m, blobIn, blobOut, opts...)
}

// AveragePool adds average pooling.
func AveragePool(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.AveragePool(m, blobIn, blobOut, opts...)
}

// MaxPoolWithIndex adds max pooling that records argmax positions. NCHW
// only.
func MaxPoolWithIndex(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.MaxPoolWithIndex(m, blobIn, blobOut, opts...)
}

// Concat joins blobs along the channel dimension.
func Concat(m *model.Helper, blobsIn []core.BlobRef, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.Concat(m, blobsIn, blobOut, opts...)
}

// DepthConcat is the old name for Concat.
func DepthConcat(m *model.Helper, blobsIn []core.BlobRef, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.DepthConcat(m, blobsIn, blobOut, opts...)
}

// Sum adds blobs elementwise.
func Sum(m *model.Helper, blobsIn []core.BlobRef, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.Sum(m, blobsIn, blobOut, opts...)
}

// Transpose permutes dimensions.
func Transpose(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.Transpose(m, blobIn, blobOut, opts...)
}

// ImageInput reads (image, label) batches from a database reader blob.
func ImageInput(m *model.Helper, reader, data, label core.BlobRef, opts ...Option) (core.BlobRef, core.BlobRef) {
	return brew.ImageInput(m, reader, data, label, opts...)
}

// VideoInput reads clip batches from a database reader blob.
func VideoInput(m *model.Helper, reader core.BlobRef, blobsOut []core.BlobRef, opts ...Option) []core.BlobRef {
	return brew.VideoInput(m, reader, blobsOut, opts...)
}

// Iter maintains the CPU-pinned iteration counter.
func Iter(m *model.Helper, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.Iter(m, blobOut, opts...)
}

// Accuracy scores predictions against labels.
func Accuracy(m *model.Helper, pred, label, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return brew.Accuracy(m, pred, label, blobOut, opts...)
}

// AddWeightDecay emits L2 regularization into the gradient stream.
// Gradients must already exist.
func AddWeightDecay(m *model.Helper, weightDecay float32) error {
	return brew.AddWeightDecay(m, weightDecay)
}

// HelperFunc is the uniform calling shape of registered helpers.
type HelperFunc = brew.HelperFunc

// Register installs a helper under a name. Registering a name twice panics.
func Register(name string, fn HelperFunc) { brew.Register(name, fn) }

// Has reports whether a helper is registered.
func Has(name string) bool { return brew.Has(name) }

// Names returns the registered helper names, sorted.
func Names() []string { return brew.Names() }

// Run invokes a registered helper by name.
func Run(name string, m *model.Helper, inputs, outputs []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
	return brew.Run(name, m, inputs, outputs, dims, opts...)
}
