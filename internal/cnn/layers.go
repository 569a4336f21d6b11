package cnn

import (
	"github.com/born-ml/barista/internal/brew"
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
)

// The layer methods forward into brew with the wrapped model. Session
// defaults reach the helpers through the model's ArgScope, so a per-call
// option still overrides them.

// ImageInput reads (image, label) batches from a database reader blob.
func (h *ModelHelper) ImageInput(reader, data, label core.BlobRef, opts ...brew.Option) (core.BlobRef, core.BlobRef) {
	return brew.ImageInput(h.Helper, reader, data, label, opts...)
}

// VideoInput reads clip batches from a database reader blob.
func (h *ModelHelper) VideoInput(reader core.BlobRef, blobsOut []core.BlobRef, opts ...brew.Option) []core.BlobRef {
	return brew.VideoInput(h.Helper, reader, blobsOut, opts...)
}

// PadImage forwards straight to the net; padding geometry goes in raw
// arguments.
func (h *ModelHelper) PadImage(blobIn, blobOut core.BlobRef, args ...*c2pb.Argument) core.BlobRef {
	h.Net().AddOp("PadImage", []core.BlobRef{blobIn}, []core.BlobRef{blobOut}, args...)
	return blobOut
}

// Conv adds a 2d convolution.
func (h *ModelHelper) Conv(blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel int, opts ...brew.Option) core.BlobRef {
	return brew.Conv(h.Helper, blobIn, blobOut, dimIn, dimOut, kernel, opts...)
}

// ConvNd adds an n-dimensional convolution. NCHW only.
func (h *ModelHelper) ConvNd(blobIn, blobOut core.BlobRef, dimIn, dimOut int, kernels []int, opts ...brew.Option) core.BlobRef {
	return brew.ConvNd(h.Helper, blobIn, blobOut, dimIn, dimOut, kernels, opts...)
}

// ConvTranspose adds a transposed convolution.
func (h *ModelHelper) ConvTranspose(blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel int, opts ...brew.Option) core.BlobRef {
	return brew.ConvTranspose(h.Helper, blobIn, blobOut, dimIn, dimOut, kernel, opts...)
}

// GroupConv adds a grouped convolution.
func (h *ModelHelper) GroupConv(blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel, group int, opts ...brew.Option) core.BlobRef {
	return brew.GroupConv(h.Helper, blobIn, blobOut, dimIn, dimOut, kernel, group, opts...)
}

// GroupConvDeprecated adds a grouped convolution in its legacy
// split/conv/concat form.
func (h *ModelHelper) GroupConvDeprecated(blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel, group int, opts ...brew.Option) core.BlobRef {
	return brew.GroupConvDeprecated(h.Helper, blobIn, blobOut, dimIn, dimOut, kernel, group, opts...)
}

// FC adds a fully connected layer.
func (h *ModelHelper) FC(blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...brew.Option) core.BlobRef {
	return brew.FC(h.Helper, blobIn, blobOut, dimIn, dimOut, opts...)
}

// PackedFC adds a fully connected layer over a pre-packed weight.
func (h *ModelHelper) PackedFC(blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...brew.Option) core.BlobRef {
	return brew.PackedFC(h.Helper, blobIn, blobOut, dimIn, dimOut, opts...)
}

// FCPrune adds a fully connected layer with a pruning mask.
func (h *ModelHelper) FCPrune(blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...brew.Option) core.BlobRef {
	return brew.FCPrune(h.Helper, blobIn, blobOut, dimIn, dimOut, opts...)
}

// FCDecomp adds a rank-factorized fully connected layer.
func (h *ModelHelper) FCDecomp(blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...brew.Option) core.BlobRef {
	return brew.FCDecomp(h.Helper, blobIn, blobOut, dimIn, dimOut, opts...)
}

// FCSparse adds a fully connected layer over pre-allocated sparse weights.
func (h *ModelHelper) FCSparse(blobIn, blobOut, wCSR, iw, jw, bias core.BlobRef, opts ...brew.Option) (core.BlobRef, error) {
	return brew.FCSparse(h.Helper, blobIn, blobOut, wCSR, iw, jw, bias, opts...)
}

// Dropout zeroes a random fraction of activations; the is-test option is
// mandatory.
func (h *ModelHelper) Dropout(blobIn, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.Dropout(h.Helper, blobIn, blobOut, opts...)
}

// LRN applies local response normalization.
func (h *ModelHelper) LRN(blobIn, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.LRN(h.Helper, blobIn, blobOut, opts...)
}

// Softmax normalizes along the last axis.
func (h *ModelHelper) Softmax(blobIn, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.Softmax(h.Helper, blobIn, blobOut, opts...)
}

// SpatialBN adds batch normalization over the channel dimension.
func (h *ModelHelper) SpatialBN(blobIn, blobOut core.BlobRef, dimIn int, opts ...brew.Option) core.BlobRef {
	return brew.SpatialBN(h.Helper, blobIn, blobOut, dimIn, opts...)
}

// InstanceNorm normalizes each sample's channels independently.
func (h *ModelHelper) InstanceNorm(blobIn, blobOut core.BlobRef, dimIn int, opts ...brew.Option) core.BlobRef {
	return brew.InstanceNorm(h.Helper, blobIn, blobOut, dimIn, opts...)
}

// Relu applies rectification.
func (h *ModelHelper) Relu(blobIn, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.Relu(h.Helper, blobIn, blobOut, opts...)
}

// PRelu applies rectification with a learned negative slope.
func (h *ModelHelper) PRelu(blobIn, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.PRelu(h.Helper, blobIn, blobOut, opts...)
}

// Concat joins blobs along the channel dimension.
func (h *ModelHelper) Concat(blobsIn []core.BlobRef, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.Concat(h.Helper, blobsIn, blobOut, opts...)
}

// DepthConcat is the old name for Concat.
func (h *ModelHelper) DepthConcat(blobsIn []core.BlobRef, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.DepthConcat(h.Helper, blobsIn, blobOut, opts...)
}

// Sum adds blobs elementwise.
func (h *ModelHelper) Sum(blobsIn []core.BlobRef, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.Sum(h.Helper, blobsIn, blobOut, opts...)
}

// Transpose permutes dimensions.
func (h *ModelHelper) Transpose(blobIn, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.Transpose(h.Helper, blobIn, blobOut, opts...)
}

// Iter maintains the CPU-pinned iteration counter.
func (h *ModelHelper) Iter(blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.Iter(h.Helper, blobOut, opts...)
}

// Accuracy scores predictions against labels.
func (h *ModelHelper) Accuracy(pred, label, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.Accuracy(h.Helper, pred, label, blobOut, opts...)
}

// MaxPool adds max pooling.
func (h *ModelHelper) MaxPool(blobIn, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.MaxPool(h.Helper, blobIn, blobOut, opts...)
}

// MaxPoolWithIndex adds max pooling that records argmax positions. NCHW
// only.
func (h *ModelHelper) MaxPoolWithIndex(blobIn, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.MaxPoolWithIndex(h.Helper, blobIn, blobOut, opts...)
}

// AveragePool adds average pooling.
func (h *ModelHelper) AveragePool(blobIn, blobOut core.BlobRef, opts ...brew.Option) core.BlobRef {
	return brew.AveragePool(h.Helper, blobIn, blobOut, opts...)
}

// AddWeightDecay emits L2 regularization into the gradient stream.
func (h *ModelHelper) AddWeightDecay(weightDecay float32) error {
	return brew.AddWeightDecay(h.Helper, weightDecay)
}
