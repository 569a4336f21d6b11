// Package cnn provides the deprecated convolutional-network wrapper.
//
// Deprecated: build models with the model and brew packages directly. This
// package remains for graphs written against the old surface; it stores a
// handful of session defaults (tensor layout order, GPU engine preference,
// workspace memory limit) at construction and injects them into every layer
// call, and that is all it does.
//
// # Example Usage
//
//	h, err := cnn.New(cnn.WithName("lenet"), cnn.WithOrder("NCHW"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv1 := h.Conv("data", "conv1", 1, 20, 5)
//	pool1 := h.MaxPool(conv1, "pool1",
//	    brew.WithKernel(2), brew.WithStride(2))
//	fc3 := h.FC(pool1, "fc3", 20*12*12, 500)
//	h.Relu(fc3, fc3)
//	h.Softmax(fc3, "pred")
//
// Per-call options still win over the stored defaults, so a single layer can
// opt out of the session's engine or layout.
package cnn

import (
	"github.com/born-ml/barista/internal/cnn"
	"github.com/born-ml/barista/internal/model"
)

// ModelHelper carries the session defaults beside the wrapped model. Every
// layer method forwards into brew.
type ModelHelper = cnn.ModelHelper

// Option configures the wrapper at construction.
type Option = cnn.Option

// ErrInvalidOrder reports a storage order other than NCHW or NHWC.
var ErrInvalidOrder = cnn.ErrInvalidOrder

// New creates the deprecated wrapper: name "CNN", order NCHW, GPU engine
// preference on, parameter fills on, unless overridden by options.
func New(opts ...Option) (*ModelHelper, error) { return cnn.New(opts...) }

// WithOrder sets the session tensor layout. Default NCHW.
func WithOrder(order string) Option { return cnn.WithOrder(order) }

// WithName sets the model name. Default "CNN".
func WithName(name string) Option { return cnn.WithName(name) }

// WithGPUEngine controls the session's vendor GPU engine preference.
// Default on.
func WithGPUEngine(v bool) Option { return cnn.WithGPUEngine(v) }

// WithExhaustiveSearch lets the vendor engine benchmark algorithms.
func WithExhaustiveSearch(v bool) Option { return cnn.WithExhaustiveSearch(v) }

// WithWSLimit caps the vendor engine workspace, in bytes.
func WithWSLimit(bytes int64) Option { return cnn.WithWSLimit(bytes) }

// WithInitParams controls parameter fill emission. Default on.
func WithInitParams(v bool) Option { return cnn.WithInitParams(v) }

// WithSkipSparseOptim excludes sparse parameters from optimizer updates.
func WithSkipSparseOptim(v bool) Option { return cnn.WithSkipSparseOptim(v) }

// WithParamModel shares parameters with another model.
func WithParamModel(m *model.Helper) Option { return cnn.WithParamModel(m) }
