// Package cnn implements the deprecated convolutional-network wrapper: a
// thin shell over model.Helper and the brew layer helpers that stores
// session defaults (layout order, GPU engine preference, workspace limit)
// once and injects them into every call. New code should use model.Helper
// with brew directly; this package exists for graphs written against the
// old surface.
package cnn

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/device"
	"github.com/born-ml/barista/internal/model"
)

// ErrInvalidOrder reports a storage order other than NCHW or NHWC.
var ErrInvalidOrder = errors.New("storage order must be NCHW or NHWC")

// ModelHelper carries the session defaults beside the wrapped model. Every
// layer method is a one-line forward into brew; the defaults flow through
// the model's ArgScope so explicit per-call options still win.
type ModelHelper struct {
	*model.Helper

	order            string
	useGPUEngine     bool
	exhaustiveSearch bool
	wsLimit          int64
}

type config struct {
	order            string
	name             string
	useGPUEngine     bool
	exhaustiveSearch bool
	wsLimit          int64
	initParams       bool
	skipSparseOptim  bool
	paramModel       *model.Helper
}

// Option configures the wrapper at construction.
type Option func(*config)

// WithOrder sets the session tensor layout. Default NCHW.
func WithOrder(order string) Option {
	return func(c *config) { c.order = order }
}

// WithName sets the model name. Default "CNN".
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithGPUEngine controls the session's vendor GPU engine preference.
// Default on.
func WithGPUEngine(v bool) Option {
	return func(c *config) { c.useGPUEngine = v }
}

// WithExhaustiveSearch lets the vendor engine benchmark algorithms.
func WithExhaustiveSearch(v bool) Option {
	return func(c *config) { c.exhaustiveSearch = v }
}

// WithWSLimit caps the vendor engine workspace, in bytes.
func WithWSLimit(bytes int64) Option {
	return func(c *config) { c.wsLimit = bytes }
}

// WithInitParams controls parameter fill emission. Default on.
func WithInitParams(v bool) Option {
	return func(c *config) { c.initParams = v }
}

// WithSkipSparseOptim excludes sparse parameters from optimizer updates.
func WithSkipSparseOptim(v bool) Option {
	return func(c *config) { c.skipSparseOptim = v }
}

// WithParamModel shares parameters with another model.
func WithParamModel(m *model.Helper) Option {
	return func(c *config) { c.paramModel = m }
}

// New creates the deprecated wrapper. The storage order is the single
// validated setting; everything else defaults like the original surface:
// name "CNN", GPU engine on, parameter fills on.
func New(opts ...Option) (*ModelHelper, error) {
	cfg := &config{
		order:        "NCHW",
		name:         "CNN",
		useGPUEngine: true,
		initParams:   true,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.order != "NCHW" && cfg.order != "NHWC" {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidOrder, cfg.order)
	}
	slog.Warn("cnn.ModelHelper is deprecated, use model.Helper with the brew helpers instead")

	mopts := []model.Option{
		model.WithInitParams(cfg.initParams),
		model.WithSkipSparseOptim(cfg.skipSparseOptim),
		model.WithArgScope(model.ArgScope{
			Order:                     cfg.order,
			UseGPUEngine:              cfg.useGPUEngine,
			GPUEngineExhaustiveSearch: cfg.exhaustiveSearch,
			WSNBytesLimit:             cfg.wsLimit,
		}),
	}
	if cfg.paramModel != nil {
		mopts = append(mopts, model.WithParamModel(cfg.paramModel))
	}
	return &ModelHelper{
		Helper:           model.New(cfg.name, mopts...),
		order:            cfg.order,
		useGPUEngine:     cfg.useGPUEngine,
		exhaustiveSearch: cfg.exhaustiveSearch,
		wsLimit:          cfg.wsLimit,
	}, nil
}

// Order returns the session tensor layout.
func (h *ModelHelper) Order() string { return h.order }

// UseGPUEngine reports the session's vendor engine preference.
func (h *ModelHelper) UseGPUEngine() bool { return h.useGPUEngine }

// GPUEngineExhaustiveSearch reports the session's algorithm-search setting.
func (h *ModelHelper) GPUEngineExhaustiveSearch() bool { return h.exhaustiveSearch }

// WSNBytesLimit returns the session workspace cap in bytes, 0 if unset.
func (h *ModelHelper) WSNBytesLimit() int64 { return h.wsLimit }

// XavierInit is the fan-in scaled uniform initializer spec.
func (h *ModelHelper) XavierInit() model.Initializer { return model.XavierFill() }

// MSRAInit is the fan-out scaled normal initializer spec.
func (h *ModelHelper) MSRAInit() model.Initializer { return model.MSRAFill() }

// ZeroInit fills with zeros.
func (h *ModelHelper) ZeroInit() model.Initializer { return model.ZeroFill() }

// ConstantInit fills with the given value.
func (h *ModelHelper) ConstantInit(value float32) model.Initializer {
	return model.ConstantFill(value)
}

// CPU returns a CPU device descriptor.
func (h *ModelHelper) CPU() *c2pb.DeviceOption { return device.CPUOption() }

// GPU returns a device descriptor for the preferred GPU flavor: HIP with the
// id in HipGPUID when HIP support is on, CUDA with CudaGPUID otherwise.
func (h *ModelHelper) GPU(id int) *c2pb.DeviceOption { return device.GPUOption(id) }
