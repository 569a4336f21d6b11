// Package model implements the parameter-tracking model helper: a pair of
// nets (parameter initialization and computation) plus a registry of the
// parameters the layer helpers create.
package model

import (
	"fmt"
	"slices"

	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
)

// ArgScope carries session-wide defaults that layer helpers consult when a
// call site does not override them.
type ArgScope struct {
	Order                     string // "NCHW" or "NHWC"
	UseGPUEngine              bool   // prefer the vendor GPU engine on supported ops
	GPUEngineExhaustiveSearch bool   // let the engine benchmark algorithms
	WSNBytesLimit             int64  // workspace size limit in bytes, 0 = unlimited
}

type paramInfo struct {
	shape []int64
	tag   ParamTag
}

// Helper owns a computation net and its parameter initialization net, and
// tracks every parameter the layer helpers create. It is the non-deprecated
// construction surface; the cnn wrapper layers session defaults on top.
type Helper struct {
	name            string
	net             *core.Net
	paramInitNet    *core.Net
	argScope        ArgScope
	initParams      bool
	skipSparseOptim bool
	paramModel      *Helper

	params         []core.BlobRef
	weights        []core.BlobRef
	biases         []core.BlobRef
	computedParams []core.BlobRef
	paramInfos     map[string]paramInfo
	sparse         map[core.BlobRef]bool
	gradMap        map[core.BlobRef]core.BlobRef
}

// Option configures a Helper.
type Option func(*Helper)

// WithInitParams controls whether parameter fill operators are emitted into
// the init net. Defaults to true.
func WithInitParams(v bool) Option {
	return func(h *Helper) { h.initParams = v }
}

// WithSkipSparseOptim excludes sparse parameters from optimizer updates.
func WithSkipSparseOptim(v bool) Option {
	return func(h *Helper) { h.skipSparseOptim = v }
}

// WithParamModel shares parameters with another model: creation is delegated
// there, so several computation nets can reuse one set of weights.
func WithParamModel(m *Helper) Option {
	return func(h *Helper) { h.paramModel = m }
}

// WithArgScope seeds the session-wide helper defaults.
func WithArgScope(s ArgScope) Option {
	return func(h *Helper) { h.argScope = s }
}

// New creates a model helper with nets "<name>" and "<name>_init".
func New(name string, opts ...Option) *Helper {
	if name == "" {
		name = "model"
	}
	h := &Helper{
		name:         name,
		net:          core.NewNet(name),
		paramInitNet: core.NewNet(name + "_init"),
		initParams:   true,
		paramInfos:   make(map[string]paramInfo),
		sparse:       make(map[core.BlobRef]bool),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Name returns the model name.
func (h *Helper) Name() string { return h.name }

// Net returns the computation net.
func (h *Helper) Net() *core.Net { return h.net }

// ParamInitNet returns the parameter initialization net. With a param model
// set, that model's init net is returned, since parameters live there.
func (h *Helper) ParamInitNet() *core.Net {
	if h.paramModel != nil {
		return h.paramModel.ParamInitNet()
	}
	return h.paramInitNet
}

// InitParams reports whether fill operators are emitted for new parameters.
func (h *Helper) InitParams() bool { return h.initParams }

// SkipSparseOptim reports whether sparse parameters are excluded from
// optimizer updates.
func (h *Helper) SkipSparseOptim() bool { return h.skipSparseOptim }

// ArgScope returns the session-wide helper defaults.
func (h *Helper) ArgScope() ArgScope { return h.argScope }

// paramTarget resolves where parameters are registered.
func (h *Helper) paramTarget() *Helper {
	if h.paramModel != nil {
		return h.paramModel.paramTarget()
	}
	return h
}

// CreateParam registers a parameter and, when InitParams is set and the
// initializer is not external, emits its fill operator into the init net.
// Re-creating a parameter with the same shape and tag returns the existing
// blob; conflicting re-creation is an error.
func (h *Helper) CreateParam(name string, shape []int64, init Initializer, tag ParamTag) (core.BlobRef, error) {
	target := h.paramTarget()
	if info, ok := target.paramInfos[name]; ok {
		if !slices.Equal(info.shape, shape) || info.tag != tag {
			return "", fmt.Errorf("parameter %s already created with shape %v tag %s",
				name, info.shape, info.tag)
		}
		return core.BlobRef(name), nil
	}

	blob := core.BlobRef(name)
	if h.initParams && !init.External() {
		opArgs := make([]*c2pb.Argument, 0, len(init.Args)+1)
		for _, a := range init.Args {
			opArgs = append(opArgs, a.Clone())
		}
		opArgs = append(opArgs, core.MakeArgument("shape", shape))
		target.paramInitNet.AddOp(init.FillOp, nil, []core.BlobRef{blob}, opArgs...)
	}
	target.registerParam(blob, shape, tag)
	return blob, nil
}

// AddParameter registers an externally created blob as a parameter.
func (h *Helper) AddParameter(blob core.BlobRef, tag ParamTag) {
	h.paramTarget().registerParam(blob, nil, tag)
}

func (h *Helper) registerParam(blob core.BlobRef, shape []int64, tag ParamTag) {
	h.paramInfos[string(blob)] = paramInfo{shape: shape, tag: tag}
	switch tag {
	case TagComputedParam:
		h.computedParams = append(h.computedParams, blob)
	case TagWeight:
		h.params = append(h.params, blob)
		h.weights = append(h.weights, blob)
	case TagBias:
		h.params = append(h.params, blob)
		h.biases = append(h.biases, blob)
	default:
		h.params = append(h.params, blob)
	}
}

// MarkSparse records that a parameter's storage is sparse. Optimizer
// builders skip sparse parameters when SkipSparseOptim is set.
func (h *Helper) MarkSparse(blobs ...core.BlobRef) {
	target := h.paramTarget()
	for _, b := range blobs {
		target.sparse[b] = true
	}
}

// IsSparse reports whether a parameter was marked sparse.
func (h *Helper) IsSparse(blob core.BlobRef) bool {
	return h.paramTarget().sparse[blob]
}

// Params returns the optimizable parameters in registration order.
func (h *Helper) Params() []core.BlobRef {
	return slices.Clone(h.paramTarget().params)
}

// Weights returns parameters tagged as weights.
func (h *Helper) Weights() []core.BlobRef {
	return slices.Clone(h.paramTarget().weights)
}

// Biases returns parameters tagged as biases.
func (h *Helper) Biases() []core.BlobRef {
	return slices.Clone(h.paramTarget().biases)
}

// ComputedParams returns non-optimizable parameters such as running
// statistics.
func (h *Helper) ComputedParams() []core.BlobRef {
	return slices.Clone(h.paramTarget().computedParams)
}

// AllParams returns optimizable and computed parameters.
func (h *Helper) AllParams() []core.BlobRef {
	t := h.paramTarget()
	out := make([]core.BlobRef, 0, len(t.params)+len(t.computedParams))
	out = append(out, t.params...)
	out = append(out, t.computedParams...)
	return out
}

// ParamShape returns the registered shape of a parameter.
func (h *Helper) ParamShape(blob core.BlobRef) ([]int64, bool) {
	info, ok := h.paramTarget().paramInfos[string(blob)]
	if !ok {
		return nil, false
	}
	return slices.Clone(info.shape), true
}

// AddGradientOperators appends gradient operators for the losses and retains
// the blob-to-gradient map for optimizer builders.
func (h *Helper) AddGradientOperators(losses ...core.BlobRef) (map[core.BlobRef]core.BlobRef, error) {
	gradMap, err := h.net.AddGradientOperators(losses...)
	if err != nil {
		return nil, err
	}
	h.gradMap = gradMap
	return gradMap, nil
}

// GradientsAdded reports whether AddGradientOperators has run.
func (h *Helper) GradientsAdded() bool { return h.gradMap != nil }

// ParamToGrad returns the gradient blob of a parameter, if gradients have
// been added and the parameter was reached by the backward pass.
func (h *Helper) ParamToGrad(p core.BlobRef) (core.BlobRef, bool) {
	g, ok := h.gradMap[p]
	return g, ok
}

// Validate reports duplicate parameter registrations.
func (h *Helper) Validate() error {
	t := h.paramTarget()
	seen := make(map[core.BlobRef]bool, len(t.params))
	for _, p := range t.params {
		if seen[p] {
			return fmt.Errorf("parameter %s registered more than once", p)
		}
		seen[p] = true
	}
	return nil
}
