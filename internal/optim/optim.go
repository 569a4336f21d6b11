// Package optim builds parameter-update operators into a model's train net.
// The builders are graph-side only: they append LearningRate, WeightedSum
// and Adagrad operators, and the execution engine that runs the net applies
// the updates.
package optim

import (
	"github.com/born-ml/barista/internal/brew"
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// LRBlob is the shared learning-rate blob the builders emit.
const LRBlob = core.BlobRef("lr")

// buildLR emits the shared learning-rate schedule: an iteration counter and
// a LearningRate op. The base rate is negated so WeightedSum and Adagrad
// updates subtract along the gradient. Safe to call twice; the second call
// returns the existing blob.
func buildLR(m *model.Helper, baseLR float32, policy string, stepSize int64, gamma float32) core.BlobRef {
	iter := core.BlobRef("iteration")
	if !m.Net().BlobIsDefined(iter) {
		brew.Iter(m, iter)
	}
	if m.Net().BlobIsDefined(LRBlob) {
		return LRBlob
	}

	args := []*c2pb.Argument{
		core.MakeArgument("base_lr", -baseLR),
		core.MakeArgument("policy", policy),
	}
	if stepSize > 0 {
		args = append(args, core.MakeArgument("stepsize", stepSize))
	}
	if gamma != 0 {
		args = append(args, core.MakeArgument("gamma", gamma))
	}
	m.Net().AddOp("LearningRate", []core.BlobRef{iter}, []core.BlobRef{LRBlob}, args...)
	return LRBlob
}

// one returns the shared [1]-shaped constant 1.0, filling it on first use.
func one(m *model.Helper) core.BlobRef {
	blob := core.BlobRef("ONE")
	if !m.ParamInitNet().BlobIsDefined(blob) {
		m.ParamInitNet().AddOp("ConstantFill", nil, []core.BlobRef{blob},
			core.MakeArgument("shape", []int64{1}),
			core.MakeArgument("value", float32(1.0)))
	}
	return blob
}

// updateParams returns the parameters an optimizer should touch: those with
// a gradient, minus sparse parameters when the model opts out of sparse
// updates.
func updateParams(m *model.Helper) []core.BlobRef {
	var out []core.BlobRef
	for _, p := range m.Params() {
		if m.SkipSparseOptim() && m.IsSparse(p) {
			continue
		}
		if _, ok := m.ParamToGrad(p); !ok {
			continue
		}
		out = append(out, p)
	}
	return out
}
