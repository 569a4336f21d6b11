package brew

import (
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// Relu applies rectification. In-place use (blobOut == blobIn) is fine.
func Relu(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	op := m.Net().AddOp("Relu", []core.BlobRef{blobIn}, []core.BlobRef{blobOut},
		core.MakeArgument("order", cfg.resolveOrder(m)))
	if e := cfg.resolveEngine(m); e != "" {
		op.Engine = e
	}
	cfg.finish(op)
	return blobOut
}

// PRelu applies rectification with a learned negative slope, one slope per
// channel when WithNumChannels is given.
func PRelu(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	numChannels := cfg.numChannels
	if numChannels == 0 {
		numChannels = 1
	}
	slopeInit := model.ConstantFill(0.25)
	if cfg.slopeInit != nil {
		slopeInit = *cfg.slopeInit
	}
	slope := createParam(m, blobOut+"_slope", []int64{int64(numChannels)},
		slopeInit, model.TagWeight)

	op := m.Net().AddOp("PRelu", []core.BlobRef{blobIn, slope}, []core.BlobRef{blobOut})
	cfg.finish(op)
	return blobOut
}

// Softmax normalizes along the last axis (or WithAxis). An empty blobOut
// picks a fresh name.
func Softmax(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	if blobOut == "" {
		blobOut = m.Net().NextName("softmax")
	}
	var args []*c2pb.Argument
	if cfg.axis != nil {
		args = append(args, core.MakeArgument("axis", *cfg.axis))
	}
	op := m.Net().AddOp("Softmax", []core.BlobRef{blobIn}, []core.BlobRef{blobOut}, args...)
	if e := cfg.resolveEngine(m); e != "" {
		op.Engine = e
	}
	cfg.finish(op)
	return blobOut
}
