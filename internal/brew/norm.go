package brew

import (
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/device"
	"github.com/born-ml/barista/internal/model"
)

// LRN applies local response normalization. Without a vendor GPU engine the
// op keeps its scale tensor in a hidden second output; the vendor engines
// recompute it internally. Size, alpha, beta and bias go through WithArg.
func LRN(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	engine := cfg.resolveEngine(m)

	outputs := []core.BlobRef{blobOut}
	if engine != device.EngineCUDNN && engine != device.EngineMIOPEN {
		outputs = append(outputs, "_"+blobOut+"_scale")
	}
	op := m.Net().AddOp("LRN", []core.BlobRef{blobIn}, outputs,
		core.MakeArgument("order", cfg.resolveOrder(m)))
	if engine != "" {
		op.Engine = engine
	}
	cfg.finish(op)
	return blobOut
}

// SpatialBN adds batch normalization over the channel dimension. Scale and
// bias are learned; the running statistics are computed parameters. In test
// mode the op consumes the running statistics and emits one output; in
// training mode it also refreshes them and saves the batch statistics.
func SpatialBN(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn int, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	channel := []int64{int64(dimIn)}

	scaleInit := model.ConstantFill(1.0)
	if cfg.weightInit != nil {
		scaleInit = *cfg.weightInit
	}
	biasInit := model.ConstantFill(0.0)
	if cfg.biasInit != nil {
		biasInit = *cfg.biasInit
	}
	scale := createParam(m, blobOut+"_s", channel, scaleInit, model.TagWeight)
	bias := createParam(m, blobOut+"_b", channel, biasInit, model.TagBias)
	runningMean := createParam(m, blobOut+"_rm", channel, model.ConstantFill(0.0), model.TagComputedParam)
	runningInvVar := createParam(m, blobOut+"_riv", channel, model.ConstantFill(1.0), model.TagComputedParam)

	inputs := []core.BlobRef{blobIn, scale, bias, runningMean, runningInvVar}
	isTest := cfg.isTest != nil && *cfg.isTest
	outputs := []core.BlobRef{blobOut}
	if !isTest {
		outputs = append(outputs, runningMean, runningInvVar,
			blobOut+"_sm", blobOut+"_siv")
	}

	args := []*c2pb.Argument{core.MakeArgument("order", cfg.resolveOrder(m))}
	if cfg.isTest != nil {
		args = append(args, core.MakeArgument("is_test", *cfg.isTest))
	}
	if cfg.epsilon != nil {
		args = append(args, core.MakeArgument("epsilon", *cfg.epsilon))
	}
	if cfg.momentum != nil {
		args = append(args, core.MakeArgument("momentum", *cfg.momentum))
	}
	op := m.Net().AddOp("SpatialBN", inputs, outputs, args...)
	cfg.finish(op)
	return blobOut
}

// InstanceNorm normalizes each sample's channels independently. Training
// mode saves the per-instance statistics in extra outputs.
func InstanceNorm(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn int, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	channel := []int64{int64(dimIn)}

	scaleInit := model.ConstantFill(1.0)
	if cfg.weightInit != nil {
		scaleInit = *cfg.weightInit
	}
	biasInit := model.ConstantFill(0.0)
	if cfg.biasInit != nil {
		biasInit = *cfg.biasInit
	}
	scale := createParam(m, blobOut+"_s", channel, scaleInit, model.TagWeight)
	bias := createParam(m, blobOut+"_b", channel, biasInit, model.TagBias)

	isTest := cfg.isTest != nil && *cfg.isTest
	outputs := []core.BlobRef{blobOut}
	if !isTest {
		outputs = append(outputs, blobOut+"_sm", blobOut+"_siv")
	}

	args := []*c2pb.Argument{core.MakeArgument("order", cfg.resolveOrder(m))}
	if cfg.isTest != nil {
		args = append(args, core.MakeArgument("is_test", *cfg.isTest))
	}
	if cfg.epsilon != nil {
		args = append(args, core.MakeArgument("epsilon", *cfg.epsilon))
	}
	op := m.Net().AddOp("InstanceNorm", []core.BlobRef{blobIn, scale, bias}, outputs, args...)
	cfg.finish(op)
	return blobOut
}
