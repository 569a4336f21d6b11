package brew

import (
	"errors"
	"fmt"

	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/device"
	"github.com/born-ml/barista/internal/model"
)

// Iter maintains an int64 iteration counter, default blob name "iteration".
// Counter and increment are pinned to CPU regardless of where the net runs;
// any device option is deliberately ignored.
func Iter(m *model.Helper, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	if blobOut == "" {
		blobOut = "iteration"
	}
	fill := m.ParamInitNet().AddOp("ConstantFill", nil, []core.BlobRef{blobOut},
		core.MakeArgument("shape", []int64{1}),
		core.MakeArgument("value", int64(0)),
		core.MakeArgument("dtype", int64(c2pb.TensorInt64)))
	fill.DeviceOption = device.CPUOption()

	op := m.Net().AddOp("Iter", []core.BlobRef{blobOut}, []core.BlobRef{blobOut})
	op.DeviceOption = device.CPUOption()
	op.Arg = append(op.Arg, cfg.extraArgs...)
	return blobOut
}

// Accuracy scores predictions against labels. Top-k accuracy only exists on
// CPU, so on a GPU device the inputs are copied down and the op pinned to
// the host.
func Accuracy(m *model.Helper, pred, label, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	var args []*c2pb.Argument
	if cfg.topK > 0 {
		args = append(args, core.MakeArgument("top_k", cfg.topK))
	}

	onGPU := cfg.deviceOpt != nil && cfg.deviceOpt.DeviceType != c2pb.DeviceCPU
	if onGPU && cfg.topK > 1 {
		predHost := pred + "_host"
		labelHost := label + "_host"
		copyPred := m.Net().AddOp("CopyGPUToCPU", []core.BlobRef{pred}, []core.BlobRef{predHost})
		copyPred.DeviceOption = cfg.deviceOpt.Clone()
		copyLabel := m.Net().AddOp("CopyGPUToCPU", []core.BlobRef{label}, []core.BlobRef{labelHost})
		copyLabel.DeviceOption = cfg.deviceOpt.Clone()

		op := m.Net().AddOp("Accuracy", []core.BlobRef{predHost, labelHost},
			[]core.BlobRef{blobOut}, args...)
		op.DeviceOption = device.CPUOption()
		op.Arg = append(op.Arg, cfg.extraArgs...)
		return blobOut
	}

	op := m.Net().AddOp("Accuracy", []core.BlobRef{pred, label}, []core.BlobRef{blobOut}, args...)
	cfg.finish(op)
	return blobOut
}

// AddWeightDecay emits L2 regularization, folding wd * param into each
// weight gradient before the parameter update runs. Gradients must already
// exist. Biases and computed parameters are left alone.
func AddWeightDecay(m *model.Helper, weightDecay float32) error {
	if weightDecay <= 0 {
		return nil
	}
	if !m.GradientsAdded() {
		return errors.New("weight decay requires gradients, call AddGradientOperators first")
	}
	wd := core.BlobRef("wd")
	m.ParamInitNet().AddOp("ConstantFill", nil, []core.BlobRef{wd},
		core.MakeArgument("shape", []int64{1}),
		core.MakeArgument("value", weightDecay))
	one := core.BlobRef("ONE")
	if !m.ParamInitNet().BlobIsDefined(one) {
		m.ParamInitNet().AddOp("ConstantFill", nil, []core.BlobRef{one},
			core.MakeArgument("shape", []int64{1}),
			core.MakeArgument("value", float32(1.0)))
	}

	for _, w := range m.Weights() {
		grad, ok := m.ParamToGrad(w)
		if !ok {
			return fmt.Errorf("no gradient for weight %s", w)
		}
		m.Net().AddOp("WeightedSum", []core.BlobRef{grad, one, w, wd}, []core.BlobRef{grad})
	}
	return nil
}
