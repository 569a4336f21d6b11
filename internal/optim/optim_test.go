package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/barista/internal/brew"
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// trainModel builds a one-layer model with gradients in place.
func trainModel(t *testing.T, opts ...model.Option) *model.Helper {
	t.Helper()
	m := model.New("m", opts...)
	brew.FC(m, "data", "fc1", 4, 2)
	m.Net().AddOp("AveragedLoss", []core.BlobRef{"fc1"}, []core.BlobRef{"loss"})
	_, err := m.AddGradientOperators("loss")
	require.NoError(t, err)
	return m
}

// opsOfType filters a net's operators by type.
func opsOfType(n *core.Net, opType string) []*c2pb.OperatorDef {
	var out []*c2pb.OperatorDef
	for _, op := range n.Proto().Op {
		if op.Type == opType {
			out = append(out, op)
		}
	}
	return out
}

// TestBuildSGD verifies the default schedule and the per-parameter updates.
func TestBuildSGD(t *testing.T) {
	m := trainModel(t)
	lr, err := BuildSGD(m, SGDConfig{})
	require.NoError(t, err)
	assert.Equal(t, LRBlob, lr)

	iters := opsOfType(m.Net(), "Iter")
	require.Len(t, iters, 1)

	lrOps := opsOfType(m.Net(), "LearningRate")
	require.Len(t, lrOps, 1)
	assert.Equal(t, []string{"iteration"}, lrOps[0].Input)
	assert.Equal(t, []string{"lr"}, lrOps[0].Output)
	assert.InDelta(t, -0.01, core.GetArgFloat(lrOps[0], "base_lr", 0), 1e-6)
	assert.Equal(t, "fixed", core.GetArgString(lrOps[0], "policy", ""))
	assert.False(t, core.HasArgument(lrOps[0], "stepsize"))

	updates := opsOfType(m.Net(), "WeightedSum")
	require.Len(t, updates, 2)
	assert.Equal(t, []string{"fc1_w", "ONE", "fc1_w_grad", "lr"}, updates[0].Input)
	assert.Equal(t, []string{"fc1_w"}, updates[0].Output)
	assert.Equal(t, []string{"fc1_b", "ONE", "fc1_b_grad", "lr"}, updates[1].Input)

	ones := opsOfType(m.ParamInitNet(), "ConstantFill")
	var oneFills int
	for _, op := range ones {
		if len(op.Output) == 1 && op.Output[0] == "ONE" {
			oneFills++
		}
	}
	assert.Equal(t, 1, oneFills)
}

// TestBuildSGD_Schedule verifies step-policy arguments reach the op.
func TestBuildSGD_Schedule(t *testing.T) {
	m := trainModel(t)
	_, err := BuildSGD(m, SGDConfig{
		BaseLearningRate: 0.1,
		Policy:           "step",
		StepSize:         10,
		Gamma:            0.999,
	})
	require.NoError(t, err)

	op := opsOfType(m.Net(), "LearningRate")[0]
	assert.InDelta(t, -0.1, core.GetArgFloat(op, "base_lr", 0), 1e-6)
	assert.Equal(t, "step", core.GetArgString(op, "policy", ""))
	assert.EqualValues(t, 10, core.GetArgInt(op, "stepsize", 0))
	assert.InDelta(t, 0.999, core.GetArgFloat(op, "gamma", 0), 1e-6)
}

// TestBuildSGD_Guards verifies the misuse errors.
func TestBuildSGD_Guards(t *testing.T) {
	m := model.New("m")
	brew.FC(m, "data", "fc1", 4, 2)
	_, err := BuildSGD(m, SGDConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AddGradientOperators")

	m = trainModel(t)
	_, err = BuildSGD(m, SGDConfig{BaseLearningRate: -0.5})
	require.Error(t, err)
}

// TestBuildSGD_SharesONE verifies weight decay and SGD reuse one constant.
func TestBuildSGD_SharesONE(t *testing.T) {
	m := trainModel(t)
	require.NoError(t, brew.AddWeightDecay(m, 1e-4))
	_, err := BuildSGD(m, SGDConfig{})
	require.NoError(t, err)

	var oneFills int
	for _, op := range m.ParamInitNet().Proto().Op {
		if len(op.Output) == 1 && op.Output[0] == "ONE" {
			oneFills++
		}
	}
	assert.Equal(t, 1, oneFills)
}

// TestBuildSGD_SkipSparse verifies sparse parameters are left alone when the
// model opts out of sparse updates.
func TestBuildSGD_SkipSparse(t *testing.T) {
	m := trainModel(t, model.WithSkipSparseOptim(true))
	m.MarkSparse("fc1_w")
	_, err := BuildSGD(m, SGDConfig{})
	require.NoError(t, err)

	updates := opsOfType(m.Net(), "WeightedSum")
	require.Len(t, updates, 1)
	assert.Equal(t, []string{"fc1_b"}, updates[0].Output)
}

// TestBuildAdagrad verifies moment creation and the update ops.
func TestBuildAdagrad(t *testing.T) {
	m := trainModel(t)
	lr, err := BuildAdagrad(m, AdagradConfig{})
	require.NoError(t, err)
	assert.Equal(t, LRBlob, lr)

	var momentFills []*c2pb.OperatorDef
	for _, op := range m.ParamInitNet().Proto().Op {
		if op.Type == "ConstantFill" && len(op.Input) == 1 {
			momentFills = append(momentFills, op)
		}
	}
	require.Len(t, momentFills, 2)
	assert.Equal(t, []string{"fc1_w"}, momentFills[0].Input)
	assert.Equal(t, []string{"fc1_w_moment"}, momentFills[0].Output)

	updates := opsOfType(m.Net(), "Adagrad")
	require.Len(t, updates, 2)
	assert.Equal(t, []string{"fc1_w", "fc1_w_moment", "fc1_w_grad", "lr"}, updates[0].Input)
	assert.Equal(t, []string{"fc1_w", "fc1_w_moment"}, updates[0].Output)
	assert.InDelta(t, 1e-4, core.GetArgFloat(updates[0], "epsilon", 0), 1e-8)
	assert.InDelta(t, 1.0, core.GetArgFloat(updates[0], "decay", 0), 1e-6)

	assert.Contains(t, m.ComputedParams(), core.BlobRef("fc1_w_moment"))
	assert.Contains(t, m.ComputedParams(), core.BlobRef("fc1_b_moment"))
}

// TestBuildAdagrad_RequiresGradients verifies the misuse error.
func TestBuildAdagrad_RequiresGradients(t *testing.T) {
	m := model.New("m")
	_, err := BuildAdagrad(m, AdagradConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AddGradientOperators")
}
