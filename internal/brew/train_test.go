package brew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/device"
	"github.com/born-ml/barista/internal/model"
)

// TestIter verifies the CPU-pinned int64 counter.
func TestIter(t *testing.T) {
	m := model.New("m")
	out := Iter(m, "")
	assert.Equal(t, core.BlobRef("iteration"), out)

	fills := initOps(m)
	require.Len(t, fills, 1)
	fill := fills[0]
	assert.Equal(t, "ConstantFill", fill.Type)
	assert.Equal(t, []string{"iteration"}, fill.Output)
	assert.Equal(t, []int64{1}, core.GetArgInts(fill, "shape"))
	assert.EqualValues(t, c2pb.TensorInt64, core.GetArgInt(fill, "dtype", 0))
	value := core.GetArgument(fill, "value")
	require.NotNil(t, value)
	require.NotNil(t, value.I)
	assert.EqualValues(t, 0, *value.I)
	require.NotNil(t, fill.DeviceOption)
	assert.Equal(t, c2pb.DeviceCPU, fill.DeviceOption.DeviceType)

	op := netOps(m)[0]
	assert.Equal(t, "Iter", op.Type)
	assert.Equal(t, []string{"iteration"}, op.Input)
	assert.Equal(t, []string{"iteration"}, op.Output)
	require.NotNil(t, op.DeviceOption)
	assert.Equal(t, c2pb.DeviceCPU, op.DeviceOption.DeviceType)
}

// TestAccuracy verifies the plain CPU form.
func TestAccuracy(t *testing.T) {
	m := model.New("m")
	out := Accuracy(m, "pred", "label", "accuracy")
	assert.Equal(t, core.BlobRef("accuracy"), out)

	op := netOps(m)[0]
	assert.Equal(t, "Accuracy", op.Type)
	assert.Equal(t, []string{"pred", "label"}, op.Input)
	assert.False(t, core.HasArgument(op, "top_k"))
}

// TestAccuracy_TopKOnGPU verifies the host detour: top-k accuracy only
// exists on CPU.
func TestAccuracy_TopKOnGPU(t *testing.T) {
	forceCUDA(t)
	m := model.New("m")
	Accuracy(m, "pred", "label", "acc5",
		WithTopK(5), WithDeviceOption(device.GPUOption(0)))

	ops := netOps(m)
	require.Len(t, ops, 3)
	assert.Equal(t, "CopyGPUToCPU", ops[0].Type)
	assert.Equal(t, []string{"pred_host"}, ops[0].Output)
	assert.Equal(t, c2pb.DeviceCUDA, ops[0].DeviceOption.DeviceType)
	assert.Equal(t, "CopyGPUToCPU", ops[1].Type)
	assert.Equal(t, []string{"label_host"}, ops[1].Output)

	acc := ops[2]
	assert.Equal(t, []string{"pred_host", "label_host"}, acc.Input)
	assert.EqualValues(t, 5, core.GetArgInt(acc, "top_k", 0))
	require.NotNil(t, acc.DeviceOption)
	assert.Equal(t, c2pb.DeviceCPU, acc.DeviceOption.DeviceType)
}

// TestAccuracy_TopKOnCPU verifies no detour happens on the host.
func TestAccuracy_TopKOnCPU(t *testing.T) {
	m := model.New("m")
	Accuracy(m, "pred", "label", "acc5", WithTopK(5))

	ops := netOps(m)
	require.Len(t, ops, 1)
	assert.EqualValues(t, 5, core.GetArgInt(ops[0], "top_k", 0))
}

// TestAddWeightDecay verifies the grad-side weighted sums and their scalars.
func TestAddWeightDecay(t *testing.T) {
	m := model.New("m")
	FC(m, "data", "fc1", 8, 4)
	m.Net().AddOp("AveragedLoss", []core.BlobRef{"fc1"}, []core.BlobRef{"loss"})
	_, err := m.AddGradientOperators("loss")
	require.NoError(t, err)

	before := len(netOps(m))
	require.NoError(t, AddWeightDecay(m, 0.0005))

	fills := initOps(m)
	wd := fills[len(fills)-2]
	one := fills[len(fills)-1]
	assert.Equal(t, []string{"wd"}, wd.Output)
	assert.InDelta(t, 0.0005, core.GetArgFloat(wd, "value", 0), 1e-9)
	assert.Equal(t, []string{"ONE"}, one.Output)

	ops := netOps(m)
	require.Len(t, ops, before+1) // one weight in the model
	ws := ops[len(ops)-1]
	assert.Equal(t, "WeightedSum", ws.Type)
	assert.Equal(t, []string{"fc1_w_grad", "ONE", "fc1_w", "wd"}, ws.Input)
	assert.Equal(t, []string{"fc1_w_grad"}, ws.Output)
}

// TestAddWeightDecay_Guards verifies the no-op and error paths.
func TestAddWeightDecay_Guards(t *testing.T) {
	m := model.New("m")
	require.NoError(t, AddWeightDecay(m, 0)) // wd <= 0 is a no-op
	assert.Empty(t, netOps(m))

	err := AddWeightDecay(m, 0.001)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires gradients")
}
