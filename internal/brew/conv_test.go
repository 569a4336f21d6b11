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

// forceCUDA pins the GPU flavor to CUDA for the duration of a test.
func forceCUDA(t *testing.T) {
	t.Helper()
	prev := device.HasHIP()
	device.SetHIPEnabled(false)
	t.Cleanup(func() { device.SetHIPEnabled(prev) })
}

// initOps returns the operators of the model's init net.
func initOps(m *model.Helper) []*c2pb.OperatorDef {
	return m.ParamInitNet().Proto().Op
}

// netOps returns the operators of the model's computation net.
func netOps(m *model.Helper) []*c2pb.OperatorDef {
	return m.Net().Proto().Op
}

// TestConv_NCHW verifies the default convolution: weight and bias params,
// kernel and order arguments, no engine.
func TestConv_NCHW(t *testing.T) {
	m := model.New("m")
	out := Conv(m, "data", "conv1", 3, 16, 5, WithStride(1), WithPad(2))
	assert.Equal(t, core.BlobRef("conv1"), out)

	fills := initOps(m)
	require.Len(t, fills, 2)
	assert.Equal(t, "XavierFill", fills[0].Type)
	assert.Equal(t, []string{"conv1_w"}, fills[0].Output)
	assert.Equal(t, []int64{16, 3, 5, 5}, core.GetArgInts(fills[0], "shape"))
	assert.Equal(t, "ConstantFill", fills[1].Type)
	assert.Equal(t, []int64{16}, core.GetArgInts(fills[1], "shape"))

	ops := netOps(m)
	require.Len(t, ops, 1)
	op := ops[0]
	assert.Equal(t, "Conv", op.Type)
	assert.Equal(t, []string{"data", "conv1_w", "conv1_b"}, op.Input)
	assert.Equal(t, []string{"conv1"}, op.Output)
	assert.EqualValues(t, 5, core.GetArgInt(op, "kernel", 0))
	assert.EqualValues(t, 1, core.GetArgInt(op, "stride", 0))
	assert.EqualValues(t, 2, core.GetArgInt(op, "pad", 0))
	assert.Equal(t, "NCHW", core.GetArgString(op, "order", ""))
	assert.Empty(t, op.Engine)
	assert.False(t, core.HasArgument(op, "group"))

	assert.Equal(t, []core.BlobRef{"conv1_w", "conv1_b"}, m.Params())
	assert.Equal(t, []core.BlobRef{"conv1_w"}, m.Weights())
}

// TestConv_NHWC verifies the channels-last weight layout.
func TestConv_NHWC(t *testing.T) {
	m := model.New("m")
	Conv(m, "data", "conv1", 4, 8, 3, WithOrder("NHWC"))

	fills := initOps(m)
	require.NotEmpty(t, fills)
	assert.Equal(t, []int64{8, 3, 3, 4}, core.GetArgInts(fills[0], "shape"))
	assert.Equal(t, "NHWC", core.GetArgString(netOps(m)[0], "order", ""))
}

// TestConv_NoBias verifies WithNoBias drops the bias input and param.
func TestConv_NoBias(t *testing.T) {
	m := model.New("m")
	Conv(m, "data", "conv1", 3, 16, 3, WithNoBias())

	require.Len(t, initOps(m), 1)
	op := netOps(m)[0]
	assert.Equal(t, []string{"data", "conv1_w"}, op.Input)
	assert.Empty(t, m.Biases())
}

// TestConv_GPUEngine verifies the session preference turns on the vendor
// engine and its tuning arguments.
func TestConv_GPUEngine(t *testing.T) {
	forceCUDA(t)
	m := model.New("m", model.WithArgScope(model.ArgScope{
		Order:         "NCHW",
		UseGPUEngine:  true,
		WSNBytesLimit: 1 << 20,
	}))
	Conv(m, "data", "conv1", 3, 16, 3)

	op := netOps(m)[0]
	assert.Equal(t, device.EngineCUDNN, op.Engine)
	es := core.GetArgument(op, device.ArgExhaustiveSearch)
	require.NotNil(t, es)
	require.NotNil(t, es.I)
	assert.EqualValues(t, 0, *es.I)
	assert.EqualValues(t, 1<<20, core.GetArgInt(op, device.ArgWSNBytesLimit, 0))
}

// TestConv_EngineOverride verifies the call site overrides the session
// default, in both directions.
func TestConv_EngineOverride(t *testing.T) {
	forceCUDA(t)

	scopeOn := model.New("m", model.WithArgScope(model.ArgScope{UseGPUEngine: true}))
	Conv(scopeOn, "data", "conv1", 3, 16, 3, WithGPUEngine(false))
	assert.Empty(t, netOps(scopeOn)[0].Engine)

	scopeOff := model.New("m2")
	Conv(scopeOff, "data", "conv1", 3, 16, 3,
		WithGPUEngine(true), WithExhaustiveSearch(true))
	op := netOps(scopeOff)[0]
	assert.Equal(t, device.EngineCUDNN, op.Engine)
	es := core.GetArgument(op, device.ArgExhaustiveSearch)
	require.NotNil(t, es)
	require.NotNil(t, es.I)
	assert.EqualValues(t, 1, *es.I)
}

// TestConv_MIOPEN verifies the HIP flavor picks MIOPEN.
func TestConv_MIOPEN(t *testing.T) {
	prev := device.HasHIP()
	device.SetHIPEnabled(true)
	t.Cleanup(func() { device.SetHIPEnabled(prev) })

	m := model.New("m")
	Conv(m, "data", "conv1", 3, 16, 3, WithGPUEngine(true))
	assert.Equal(t, device.EngineMIOPEN, netOps(m)[0].Engine)
}

// TestConv_Grouped verifies the per-group weight shape and the group arg.
func TestConv_Grouped(t *testing.T) {
	m := model.New("m")
	Conv(m, "data", "conv1", 8, 16, 3, WithGroup(4))

	assert.Equal(t, []int64{16, 2, 3, 3}, core.GetArgInts(initOps(m)[0], "shape"))
	assert.EqualValues(t, 4, core.GetArgInt(netOps(m)[0], "group", 0))
}

// TestConv_GroupValidation verifies the divisibility and layout panics.
func TestConv_GroupValidation(t *testing.T) {
	assert.Panics(t, func() {
		Conv(model.New("m"), "data", "conv1", 7, 16, 3, WithGroup(2))
	})
	assert.Panics(t, func() {
		Conv(model.New("m"), "data", "conv1", 8, 15, 3, WithGroup(2))
	})
	assert.Panics(t, func() {
		Conv(model.New("m"), "data", "conv1", 8, 16, 3, WithGroup(2), WithOrder("NHWC"))
	})
}

// TestConvNd verifies the kernel list form and its layout restriction.
func TestConvNd(t *testing.T) {
	m := model.New("m")
	ConvNd(m, "video", "conv1", 3, 8, []int{3, 5, 5})

	assert.Equal(t, []int64{8, 3, 3, 5, 5}, core.GetArgInts(initOps(m)[0], "shape"))
	op := netOps(m)[0]
	assert.Equal(t, []int64{3, 5, 5}, core.GetArgInts(op, "kernels"))
	assert.False(t, core.HasArgument(op, "kernel"))

	assert.Panics(t, func() {
		ConvNd(model.New("m"), "x", "y", 3, 8, []int{3}, WithOrder("NHWC"))
	})
	assert.Panics(t, func() {
		ConvNd(model.New("m"), "x", "y", 3, 8, nil)
	})
}

// TestConvTranspose verifies the input-channels-first weight layout.
func TestConvTranspose(t *testing.T) {
	m := model.New("m")
	ConvTranspose(m, "x", "up1", 16, 8, 2, WithStride(2))

	assert.Equal(t, []int64{16, 8, 2, 2}, core.GetArgInts(initOps(m)[0], "shape"))
	op := netOps(m)[0]
	assert.Equal(t, "ConvTranspose", op.Type)
	assert.Equal(t, []string{"x", "up1_w", "up1_b"}, op.Input)

	nhwc := model.New("m2")
	ConvTranspose(nhwc, "x", "up1", 16, 8, 2, WithOrder("NHWC"))
	assert.Equal(t, []int64{16, 2, 2, 8}, core.GetArgInts(initOps(nhwc)[0], "shape"))
}

// TestGroupConvDeprecated verifies the legacy split/conv/concat realization.
func TestGroupConvDeprecated(t *testing.T) {
	m := model.New("m")
	out := GroupConvDeprecated(m, "data", "gc", 4, 6, 3, 2)
	assert.Equal(t, core.BlobRef("gc"), out)

	ops := netOps(m)
	require.Len(t, ops, 4)

	split := ops[0]
	assert.Equal(t, "DepthSplit", split.Type)
	assert.Equal(t, []string{"_gc_gconv_split_0", "_gc_gconv_split_1"}, split.Output)
	assert.Equal(t, []int64{2, 2}, core.GetArgInts(split, "dimensions"))

	for i, op := range ops[1:3] {
		assert.Equal(t, "Conv", op.Type)
		assert.Len(t, op.Input, 3)
		assert.Equal(t, split.Output[i], op.Input[0])
	}
	assert.Equal(t, []string{"gc_gconv_0_w", "gc_gconv_1_w"},
		core.BlobNames(m.Weights()))
	assert.Equal(t, []int64{3, 2, 3, 3}, core.GetArgInts(initOps(m)[0], "shape"))

	concat := ops[3]
	assert.Equal(t, "Concat", concat.Type)
	assert.Equal(t, []string{"gc_gconv_0", "gc_gconv_1"}, concat.Input)
	assert.Equal(t, []string{"gc", "_gc_concat_dims"}, concat.Output)

	assert.Panics(t, func() {
		GroupConvDeprecated(model.New("m2"), "data", "gc", 5, 6, 3, 2)
	})
}

// TestConv_CustomInit verifies initializer overrides reach the init net.
func TestConv_CustomInit(t *testing.T) {
	m := model.New("m")
	Conv(m, "data", "conv1", 3, 16, 3,
		WithWeightInit(model.MSRAFill()),
		WithBiasInit(model.ConstantFill(0.1)))

	fills := initOps(m)
	assert.Equal(t, "MSRAFill", fills[0].Type)
	assert.Equal(t, "ConstantFill", fills[1].Type)
	assert.InDelta(t, 0.1, core.GetArgFloat(fills[1], "value", 0), 1e-6)
}

// TestConv_DeviceOption verifies device placement lands on the op.
func TestConv_DeviceOption(t *testing.T) {
	forceCUDA(t)
	m := model.New("m")
	Conv(m, "data", "conv1", 3, 16, 3, WithDeviceOption(device.GPUOption(1)))

	op := netOps(m)[0]
	require.NotNil(t, op.DeviceOption)
	assert.Equal(t, c2pb.DeviceCUDA, op.DeviceOption.DeviceType)
	assert.EqualValues(t, 1, op.DeviceOption.CudaGPUID)
}
