package brew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/device"
	"github.com/born-ml/barista/internal/model"
)

// TestConcat verifies the hidden split-dims output and the order argument.
func TestConcat(t *testing.T) {
	m := model.New("m")
	out := Concat(m, []core.BlobRef{"a", "b", "c"}, "cat")
	assert.Equal(t, core.BlobRef("cat"), out)

	op := netOps(m)[0]
	assert.Equal(t, []string{"a", "b", "c"}, op.Input)
	assert.Equal(t, []string{"cat", "_cat_concat_dims"}, op.Output)
	assert.Equal(t, "NCHW", core.GetArgString(op, "order", ""))
	assert.False(t, core.HasArgument(op, "axis"))
}

// TestConcat_Axis verifies an explicit axis replaces the order argument.
func TestConcat_Axis(t *testing.T) {
	m := model.New("m")
	Concat(m, []core.BlobRef{"a", "b"}, "cat", WithAxis(1))

	op := netOps(m)[0]
	assert.EqualValues(t, 1, core.GetArgInt(op, "axis", 0))
	assert.False(t, core.HasArgument(op, "order"))
}

// TestDepthConcat verifies the deprecated alias forwards.
func TestDepthConcat(t *testing.T) {
	m := model.New("m")
	out := DepthConcat(m, []core.BlobRef{"a", "b"}, "cat")
	assert.Equal(t, core.BlobRef("cat"), out)
	assert.Equal(t, "Concat", netOps(m)[0].Type)
}

// TestSum verifies multi-input and in-place use.
func TestSum(t *testing.T) {
	m := model.New("m")
	out := Sum(m, []core.BlobRef{"a", "b"}, "a")
	assert.Equal(t, core.BlobRef("a"), out)

	op := netOps(m)[0]
	assert.Equal(t, "Sum", op.Type)
	assert.Equal(t, []string{"a", "b"}, op.Input)
	assert.Equal(t, []string{"a"}, op.Output)
}

// TestTranspose verifies the axes passthrough and engine preference.
func TestTranspose(t *testing.T) {
	forceCUDA(t)
	m := model.New("m")
	Transpose(m, "x", "xt", WithArg("axes", []int64{0, 2, 3, 1}), WithGPUEngine(true))

	op := netOps(m)[0]
	assert.Equal(t, "Transpose", op.Type)
	assert.Equal(t, []int64{0, 2, 3, 1}, core.GetArgInts(op, "axes"))
	assert.Equal(t, device.EngineCUDNN, op.Engine)
}

// TestImageInput_NCHW verifies the layout detour through the NHWC
// intermediate.
func TestImageInput_NCHW(t *testing.T) {
	m := model.New("m")
	data, label := ImageInput(m, "reader", "data", "label", WithArg("batch_size", 64))
	assert.Equal(t, core.BlobRef("data"), data)
	assert.Equal(t, core.BlobRef("label"), label)

	ops := netOps(m)
	require.Len(t, ops, 2)
	assert.Equal(t, "ImageInput", ops[0].Type)
	assert.Equal(t, []string{"data_nhwc", "label"}, ops[0].Output)
	assert.EqualValues(t, 64, core.GetArgInt(ops[0], "batch_size", 0))
	assert.Equal(t, "NHWC2NCHW", ops[1].Type)
	assert.Equal(t, []string{"data_nhwc"}, ops[1].Input)
	assert.Equal(t, []string{"data"}, ops[1].Output)
}

// TestImageInput_GPUTransform verifies the on-device layout flip.
func TestImageInput_GPUTransform(t *testing.T) {
	m := model.New("m")
	ImageInput(m, "reader", "data", "label", WithUseGPUTransform(true))

	ops := netOps(m)
	require.Len(t, ops, 1)
	assert.Equal(t, []string{"data", "label"}, ops[0].Output)
	arg := core.GetArgument(ops[0], "use_gpu_transform")
	require.NotNil(t, arg)
	require.NotNil(t, arg.I)
	assert.EqualValues(t, 1, *arg.I)
}

// TestImageInput_NHWC verifies the straight-through path.
func TestImageInput_NHWC(t *testing.T) {
	m := model.New("m")
	ImageInput(m, "reader", "data", "label", WithOrder("NHWC"))

	ops := netOps(m)
	require.Len(t, ops, 1)
	assert.Equal(t, []string{"data", "label"}, ops[0].Output)
	assert.False(t, core.HasArgument(ops[0], "use_gpu_transform"))
}

// TestVideoInput verifies the passthrough.
func TestVideoInput(t *testing.T) {
	m := model.New("m")
	outs := VideoInput(m, "reader", []core.BlobRef{"clips", "labels"},
		WithArg("batch_size", 16))
	assert.Equal(t, []core.BlobRef{"clips", "labels"}, outs)

	op := netOps(m)[0]
	assert.Equal(t, "VideoInput", op.Type)
	assert.Equal(t, []string{"clips", "labels"}, op.Output)
	assert.EqualValues(t, 16, core.GetArgInt(op, "batch_size", 0))
}
