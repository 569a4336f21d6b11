package brew

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// Conv adds a 2d convolution with weight `<out>_w` and, unless WithNoBias,
// bias `<out>_b`.
func Conv(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel int, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	return convBase(m, false, blobIn, blobOut, dimIn, dimOut, []int{kernel}, cfg)
}

// ConvNd adds a convolution with one kernel size per spatial dimension.
// Only NCHW layout is supported.
func ConvNd(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, kernels []int, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	if len(kernels) == 0 {
		panic("ConvNd requires a kernel size per spatial dimension")
	}
	if cfg.resolveOrder(m) != "NCHW" {
		panic("ConvNd supports only NCHW layout")
	}
	return convBase(m, true, blobIn, blobOut, dimIn, dimOut, kernels, cfg)
}

// GroupConv is Conv for callers that pass the group count positionally.
func GroupConv(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel, group int, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	cfg.group = group
	return convBase(m, false, blobIn, blobOut, dimIn, dimOut, []int{kernel}, cfg)
}

func convBase(m *model.Helper, nd bool, blobIn, blobOut core.BlobRef, dimIn, dimOut int, kernels []int, cfg *config) core.BlobRef {
	order := cfg.resolveOrder(m)
	group := cfg.group
	if group == 0 {
		group = 1
	}
	if dimIn%group != 0 {
		panic(fmt.Sprintf("input channels %d not divisible by group %d", dimIn, group))
	}
	if dimOut%group != 0 {
		panic(fmt.Sprintf("output channels %d not divisible by group %d", dimOut, group))
	}
	if group != 1 && order != "NCHW" {
		panic("grouped convolution supports only NCHW layout")
	}

	spatial := kernels
	if !nd {
		spatial = []int{kernels[0], kernels[0]}
	}
	weight := createParam(m, blobOut+"_w",
		convWeightShape(order, dimOut, dimIn/group, spatial),
		cfg.weightInitializer(), model.TagWeight)
	inputs := []core.BlobRef{blobIn, weight}
	if !cfg.noBias {
		bias := createParam(m, blobOut+"_b", []int64{int64(dimOut)},
			cfg.biasInitializer(), model.TagBias)
		inputs = append(inputs, bias)
	}

	args := make([]*c2pb.Argument, 0, 8)
	if nd {
		args = append(args, core.MakeArgument("kernels", intsToInt64(kernels)))
	} else {
		args = append(args, core.MakeArgument("kernel", kernels[0]))
	}
	args = append(args, cfg.geometryArgs(order)...)
	if group > 1 {
		args = append(args, core.MakeArgument("group", group))
	}

	op := m.Net().AddOp("Conv", inputs, []core.BlobRef{blobOut}, args...)
	cfg.applyConvEngine(m, op)
	cfg.finish(op)
	return blobOut
}

// ConvTranspose adds a transposed convolution. The weight leads with the
// input channels, mirroring the forward conv layout.
func ConvTranspose(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel int, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	order := cfg.resolveOrder(m)

	k := int64(kernel)
	weightShape := []int64{int64(dimIn), int64(dimOut), k, k}
	if order != "NCHW" {
		weightShape = []int64{int64(dimIn), k, k, int64(dimOut)}
	}
	weight := createParam(m, blobOut+"_w", weightShape, cfg.weightInitializer(), model.TagWeight)
	bias := createParam(m, blobOut+"_b", []int64{int64(dimOut)}, cfg.biasInitializer(), model.TagBias)

	args := make([]*c2pb.Argument, 0, 6)
	args = append(args, core.MakeArgument("kernel", kernel))
	args = append(args, cfg.geometryArgs(order)...)

	op := m.Net().AddOp("ConvTranspose",
		[]core.BlobRef{blobIn, weight, bias}, []core.BlobRef{blobOut}, args...)
	cfg.applyConvEngine(m, op)
	cfg.finish(op)
	return blobOut
}

// GroupConvDeprecated is the legacy realization of grouped convolution:
// split the input along channels, convolve each slice with its own
// parameters, and concatenate. Kept for graphs that still carry the
// per-group parameter names.
func GroupConvDeprecated(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut, kernel, group int, opts ...Option) core.BlobRef {
	slog.Warn("GroupConvDeprecated is deprecated, use GroupConv instead")
	cfg := makeConfig(opts)
	order := cfg.resolveOrder(m)
	if dimIn%group != 0 {
		panic(fmt.Sprintf("input channels %d not divisible by group %d", dimIn, group))
	}
	if dimOut%group != 0 {
		panic(fmt.Sprintf("output channels %d not divisible by group %d", dimOut, group))
	}

	splits := make([]core.BlobRef, group)
	dims := make([]int64, group)
	for i := range splits {
		splits[i] = core.BlobRef(fmt.Sprintf("_%s_gconv_split_%d", blobOut, i))
		dims[i] = int64(dimIn / group)
	}
	m.Net().AddOp("DepthSplit", []core.BlobRef{blobIn}, splits,
		core.MakeArgument("dimensions", dims),
		core.MakeArgument("order", order))

	weightShape := convWeightShape(order, dimOut/group, dimIn/group, []int{kernel, kernel})
	convOuts := make([]core.BlobRef, group)
	for i := range convOuts {
		weight := createParam(m, core.BlobRef(fmt.Sprintf("%s_gconv_%d_w", blobOut, i)),
			weightShape, cfg.weightInitializer(), model.TagWeight)
		inputs := []core.BlobRef{splits[i], weight}
		if !cfg.noBias {
			bias := createParam(m, core.BlobRef(fmt.Sprintf("%s_gconv_%d_b", blobOut, i)),
				[]int64{int64(dimOut / group)}, cfg.biasInitializer(), model.TagBias)
			inputs = append(inputs, bias)
		}
		convOuts[i] = core.BlobRef(fmt.Sprintf("%s_gconv_%d", blobOut, i))

		args := make([]*c2pb.Argument, 0, 6)
		args = append(args, core.MakeArgument("kernel", kernel))
		args = append(args, cfg.geometryArgs(order)...)
		op := m.Net().AddOp("Conv", inputs, []core.BlobRef{convOuts[i]}, args...)
		cfg.applyConvEngine(m, op)
		cfg.finish(op)
	}

	m.Net().AddOp("Concat", convOuts,
		[]core.BlobRef{blobOut, "_" + blobOut + "_concat_dims"},
		core.MakeArgument("order", order))
	return blobOut
}

// geometryArgs renders stride, padding, dilation, and order.
func (c *config) geometryArgs(order string) []*c2pb.Argument {
	args := make([]*c2pb.Argument, 0, 4)
	if c.stride > 0 {
		args = append(args, core.MakeArgument("stride", c.stride))
	}
	args = append(args, c.padArgs()...)
	if c.dilation > 0 {
		args = append(args, core.MakeArgument("dilation", c.dilation))
	}
	args = append(args, core.MakeArgument("order", order))
	return args
}

// convWeightShape lays out the filter tensor: output channels lead, the
// per-group input channels sit next to them under NCHW and after the spatial
// dimensions under NHWC.
func convWeightShape(order string, dimOut, dimInPerGroup int, spatial []int) []int64 {
	shape := make([]int64, 0, len(spatial)+2)
	shape = append(shape, int64(dimOut))
	if order == "NCHW" {
		shape = append(shape, int64(dimInPerGroup))
	}
	for _, k := range spatial {
		shape = append(shape, int64(k))
	}
	if order != "NCHW" {
		shape = append(shape, int64(dimInPerGroup))
	}
	return shape
}

func intsToInt64(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
