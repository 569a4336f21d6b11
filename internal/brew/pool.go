package brew

import (
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// MaxPool adds max pooling. Kernel, stride, and padding come through the
// geometry options.
func MaxPool(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return poolBase(m, "MaxPool", blobIn, blobOut, makeConfig(opts))
}

// AveragePool adds average pooling.
func AveragePool(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	return poolBase(m, "AveragePool", blobIn, blobOut, makeConfig(opts))
}

func poolBase(m *model.Helper, opType string, blobIn, blobOut core.BlobRef, cfg *config) core.BlobRef {
	op := m.Net().AddOp(opType, []core.BlobRef{blobIn}, []core.BlobRef{blobOut},
		cfg.poolArgs(cfg.resolveOrder(m))...)
	if e := cfg.resolveEngine(m); e != "" {
		op.Engine = e
	}
	cfg.finish(op)
	return blobOut
}

// MaxPoolWithIndex is max pooling that records the argmax positions in
// `<out>_index` for a later unpooling pass. NCHW only.
func MaxPoolWithIndex(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	order := cfg.resolveOrder(m)
	if order != "NCHW" {
		panic("MaxPoolWithIndex supports only NCHW layout")
	}
	op := m.Net().AddOp("MaxPoolWithIndex", []core.BlobRef{blobIn},
		[]core.BlobRef{blobOut, blobOut + "_index"}, cfg.poolArgs(order)...)
	cfg.finish(op)
	return blobOut
}

func (c *config) poolArgs(order string) []*c2pb.Argument {
	args := make([]*c2pb.Argument, 0, 4)
	if len(c.kernels) == 1 {
		args = append(args, core.MakeArgument("kernel", c.kernels[0]))
	}
	if c.stride > 0 {
		args = append(args, core.MakeArgument("stride", c.stride))
	}
	args = append(args, c.padArgs()...)
	args = append(args, core.MakeArgument("order", order))
	return args
}
