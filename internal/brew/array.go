package brew

import (
	"log/slog"

	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// Concat joins blobs along the channel dimension (or WithAxis). The split
// sizes land in a hidden second output so the gradient can undo the join.
// When an axis is given the order argument is dropped, since the op rejects
// both at once.
func Concat(m *model.Helper, blobsIn []core.BlobRef, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	arg := core.MakeArgument("order", cfg.resolveOrder(m))
	if cfg.axis != nil {
		arg = core.MakeArgument("axis", *cfg.axis)
	}
	op := m.Net().AddOp("Concat", blobsIn,
		[]core.BlobRef{blobOut, "_" + blobOut + "_concat_dims"}, arg)
	cfg.finish(op)
	return blobOut
}

// DepthConcat is the old name for Concat.
func DepthConcat(m *model.Helper, blobsIn []core.BlobRef, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	slog.Warn("DepthConcat is deprecated, use Concat instead")
	return Concat(m, blobsIn, blobOut, opts...)
}

// Sum adds blobs elementwise. In-place use (blobOut among blobsIn) is fine.
func Sum(m *model.Helper, blobsIn []core.BlobRef, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	op := m.Net().AddOp("Sum", blobsIn, []core.BlobRef{blobOut})
	cfg.finish(op)
	return blobOut
}

// Transpose permutes dimensions. Axes go through WithArg("axes", ...); with
// no axes the op reverses them.
func Transpose(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	op := m.Net().AddOp("Transpose", []core.BlobRef{blobIn}, []core.BlobRef{blobOut})
	if e := cfg.resolveEngine(m); e != "" {
		op.Engine = e
	}
	cfg.finish(op)
	return blobOut
}
