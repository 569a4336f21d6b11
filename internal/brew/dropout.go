package brew

import (
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// Dropout zeroes a random fraction of activations during training. The
// is-test option is mandatory so training and deploy graphs are built
// deliberately rather than by a default nobody chose. The mask lands in a
// hidden second output.
func Dropout(m *model.Helper, blobIn, blobOut core.BlobRef, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	if cfg.isTest == nil {
		panic("Dropout requires the is-test option")
	}

	engine := cfg.resolveEngine(m)
	if engine == "" {
		engine = "DEFAULT"
	}

	var args []*c2pb.Argument
	if cfg.ratio != nil {
		args = append(args, core.MakeArgument("ratio", *cfg.ratio))
	}
	args = append(args, core.MakeArgument("is_test", *cfg.isTest))

	op := m.Net().AddOp("Dropout", []core.BlobRef{blobIn},
		[]core.BlobRef{blobOut, "_" + blobOut + "_mask"}, args...)
	op.Engine = engine
	cfg.finish(op)
	return blobOut
}
