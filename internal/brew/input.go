package brew

import (
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// ImageInput reads (image, label) batches from a database reader blob. The
// reader produces NHWC, so under NCHW the data either detours through an
// `_nhwc` intermediate and a layout flip, or the GPU transform handles the
// flip on device. Reader arguments (batch size, crop, scale) go through
// WithArg.
func ImageInput(m *model.Helper, reader, data, label core.BlobRef, opts ...Option) (core.BlobRef, core.BlobRef) {
	cfg := makeConfig(opts)
	switch order := cfg.resolveOrder(m); {
	case order == "NCHW" && cfg.useGPUTransform:
		op := m.Net().AddOp("ImageInput", []core.BlobRef{reader},
			[]core.BlobRef{data, label},
			core.MakeArgument("use_gpu_transform", true))
		cfg.finish(op)
	case order == "NCHW":
		nhwc := data + "_nhwc"
		op := m.Net().AddOp("ImageInput", []core.BlobRef{reader},
			[]core.BlobRef{nhwc, label})
		cfg.finish(op)
		m.Net().AddOp("NHWC2NCHW", []core.BlobRef{nhwc}, []core.BlobRef{data})
	default:
		op := m.Net().AddOp("ImageInput", []core.BlobRef{reader},
			[]core.BlobRef{data, label})
		cfg.finish(op)
	}
	return data, label
}

// VideoInput reads clip batches from a database reader blob. All reader
// arguments go through WithArg.
func VideoInput(m *model.Helper, reader core.BlobRef, blobsOut []core.BlobRef, opts ...Option) []core.BlobRef {
	cfg := makeConfig(opts)
	op := m.Net().AddOp("VideoInput", []core.BlobRef{reader}, blobsOut)
	cfg.finish(op)
	return blobsOut
}
