package brew

import (
	"errors"

	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// FC adds a fully connected layer with weight `<out>_w` of shape
// [dimOut, dimIn] and bias `<out>_b`.
func FC(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...Option) core.BlobRef {
	return fcBase(m, "FC", blobIn, blobOut, dimIn, dimOut, makeConfig(opts))
}

// PackedFC is FC over a pre-packed weight layout.
func PackedFC(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...Option) core.BlobRef {
	return fcBase(m, "PackedFC", blobIn, blobOut, dimIn, dimOut, makeConfig(opts))
}

func fcBase(m *model.Helper, opType string, blobIn, blobOut core.BlobRef, dimIn, dimOut int, cfg *config) core.BlobRef {
	weight := createParam(m, blobOut+"_w", []int64{int64(dimOut), int64(dimIn)},
		cfg.weightInitializer(), model.TagWeight)
	bias := createParam(m, blobOut+"_b", []int64{int64(dimOut)},
		cfg.biasInitializer(), model.TagBias)

	var args []*c2pb.Argument
	if cfg.axis != nil {
		args = append(args, core.MakeArgument("axis", *cfg.axis))
	}
	op := m.Net().AddOp(opType, []core.BlobRef{blobIn, weight, bias},
		[]core.BlobRef{blobOut}, args...)
	cfg.finish(op)
	return blobOut
}

// FCPrune adds a fully connected layer with a pruning mask. The mask starts
// at all-ones and the threshold argument tells the op when to zero weights.
func FCPrune(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	matrix := []int64{int64(dimOut), int64(dimIn)}
	weight := createParam(m, blobOut+"_w", matrix, cfg.weightInitializer(), model.TagWeight)
	mask := createParam(m, blobOut+"_m", matrix, model.ConstantFill(1.0), model.TagComputedParam)
	bias := createParam(m, blobOut+"_b", []int64{int64(dimOut)},
		cfg.biasInitializer(), model.TagBias)

	threshold := float32(0.00001)
	if cfg.threshold != nil {
		threshold = *cfg.threshold
	}
	args := []*c2pb.Argument{core.MakeArgument("threshold", threshold)}
	if cfg.compLB != nil {
		args = append(args, core.MakeArgument("comp_lb", *cfg.compLB))
	}
	op := m.Net().AddOp("FC_Prune", []core.BlobRef{blobIn, weight, mask, bias},
		[]core.BlobRef{blobOut}, args...)
	cfg.finish(op)
	return blobOut
}

// FCDecomp adds a rank-factorized fully connected layer: the weight matrix
// is replaced by u [dimOut, rank] and v [dimIn, rank]. Default rank 5.
func FCDecomp(m *model.Helper, blobIn, blobOut core.BlobRef, dimIn, dimOut int, opts ...Option) core.BlobRef {
	cfg := makeConfig(opts)
	rank := cfg.rank
	if rank == 0 {
		rank = 5
	}
	u := createParam(m, blobOut+"_u", []int64{int64(dimOut), int64(rank)},
		cfg.weightInitializer(), model.TagWeight)
	v := createParam(m, blobOut+"_v", []int64{int64(dimIn), int64(rank)},
		cfg.weightInitializer(), model.TagWeight)
	bias := createParam(m, blobOut+"_b", []int64{int64(dimOut)},
		cfg.biasInitializer(), model.TagBias)

	op := m.Net().AddOp("FC_Decomp", []core.BlobRef{blobIn, u, v, bias},
		[]core.BlobRef{blobOut})
	cfg.finish(op)
	return blobOut
}

// FCSparse adds a fully connected layer over a pre-allocated sparse weight
// in CSR form. The blobs must already exist; they are registered as sparse
// parameters so optimizers can skip them.
func FCSparse(m *model.Helper, blobIn, blobOut, wCSR, iw, jw, bias core.BlobRef, opts ...Option) (core.BlobRef, error) {
	if wCSR == "" || iw == "" || jw == "" || bias == "" {
		return "", errors.New("FCSparse requires pre-allocated wCSR, iw, jw and bias blobs")
	}
	cfg := makeConfig(opts)
	for _, p := range []core.BlobRef{wCSR, iw, jw} {
		m.AddParameter(p, model.TagWeight)
	}
	m.AddParameter(bias, model.TagBias)
	m.MarkSparse(wCSR, iw, jw)

	op := m.Net().AddOp("FC_Sparse", []core.BlobRef{blobIn, wCSR, iw, jw, bias},
		[]core.BlobRef{blobOut})
	cfg.finish(op)
	return blobOut, nil
}
