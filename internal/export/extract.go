package export

import (
	"fmt"

	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// updateOpTypes are emitted by the optimizer builders and training
// utilities; they never belong in a predictor.
var updateOpTypes = map[string]bool{
	"Iter":         true,
	"LearningRate": true,
	"WeightedSum":  true,
	"Adagrad":      true,
}

// ExtractPredictorNets builds the deployable pair from a trained model: the
// predict net is the train net with gradient and update operators stripped
// and then pruned back from the outputs, and the init net keeps only the
// fills for parameters the predict net consumes.
//
// External inputs of the predict net are the given inputs plus the consumed
// parameters; external outputs are the given outputs. Any other blob the
// predictor would need is an error, as is an operator still in train mode
// (is_test=0).
func ExtractPredictorNets(m *model.Helper, inputs, outputs []core.BlobRef) (initNet, predictNet *core.Net, err error) {
	if len(outputs) == 0 {
		return nil, nil, fmt.Errorf("at least one output blob is required")
	}

	var candidates []*c2pb.OperatorDef
	for _, op := range m.Net().Proto().Op {
		if op.IsGradientOp || updateOpTypes[op.Type] {
			continue
		}
		candidates = append(candidates, op)
	}

	// Walk backwards from the outputs, keeping only producing operators.
	needed := make(map[string]bool, len(outputs))
	for _, b := range outputs {
		needed[string(b)] = true
	}
	kept := make([]*c2pb.OperatorDef, 0, len(candidates))
	for i := len(candidates) - 1; i >= 0; i-- {
		op := candidates[i]
		wanted := false
		for _, out := range op.Output {
			if needed[out] {
				wanted = true
				break
			}
		}
		if !wanted {
			continue
		}
		if err := checkTestMode(op); err != nil {
			return nil, nil, err
		}
		kept = append(kept, op)
		for _, in := range op.Input {
			needed[in] = true
		}
	}
	if len(kept) == 0 {
		return nil, nil, fmt.Errorf("no operators produce the requested outputs %v", outputs)
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}

	produced := make(map[string]bool)
	for _, op := range kept {
		for _, out := range op.Output {
			produced[out] = true
		}
	}
	inputSet := make(map[string]bool, len(inputs))
	for _, b := range inputs {
		inputSet[string(b)] = true
	}
	paramSet := make(map[string]bool)
	for _, p := range m.AllParams() {
		paramSet[string(p)] = true
	}
	consumed := make(map[string]bool)
	for blob := range needed {
		if produced[blob] || inputSet[blob] {
			continue
		}
		if !paramSet[blob] {
			return nil, nil, fmt.Errorf("blob %s is required by the predictor but is neither an input nor a parameter", blob)
		}
		consumed[blob] = true
	}

	predictDef := &c2pb.NetDef{Name: m.Name() + "_predict"}
	predictDef.ExternalInput = core.BlobNames(inputs)
	for _, p := range m.AllParams() {
		if consumed[string(p)] {
			predictDef.ExternalInput = append(predictDef.ExternalInput, string(p))
		}
	}
	predictDef.ExternalOutput = core.BlobNames(outputs)
	for _, op := range kept {
		predictDef.Op = append(predictDef.Op, op.Clone())
	}

	initDef := &c2pb.NetDef{Name: m.Name() + "_predict_init"}
	for _, op := range m.ParamInitNet().Proto().Op {
		if fillsConsumedParam(op, consumed) {
			initDef.Op = append(initDef.Op, op.Clone())
		}
	}

	return core.FromProto(initDef), core.FromProto(predictDef), nil
}

// checkTestMode rejects operators carrying is_test=0. Extracting those means
// the caller built a train-mode graph, which a predictor must not run.
func checkTestMode(op *c2pb.OperatorDef) error {
	arg := core.GetArgument(op, "is_test")
	if arg != nil && arg.I != nil && *arg.I == 0 {
		return fmt.Errorf("operator %s has is_test=0, extract from a test-mode model", op.Type)
	}
	return nil
}

func fillsConsumedParam(op *c2pb.OperatorDef, consumed map[string]bool) bool {
	if len(op.Output) == 0 {
		return false
	}
	for _, out := range op.Output {
		if !consumed[out] {
			return false
		}
	}
	return true
}
