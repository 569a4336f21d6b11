package core

import (
	"fmt"

	"github.com/born-ml/barista/internal/c2pb"
)

// Gradient is a gradient maker's result: the operators to append plus the
// gradient blob for each forward input. An empty entry means the input
// receives no gradient (labels, saved statistics).
type Gradient struct {
	Ops    []*c2pb.OperatorDef
	GInput []string
}

// GradientMaker derives gradient operators for one forward operator. gOutput
// aligns with the forward op's outputs; entries are empty for outputs whose
// gradient has not been requested.
type GradientMaker func(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error)

var gradientMakers = map[string]GradientMaker{}

// RegisterGradient registers a maker for an operator type. Registering the
// same type twice panics.
func RegisterGradient(opType string, maker GradientMaker) {
	if _, ok := gradientMakers[opType]; ok {
		panic(fmt.Sprintf("gradient maker already registered for %s", opType))
	}
	gradientMakers[opType] = maker
}

// HasGradient reports whether a gradient maker exists for an operator type.
func HasGradient(opType string) bool {
	_, ok := gradientMakers[opType]
	return ok
}

// AddGradientOperators appends gradient operators for every operator on the
// backward path from the given losses. Each loss is seeded with a constant
// gradient of one. The returned map takes forward blobs to their gradient
// blobs.
//
// When a blob feeds several consumers its per-consumer gradients are
// accumulated with an in-place Sum. In-place forward operators (input name
// equal to output name) propagate their gradient in place instead.
func (n *Net) AddGradientOperators(losses ...BlobRef) (map[BlobRef]BlobRef, error) {
	if len(losses) == 0 {
		return nil, fmt.Errorf("at least one loss blob is required")
	}
	forward := n.proto.Op
	gradMap := make(map[string]string)
	autosplit := make(map[string]int)

	for _, y := range losses {
		if !n.BlobIsDefined(y) {
			return nil, fmt.Errorf("loss blob %s is not produced by net %s", y, n.Name())
		}
		seed := string(y) + "_autogen_grad"
		op := n.AddOp("ConstantFill", []BlobRef{y}, []BlobRef{BlobRef(seed)},
			MakeArgument("value", float32(1.0)))
		op.IsGradientOp = true
		gradMap[string(y)] = seed
	}

	for i := len(forward) - 1; i >= 0; i-- {
		op := forward[i]
		gOutput := make([]string, len(op.Output))
		needed := false
		for j, out := range op.Output {
			if g, ok := gradMap[out]; ok {
				gOutput[j] = g
				needed = true
			}
		}
		if !needed {
			continue
		}

		maker, ok := gradientMakers[op.Type]
		if !ok {
			return nil, fmt.Errorf("no gradient maker registered for operator type %s", op.Type)
		}
		grad, err := maker(op, gOutput)
		if err != nil {
			return nil, fmt.Errorf("gradient for %s: %w", op.Type, err)
		}
		if len(grad.GInput) != len(op.Input) {
			return nil, fmt.Errorf("gradient maker for %s returned %d input gradients for %d inputs",
				op.Type, len(grad.GInput), len(op.Input))
		}

		for _, g := range grad.Ops {
			g.IsGradientOp = true
			n.proto.Op = append(n.proto.Op, g)
			for _, out := range g.Output {
				n.defined[out] = true
			}
		}

		for j, in := range op.Input {
			gi := grad.GInput[j]
			if gi == "" {
				continue
			}
			existing, seen := gradMap[in]
			if !seen || stringsContain(op.Output, in) {
				gradMap[in] = gi
				continue
			}
			// Fan-out: another consumer already produced a gradient for this
			// blob. Rename this contribution and accumulate.
			split := fmt.Sprintf("%s_autosplit_%d", gradName(in), autosplit[in])
			autosplit[in]++
			renamed := false
			for _, g := range grad.Ops {
				for k, out := range g.Output {
					if out == gi {
						g.Output[k] = split
						renamed = true
					}
				}
			}
			if !renamed {
				// Aliased gradient (Sum-style makers emit no ops); the
				// contribution is the existing blob itself.
				split = gi
			} else {
				n.defined[split] = true
			}
			acc := &c2pb.OperatorDef{
				Type:         "Sum",
				Input:        []string{existing, split},
				Output:       []string{existing},
				DeviceOption: op.DeviceOption.Clone(),
				IsGradientOp: true,
			}
			n.proto.Op = append(n.proto.Op, acc)
			gradMap[in] = existing
		}
	}

	out := make(map[BlobRef]BlobRef, len(gradMap))
	for k, v := range gradMap {
		out[BlobRef(k)] = BlobRef(v)
	}
	return out, nil
}

func gradName(blob string) string { return blob + "_grad" }

func stringsContain(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// singleGradient builds one gradient op inheriting the forward op's
// arguments, engine and device placement.
func singleGradient(op *c2pb.OperatorDef, gradType string, inputs, outputs []string) *c2pb.OperatorDef {
	g := &c2pb.OperatorDef{
		Type:         gradType,
		Input:        inputs,
		Output:       outputs,
		Engine:       op.Engine,
		DeviceOption: op.DeviceOption.Clone(),
		IsGradientOp: true,
	}
	for _, arg := range op.Arg {
		g.Arg = append(g.Arg, arg.Clone())
	}
	return g
}

func init() {
	RegisterGradient("Conv", convLikeGradient)
	RegisterGradient("ConvTranspose", convLikeGradient)
	RegisterGradient("FC", fcGradient)
	RegisterGradient("Relu", reluGradient)
	RegisterGradient("PRelu", preluGradient)
	RegisterGradient("Softmax", softmaxGradient)
	RegisterGradient("SoftmaxWithLoss", softmaxWithLossGradient)
	RegisterGradient("LabelCrossEntropy", labelCrossEntropyGradient)
	RegisterGradient("AveragedLoss", averagedLossGradient)
	RegisterGradient("Dropout", dropoutGradient)
	RegisterGradient("LRN", lrnGradient)
	RegisterGradient("MaxPool", poolGradient)
	RegisterGradient("AveragePool", poolGradient)
	RegisterGradient("MaxPoolWithIndex", maxPoolWithIndexGradient)
	RegisterGradient("SpatialBN", spatialBNGradient)
	RegisterGradient("InstanceNorm", instanceNormGradient)
	RegisterGradient("Concat", concatGradient)
	RegisterGradient("DepthConcat", concatGradient)
	RegisterGradient("DepthSplit", depthSplitGradient)
	RegisterGradient("Sum", sumGradient)
	RegisterGradient("Transpose", transposeGradient)
	RegisterGradient("NHWC2NCHW", layoutFlipGradient("NCHW2NHWC"))
	RegisterGradient("NCHW2NHWC", layoutFlipGradient("NHWC2NCHW"))
	RegisterGradient("StopGradient", stopGradient)
}

// convLikeGradient covers Conv and ConvTranspose: [X, W(, b)] -> [Y].
func convLikeGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	hasBias := len(op.Input) == 3
	if len(op.Input) < 2 {
		return nil, fmt.Errorf("expected at least 2 inputs, got %d", len(op.Input))
	}
	gInput := make([]string, len(op.Input))
	gInput[0] = gradName(op.Input[0])
	gInput[1] = gradName(op.Input[1])
	outputs := []string{gInput[1]}
	if hasBias {
		gInput[2] = gradName(op.Input[2])
		outputs = append(outputs, gInput[2])
	}
	outputs = append(outputs, gInput[0])
	g := singleGradient(op, op.Type+"Gradient",
		[]string{op.Input[0], op.Input[1], gOutput[0]}, outputs)
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// fcGradient: [X, W, b] -> [Y].
func fcGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	if len(op.Input) != 3 {
		return nil, fmt.Errorf("expected 3 inputs, got %d", len(op.Input))
	}
	gInput := []string{gradName(op.Input[0]), gradName(op.Input[1]), gradName(op.Input[2])}
	g := singleGradient(op, "FCGradient",
		[]string{op.Input[0], op.Input[1], gOutput[0]},
		[]string{gInput[1], gInput[2], gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// reluGradient uses the forward output: [Y, dY] -> [dX].
func reluGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	gInput := []string{gradName(op.Input[0])}
	g := singleGradient(op, "ReluGradient",
		[]string{op.Output[0], gOutput[0]}, []string{gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// preluGradient: [Y, dY, X, slope] -> [dX, dslope].
func preluGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	if len(op.Input) != 2 {
		return nil, fmt.Errorf("expected 2 inputs, got %d", len(op.Input))
	}
	gInput := []string{gradName(op.Input[0]), gradName(op.Input[1])}
	g := singleGradient(op, "PReluGradient",
		[]string{op.Output[0], gOutput[0], op.Input[0], op.Input[1]},
		[]string{gInput[0], gInput[1]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// softmaxGradient uses the forward output: [Y, dY] -> [dX].
func softmaxGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	gInput := []string{gradName(op.Input[0])}
	g := singleGradient(op, "SoftmaxGradient",
		[]string{op.Output[0], gOutput[0]}, []string{gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// softmaxWithLossGradient: [X, label, softmax, dLoss] -> [dX]. The loss is
// the second forward output.
func softmaxWithLossGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	if len(op.Input) < 2 || len(op.Output) < 2 {
		return nil, fmt.Errorf("expected 2 inputs and 2 outputs")
	}
	if gOutput[1] == "" {
		return nil, fmt.Errorf("loss output has no incoming gradient")
	}
	gInput := make([]string, len(op.Input))
	gInput[0] = gradName(op.Input[0])
	g := singleGradient(op, "SoftmaxWithLossGradient",
		[]string{op.Input[0], op.Input[1], op.Output[0], gOutput[1]},
		[]string{gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// labelCrossEntropyGradient: [X, label, dY] -> [dX].
func labelCrossEntropyGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	if len(op.Input) != 2 {
		return nil, fmt.Errorf("expected 2 inputs, got %d", len(op.Input))
	}
	gInput := []string{gradName(op.Input[0]), ""}
	g := singleGradient(op, "LabelCrossEntropyGradient",
		[]string{op.Input[0], op.Input[1], gOutput[0]}, []string{gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// averagedLossGradient: [X, dY] -> [dX].
func averagedLossGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	gInput := []string{gradName(op.Input[0])}
	g := singleGradient(op, "AveragedLossGradient",
		[]string{op.Input[0], gOutput[0]}, []string{gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// dropoutGradient needs the mask output: [dY, mask] -> [dX].
func dropoutGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	if len(op.Output) < 2 {
		return nil, fmt.Errorf("mask output missing; test-mode dropout has no gradient")
	}
	gInput := []string{gradName(op.Input[0])}
	g := singleGradient(op, "DropoutGrad",
		[]string{gOutput[0], op.Output[1]}, []string{gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// lrnGradient: [X, Y, dY] -> [dX].
func lrnGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	gInput := []string{gradName(op.Input[0])}
	g := singleGradient(op, "LRNGradient",
		[]string{op.Input[0], op.Output[0], gOutput[0]}, []string{gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// poolGradient covers MaxPool and AveragePool: [X, Y, dY] -> [dX].
func poolGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	gInput := []string{gradName(op.Input[0])}
	g := singleGradient(op, op.Type+"Gradient",
		[]string{op.Input[0], op.Output[0], gOutput[0]}, []string{gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// maxPoolWithIndexGradient uses the index output: [X, index, dY] -> [dX].
func maxPoolWithIndexGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	if len(op.Output) < 2 {
		return nil, fmt.Errorf("index output missing")
	}
	gInput := []string{gradName(op.Input[0])}
	g := singleGradient(op, "MaxPoolWithIndexGradient",
		[]string{op.Input[0], op.Output[1], gOutput[0]}, []string{gInput[0]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// spatialBNGradient: [X, scale, dY, saved_mean, saved_var] ->
// [dX, dscale, dbias]. Only the training-mode operator, which exposes the
// saved statistics as outputs 3 and 4, is differentiable.
func spatialBNGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	if len(op.Output) < 5 {
		return nil, fmt.Errorf("test-mode SpatialBN has no gradient")
	}
	if len(op.Input) < 5 {
		return nil, fmt.Errorf("expected 5 inputs, got %d", len(op.Input))
	}
	gInput := make([]string, len(op.Input))
	gInput[0] = gradName(op.Input[0])
	gInput[1] = gradName(op.Input[1])
	gInput[2] = gradName(op.Input[2])
	g := singleGradient(op, "SpatialBNGradient",
		[]string{op.Input[0], op.Input[1], gOutput[0], op.Output[3], op.Output[4]},
		[]string{gInput[0], gInput[1], gInput[2]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// instanceNormGradient: [X, scale, bias, dY(, saved...)] ->
// [dX, dscale, dbias].
func instanceNormGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	if len(op.Input) < 3 {
		return nil, fmt.Errorf("expected 3 inputs, got %d", len(op.Input))
	}
	inputs := []string{op.Input[0], op.Input[1], op.Input[2], gOutput[0]}
	if len(op.Output) >= 2 {
		inputs = append(inputs, op.Output[1])
	}
	if len(op.Output) >= 3 {
		inputs = append(inputs, op.Output[2])
	}
	gInput := []string{gradName(op.Input[0]), gradName(op.Input[1]), gradName(op.Input[2])}
	g := singleGradient(op, "InstanceNormGradient",
		inputs, []string{gInput[0], gInput[1], gInput[2]})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// concatGradient splits the output gradient back along the concat axis using
// the recorded split sizes: Split [dY, split_info] -> [dX...].
func concatGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	if len(op.Output) < 2 {
		return nil, fmt.Errorf("split info output missing")
	}
	gInput := make([]string, len(op.Input))
	for i, in := range op.Input {
		gInput[i] = gradName(in)
	}
	g := singleGradient(op, "Split",
		[]string{gOutput[0], op.Output[1]}, append([]string(nil), gInput...))
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// depthSplitGradient re-concatenates the piece gradients:
// DepthConcat [dY...] -> [dX, dims].
func depthSplitGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	for i, g := range gOutput {
		if g == "" {
			return nil, fmt.Errorf("split output %d has no incoming gradient", i)
		}
	}
	gInput := []string{gradName(op.Input[0])}
	g := singleGradient(op, "DepthConcat",
		append([]string(nil), gOutput...),
		[]string{gInput[0], "_" + gInput[0] + "_concat_dims"})
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// sumGradient aliases the output gradient to every input; no ops needed.
func sumGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	gInput := make([]string, len(op.Input))
	for i := range op.Input {
		gInput[i] = gOutput[0]
	}
	return &Gradient{GInput: gInput}, nil
}

// transposeGradient transposes the output gradient back, inverting the axes
// permutation when one was given.
func transposeGradient(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
	gInput := []string{gradName(op.Input[0])}
	g := singleGradient(op, "Transpose", []string{gOutput[0]}, []string{gInput[0]})
	if axes := GetArgInts(op, "axes"); len(axes) > 0 {
		inverted := make([]int64, len(axes))
		for i, a := range axes {
			if a < 0 || int(a) >= len(axes) {
				return nil, fmt.Errorf("invalid axes permutation %v", axes)
			}
			inverted[a] = int64(i)
		}
		for _, arg := range g.Arg {
			if arg.Name == "axes" {
				arg.Ints = inverted
			}
		}
	}
	return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
}

// layoutFlipGradient returns a maker emitting the opposite layout conversion.
func layoutFlipGradient(inverse string) GradientMaker {
	return func(op *c2pb.OperatorDef, gOutput []string) (*Gradient, error) {
		gInput := []string{gradName(op.Input[0])}
		g := singleGradient(op, inverse, []string{gOutput[0]}, []string{gInput[0]})
		return &Gradient{Ops: []*c2pb.OperatorDef{g}, GInput: gInput}, nil
	}
}

// stopGradient blocks propagation: no ops, no input gradients.
func stopGradient(op *c2pb.OperatorDef, _ []string) (*Gradient, error) {
	return &Gradient{GInput: make([]string, len(op.Input))}, nil
}
