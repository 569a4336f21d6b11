package model

import (
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
)

// Initializer names the fill operator that produces a parameter plus the
// extra arguments the fill takes. The shape argument is appended when the
// parameter is created, so initializers stay shape-independent.
type Initializer struct {
	FillOp string
	Args   []*c2pb.Argument
}

// External reports whether the parameter is expected to exist already, so no
// fill op should be emitted.
func (i Initializer) External() bool { return i.FillOp == "" }

// XavierFill scales uniform noise by fan-in.
func XavierFill() Initializer { return Initializer{FillOp: "XavierFill"} }

// MSRAFill scales normal noise by fan-out.
func MSRAFill() Initializer { return Initializer{FillOp: "MSRAFill"} }

// ConstantFill fills every element with the given value.
func ConstantFill(value float32) Initializer {
	return Initializer{
		FillOp: "ConstantFill",
		Args:   []*c2pb.Argument{core.MakeArgument("value", value)},
	}
}

// ZeroFill fills with the fill operator's default value of zero.
func ZeroFill() Initializer { return Initializer{FillOp: "ConstantFill"} }

// GivenTensorFill embeds literal float values.
func GivenTensorFill(values []float32) Initializer {
	return Initializer{
		FillOp: "GivenTensorFill",
		Args:   []*c2pb.Argument{core.MakeArgument("values", values)},
	}
}

// GivenTensorInt64Fill embeds literal int64 values, the layout used for
// counters and index tensors.
func GivenTensorInt64Fill(values []int64) Initializer {
	return Initializer{
		FillOp: "GivenTensorInt64Fill",
		Args:   []*c2pb.Argument{core.MakeArgument("values", values)},
	}
}

// UniformFill draws from [min, max).
func UniformFill(min, max float32) Initializer {
	return Initializer{
		FillOp: "UniformFill",
		Args: []*c2pb.Argument{
			core.MakeArgument("min", min),
			core.MakeArgument("max", max),
		},
	}
}

// GaussianFill draws from a normal distribution.
func GaussianFill(mean, std float32) Initializer {
	return Initializer{
		FillOp: "GaussianFill",
		Args: []*c2pb.Argument{
			core.MakeArgument("mean", mean),
			core.MakeArgument("std", std),
		},
	}
}

// ExternalInit marks a parameter created outside this model.
func ExternalInit() Initializer { return Initializer{} }

// ParamTag classifies parameters for optimizers and exporters.
type ParamTag int

// Parameter classes. Computed parameters (running statistics) are tracked
// but never optimized.
const (
	TagWeight ParamTag = iota
	TagBias
	TagComputedParam
)

// String returns the tag name.
func (t ParamTag) String() string {
	switch t {
	case TagWeight:
		return "WEIGHT"
	case TagBias:
		return "BIAS"
	case TagComputedParam:
		return "COMPUTED_PARAM"
	default:
		return "UNKNOWN"
	}
}
