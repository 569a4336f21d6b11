package core

import (
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/born-ml/barista/internal/c2pb"
)

// MakeArgument builds an Argument from a Go value. The supported types
// mirror the argument schema; anything else is a programming error and
// panics.
func MakeArgument(name string, value any) *c2pb.Argument {
	arg := &c2pb.Argument{Name: name}
	switch v := value.(type) {
	case float32:
		arg.F = proto.Float32(v)
	case float64:
		arg.F = proto.Float32(float32(v))
	case int:
		arg.I = proto.Int64(int64(v))
	case int32:
		arg.I = proto.Int64(int64(v))
	case int64:
		arg.I = proto.Int64(v)
	case bool:
		if v {
			arg.I = proto.Int64(1)
		} else {
			arg.I = proto.Int64(0)
		}
	case string:
		arg.S = []byte(v)
	case []byte:
		arg.S = v
	case []float32:
		arg.Floats = v
	case []float64:
		arg.Floats = make([]float32, len(v))
		for i, f := range v {
			arg.Floats[i] = float32(f)
		}
	case []int:
		arg.Ints = make([]int64, len(v))
		for i, n := range v {
			arg.Ints[i] = int64(n)
		}
	case []int64:
		arg.Ints = v
	case []string:
		arg.Strings = make([][]byte, len(v))
		for i, s := range v {
			arg.Strings[i] = []byte(s)
		}
	case [][]byte:
		arg.Strings = v
	case *c2pb.TensorProto:
		arg.T = v
	case *c2pb.NetDef:
		arg.N = v
	default:
		panic(fmt.Sprintf("unsupported argument type %T for %q", value, name))
	}
	return arg
}

// GetArgument returns the named argument of an operator, or nil.
func GetArgument(op *c2pb.OperatorDef, name string) *c2pb.Argument {
	for _, arg := range op.Arg {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}

// HasArgument reports whether the operator carries the named argument.
func HasArgument(op *c2pb.OperatorDef, name string) bool {
	return GetArgument(op, name) != nil
}

// GetArgInt returns an int argument value or the default.
func GetArgInt(op *c2pb.OperatorDef, name string, def int64) int64 {
	if arg := GetArgument(op, name); arg != nil && arg.I != nil {
		return *arg.I
	}
	return def
}

// GetArgFloat returns a float argument value or the default.
func GetArgFloat(op *c2pb.OperatorDef, name string, def float32) float32 {
	if arg := GetArgument(op, name); arg != nil && arg.F != nil {
		return *arg.F
	}
	return def
}

// GetArgString returns a string argument value or the default.
func GetArgString(op *c2pb.OperatorDef, name, def string) string {
	if arg := GetArgument(op, name); arg != nil && arg.S != nil {
		return string(arg.S)
	}
	return def
}

// GetArgInts returns a repeated int argument value, or nil.
func GetArgInts(op *c2pb.OperatorDef, name string) []int64 {
	if arg := GetArgument(op, name); arg != nil {
		return arg.Ints
	}
	return nil
}

// GetArgFloats returns a repeated float argument value, or nil.
func GetArgFloats(op *c2pb.OperatorDef, name string) []float32 {
	if arg := GetArgument(op, name); arg != nil {
		return arg.Floats
	}
	return nil
}
