package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/born-ml/barista/internal/c2pb"
)

// TestMakeArgument covers the supported value types.
func TestMakeArgument(t *testing.T) {
	if arg := MakeArgument("kernel", 5); arg.I == nil || *arg.I != 5 {
		t.Errorf("int argument: %+v", arg)
	}
	if arg := MakeArgument("value", float32(0)); arg.F == nil || *arg.F != 0 {
		t.Errorf("zero float must still be set: %+v", arg)
	}
	if arg := MakeArgument("momentum", 0.9); arg.F == nil || *arg.F != float32(0.9) {
		t.Errorf("float64 argument: %+v", arg)
	}
	if arg := MakeArgument("is_test", true); arg.I == nil || *arg.I != 1 {
		t.Errorf("bool argument: %+v", arg)
	}
	if arg := MakeArgument("is_test", false); arg.I == nil || *arg.I != 0 {
		t.Errorf("false bool must still be set: %+v", arg)
	}
	if arg := MakeArgument("order", "NCHW"); string(arg.S) != "NCHW" {
		t.Errorf("string argument: %+v", arg)
	}
	if arg := MakeArgument("kernels", []int{3, 3}); len(arg.Ints) != 2 || arg.Ints[0] != 3 {
		t.Errorf("int slice argument: %+v", arg)
	}
	if arg := MakeArgument("scales", []float32{0.5, 2}); len(arg.Floats) != 2 {
		t.Errorf("float slice argument: %+v", arg)
	}
	if arg := MakeArgument("names", []string{"a", "b"}); len(arg.Strings) != 2 || string(arg.Strings[1]) != "b" {
		t.Errorf("string slice argument: %+v", arg)
	}
	tensor := c2pb.NewFloatTensor("w", []int64{1}, []float32{1})
	if arg := MakeArgument("values", tensor); arg.T != tensor {
		t.Errorf("tensor argument: %+v", arg)
	}
}

// TestMakeArgumentUnsupportedPanics treats unknown types as programmer error.
func TestMakeArgumentUnsupportedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsupported type")
		}
	}()
	MakeArgument("bad", struct{}{})
}

// TestArgGetters covers lookup and defaults.
func TestArgGetters(t *testing.T) {
	op := &c2pb.OperatorDef{
		Type: "Conv",
		Arg: []*c2pb.Argument{
			MakeArgument("kernel", 5),
			MakeArgument("order", "NHWC"),
			MakeArgument("scale", float32(1.5)),
			MakeArgument("pads", []int{1, 1, 2, 2}),
		},
	}
	if got := GetArgInt(op, "kernel", 0); got != 5 {
		t.Errorf("GetArgInt: %d", got)
	}
	if got := GetArgInt(op, "stride", 1); got != 1 {
		t.Errorf("GetArgInt default: %d", got)
	}
	if got := GetArgString(op, "order", "NCHW"); got != "NHWC" {
		t.Errorf("GetArgString: %s", got)
	}
	if got := GetArgFloat(op, "scale", 0); got != 1.5 {
		t.Errorf("GetArgFloat: %v", got)
	}
	if diff := cmp.Diff([]int64{1, 1, 2, 2}, GetArgInts(op, "pads")); diff != "" {
		t.Errorf("GetArgInts mismatch (-want +got):\n%s", diff)
	}
	if !HasArgument(op, "kernel") || HasArgument(op, "dilation") {
		t.Error("HasArgument misreported")
	}
	if GetArgument(op, "missing") != nil {
		t.Error("GetArgument should return nil for missing names")
	}
}
