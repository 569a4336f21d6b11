package core

import (
	"testing"

	"github.com/born-ml/barista/internal/c2pb"
)

// TestAddOp verifies operator accumulation and blob tracking.
func TestAddOp(t *testing.T) {
	n := NewNet("test")
	op := n.AddOp("FC", []BlobRef{"data", "w", "b"}, []BlobRef{"fc"},
		MakeArgument("axis", 1))
	if op.Type != "FC" {
		t.Errorf("expected type FC, got %q", op.Type)
	}
	if len(n.Proto().Op) != 1 {
		t.Fatalf("expected 1 op, got %d", len(n.Proto().Op))
	}
	if !n.BlobIsDefined("fc") {
		t.Error("output blob not tracked as defined")
	}
	if n.BlobIsDefined("data") {
		t.Error("input blob should not be defined without a producer")
	}
}

// TestNextName verifies generated names avoid defined blobs.
func TestNextName(t *testing.T) {
	n := NewNet("test")
	if got := n.NextName("conv"); got != "conv" {
		t.Errorf("expected conv, got %s", got)
	}
	n.AddOp("Conv", nil, []BlobRef{"conv"})
	if got := n.NextName("conv"); got != "conv_2" {
		t.Errorf("expected conv_2, got %s", got)
	}
	n.AddOp("Conv", nil, []BlobRef{"conv_2"})
	if got := n.NextName("conv"); got != "conv_3" {
		t.Errorf("expected conv_3, got %s", got)
	}
}

// TestAddExternalInputDuplicatePanics verifies duplicate inputs are refused.
func TestAddExternalInputDuplicatePanics(t *testing.T) {
	n := NewNet("test")
	n.AddExternalInput("data")
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate external input")
		}
	}()
	n.AddExternalInput("data")
}

// TestRunAllOnGPU checks both GPU id fields get the ordinal.
func TestRunAllOnGPU(t *testing.T) {
	n := NewNet("test")
	n.RunAllOnGPU(c2pb.DeviceCUDA, 3)
	dev := n.Proto().DeviceOption
	if dev.DeviceType != c2pb.DeviceCUDA || dev.CudaGPUID != 3 || dev.HipGPUID != 0 {
		t.Errorf("unexpected CUDA device option: %+v", dev)
	}

	n.RunAllOnGPU(c2pb.DeviceHIP, 2)
	dev = n.Proto().DeviceOption
	if dev.DeviceType != c2pb.DeviceHIP || dev.HipGPUID != 2 || dev.CudaGPUID != 0 {
		t.Errorf("unexpected HIP device option: %+v", dev)
	}

	n.RunAllOnCPU()
	if n.Proto().DeviceOption.DeviceType != c2pb.DeviceCPU {
		t.Errorf("unexpected CPU device option: %+v", n.Proto().DeviceOption)
	}
}

// TestClone verifies the copy is independent and tracks defined blobs.
func TestClone(t *testing.T) {
	n := NewNet("orig")
	n.AddExternalInput("data")
	n.AddOp("Relu", []BlobRef{"data"}, []BlobRef{"out"})

	c := n.Clone("copy")
	if c.Name() != "copy" {
		t.Errorf("expected name copy, got %s", c.Name())
	}
	if !c.BlobIsDefined("out") || !c.BlobIsDefined("data") {
		t.Error("clone lost blob definitions")
	}
	c.AddOp("Relu", []BlobRef{"out"}, []BlobRef{"out2"})
	if len(n.Proto().Op) != 1 {
		t.Error("clone mutation leaked into original")
	}
}

// TestFromProto indexes existing outputs and external inputs.
func TestFromProto(t *testing.T) {
	def := &c2pb.NetDef{
		Name:          "loaded",
		Op:            []*c2pb.OperatorDef{{Type: "FC", Output: []string{"fc"}}},
		ExternalInput: []string{"data"},
	}
	n := FromProto(def)
	if !n.BlobIsDefined("fc") || !n.BlobIsDefined("data") {
		t.Error("FromProto did not index defined blobs")
	}
	if got := n.NextName("fc"); got != "fc_2" {
		t.Errorf("expected fc_2, got %s", got)
	}
}
