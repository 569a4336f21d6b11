package c2pb

import (
	"strings"
	"testing"
)

// TestFormatNetDef checks the text rendering of a small net against the
// expected .pbtxt layout.
func TestFormatNetDef(t *testing.T) {
	net := &NetDef{
		Name: "mnist",
		Op: []*OperatorDef{
			{
				Input:  []string{"data", "fc_w", "fc_b"},
				Output: []string{"fc"},
				Type:   "FC",
				Arg:    []*Argument{{Name: "axis", I: intPtr(1)}},
			},
		},
		ExternalInput:  []string{"data"},
		ExternalOutput: []string{"fc"},
	}

	want := `name: "mnist"
op {
  input: "data"
  input: "fc_w"
  input: "fc_b"
  output: "fc"
  type: "FC"
  arg {
    name: "axis"
    i: 1
  }
}
external_input: "data"
external_output: "fc"
`
	if got := FormatNetDef(net); got != want {
		t.Errorf("FormatNetDef mismatch:\n--- want ---\n%s--- got ---\n%s", want, got)
	}
}

// TestFormatOperatorDefDevice covers device options, engines and floats.
func TestFormatOperatorDefDevice(t *testing.T) {
	op := &OperatorDef{
		Input:        []string{"x"},
		Output:       []string{"y"},
		Type:         "Dropout",
		Engine:       "MIOPEN",
		Arg:          []*Argument{{Name: "ratio", F: floatPtr(0.5)}},
		DeviceOption: &DeviceOption{DeviceType: DeviceHIP, HipGPUID: 1},
	}
	got := FormatOperatorDef(op)
	for _, want := range []string{
		`type: "Dropout"`,
		"f: 0.5",
		"device_type: 6",
		"hip_gpu_id: 1",
		`engine: "MIOPEN"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

// TestFormatFloatKeepsDecimalPoint ensures whole floats stay visually float.
func TestFormatFloatKeepsDecimalPoint(t *testing.T) {
	op := &OperatorDef{Type: "ConstantFill", Arg: []*Argument{{Name: "value", F: floatPtr(1)}}}
	got := FormatOperatorDef(op)
	if !strings.Contains(got, "f: 1.0") {
		t.Errorf("expected f: 1.0 in output:\n%s", got)
	}
}
