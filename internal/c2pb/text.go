package c2pb

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNetDef renders a NetDef in protobuf text format, the layout used by
// .pbtxt net dumps. Fields print in field-number order.
func FormatNetDef(m *NetDef) string {
	var sb strings.Builder
	writeNetDef(&sb, m, 0)
	return sb.String()
}

// FormatOperatorDef renders a single operator in protobuf text format.
func FormatOperatorDef(m *OperatorDef) string {
	var sb strings.Builder
	writeOperatorDef(&sb, m, 0)
	return sb.String()
}

func writeNetDef(sb *strings.Builder, m *NetDef, depth int) {
	if m.Name != "" {
		writeLine(sb, depth, "name: %s", quote(m.Name))
	}
	for _, op := range m.Op {
		writeLine(sb, depth, "op {")
		writeOperatorDef(sb, op, depth+1)
		writeLine(sb, depth, "}")
	}
	if m.Type != "" {
		writeLine(sb, depth, "type: %s", quote(m.Type))
	}
	if m.NumWorkers != 0 {
		writeLine(sb, depth, "num_workers: %d", m.NumWorkers)
	}
	if m.DeviceOption != nil {
		writeLine(sb, depth, "device_option {")
		writeDeviceOption(sb, m.DeviceOption, depth+1)
		writeLine(sb, depth, "}")
	}
	for _, arg := range m.Arg {
		writeLine(sb, depth, "arg {")
		writeArgument(sb, arg, depth+1)
		writeLine(sb, depth, "}")
	}
	for _, s := range m.ExternalInput {
		writeLine(sb, depth, "external_input: %s", quote(s))
	}
	for _, s := range m.ExternalOutput {
		writeLine(sb, depth, "external_output: %s", quote(s))
	}
}

func writeOperatorDef(sb *strings.Builder, m *OperatorDef, depth int) {
	for _, s := range m.Input {
		writeLine(sb, depth, "input: %s", quote(s))
	}
	for _, s := range m.Output {
		writeLine(sb, depth, "output: %s", quote(s))
	}
	if m.Name != "" {
		writeLine(sb, depth, "name: %s", quote(m.Name))
	}
	if m.Type != "" {
		writeLine(sb, depth, "type: %s", quote(m.Type))
	}
	for _, arg := range m.Arg {
		writeLine(sb, depth, "arg {")
		writeArgument(sb, arg, depth+1)
		writeLine(sb, depth, "}")
	}
	if m.DeviceOption != nil {
		writeLine(sb, depth, "device_option {")
		writeDeviceOption(sb, m.DeviceOption, depth+1)
		writeLine(sb, depth, "}")
	}
	if m.Engine != "" {
		writeLine(sb, depth, "engine: %s", quote(m.Engine))
	}
	for _, s := range m.ControlInput {
		writeLine(sb, depth, "control_input: %s", quote(s))
	}
	if m.IsGradientOp {
		writeLine(sb, depth, "is_gradient_op: true")
	}
}

func writeArgument(sb *strings.Builder, m *Argument, depth int) {
	if m.Name != "" {
		writeLine(sb, depth, "name: %s", quote(m.Name))
	}
	if m.F != nil {
		writeLine(sb, depth, "f: %s", formatFloat(*m.F))
	}
	if m.I != nil {
		writeLine(sb, depth, "i: %d", *m.I)
	}
	if m.S != nil {
		writeLine(sb, depth, "s: %s", quote(string(m.S)))
	}
	for _, f := range m.Floats {
		writeLine(sb, depth, "floats: %s", formatFloat(f))
	}
	for _, i := range m.Ints {
		writeLine(sb, depth, "ints: %d", i)
	}
	for _, s := range m.Strings {
		writeLine(sb, depth, "strings: %s", quote(string(s)))
	}
	if m.N != nil {
		writeLine(sb, depth, "n {")
		writeNetDef(sb, m.N, depth+1)
		writeLine(sb, depth, "}")
	}
	for _, nd := range m.Nets {
		writeLine(sb, depth, "nets {")
		writeNetDef(sb, nd, depth+1)
		writeLine(sb, depth, "}")
	}
	if m.T != nil {
		writeLine(sb, depth, "t {")
		writeTensorProto(sb, m.T, depth+1)
		writeLine(sb, depth, "}")
	}
	for _, t := range m.Tensors {
		writeLine(sb, depth, "tensors {")
		writeTensorProto(sb, t, depth+1)
		writeLine(sb, depth, "}")
	}
}

func writeDeviceOption(sb *strings.Builder, m *DeviceOption, depth int) {
	if m.DeviceType != 0 {
		writeLine(sb, depth, "device_type: %d", int32(m.DeviceType))
	}
	if m.CudaGPUID != 0 {
		writeLine(sb, depth, "cuda_gpu_id: %d", m.CudaGPUID)
	}
	if m.RandomSeed != 0 {
		writeLine(sb, depth, "random_seed: %d", m.RandomSeed)
	}
	if m.NodeName != "" {
		writeLine(sb, depth, "node_name: %s", quote(m.NodeName))
	}
	if m.NumaNodeID != 0 {
		writeLine(sb, depth, "numa_node_id: %d", m.NumaNodeID)
	}
	for _, s := range m.ExtraInfo {
		writeLine(sb, depth, "extra_info: %s", quote(s))
	}
	if m.HipGPUID != 0 {
		writeLine(sb, depth, "hip_gpu_id: %d", m.HipGPUID)
	}
}

func writeTensorProto(sb *strings.Builder, m *TensorProto, depth int) {
	for _, d := range m.Dims {
		writeLine(sb, depth, "dims: %d", d)
	}
	if m.DataType != 0 {
		writeLine(sb, depth, "data_type: %d", int32(m.DataType))
	}
	for _, f := range m.FloatData {
		writeLine(sb, depth, "float_data: %s", formatFloat(f))
	}
	for _, i := range m.Int32Data {
		writeLine(sb, depth, "int32_data: %d", i)
	}
	if m.ByteData != nil {
		writeLine(sb, depth, "byte_data: %s", quote(string(m.ByteData)))
	}
	for _, s := range m.StringData {
		writeLine(sb, depth, "string_data: %s", quote(string(s)))
	}
	if m.Name != "" {
		writeLine(sb, depth, "name: %s", quote(m.Name))
	}
	for _, d := range m.DoubleData {
		writeLine(sb, depth, "double_data: %s", strconv.FormatFloat(d, 'g', -1, 64))
	}
	for _, i := range m.Int64Data {
		writeLine(sb, depth, "int64_data: %d", i)
	}
}

func writeLine(sb *strings.Builder, depth int, format string, args ...any) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
	fmt.Fprintf(sb, format, args...)
	sb.WriteByte('\n')
}

func quote(s string) string {
	return strconv.Quote(s)
}

func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	// Text format keeps floats visually distinct from ints.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
