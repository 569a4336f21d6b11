package c2pb

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// MarshalNetDef encodes a NetDef into protobuf wire format.
func MarshalNetDef(m *NetDef) []byte {
	return appendNetDef(nil, m)
}

// MarshalOperatorDef encodes an OperatorDef into protobuf wire format.
func MarshalOperatorDef(m *OperatorDef) []byte {
	return appendOperatorDef(nil, m)
}

// MarshalArgument encodes an Argument into protobuf wire format.
func MarshalArgument(m *Argument) []byte {
	return appendArgument(nil, m)
}

// MarshalDeviceOption encodes a DeviceOption into protobuf wire format.
func MarshalDeviceOption(m *DeviceOption) []byte {
	return appendDeviceOption(nil, m)
}

// MarshalTensorProto encodes a TensorProto into protobuf wire format.
func MarshalTensorProto(m *TensorProto) []byte {
	return appendTensorProto(nil, m)
}

func appendNetDef(b []byte, m *NetDef) []byte {
	if m.Name != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, m.Name)
	}
	for _, op := range m.Op {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, appendOperatorDef(nil, op))
	}
	if m.Type != "" {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, m.Type)
	}
	if m.NumWorkers != 0 {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.NumWorkers)) //nolint:gosec // G115: two's complement round trip.
	}
	if m.DeviceOption != nil {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, appendDeviceOption(nil, m.DeviceOption))
	}
	for _, arg := range m.Arg {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendBytes(b, appendArgument(nil, arg))
	}
	for _, s := range m.ExternalInput {
		b = protowire.AppendTag(b, 7, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	for _, s := range m.ExternalOutput {
		b = protowire.AppendTag(b, 8, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

func appendOperatorDef(b []byte, m *OperatorDef) []byte {
	for _, s := range m.Input {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	for _, s := range m.Output {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	if m.Name != "" {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, m.Name)
	}
	if m.Type != "" {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendString(b, m.Type)
	}
	for _, arg := range m.Arg {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, appendArgument(nil, arg))
	}
	if m.DeviceOption != nil {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendBytes(b, appendDeviceOption(nil, m.DeviceOption))
	}
	if m.Engine != "" {
		b = protowire.AppendTag(b, 7, protowire.BytesType)
		b = protowire.AppendString(b, m.Engine)
	}
	for _, s := range m.ControlInput {
		b = protowire.AppendTag(b, 8, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	if m.IsGradientOp {
		b = protowire.AppendTag(b, 9, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b
}

// appendArgument writes Argument fields. Repeated numeric fields are written
// unpacked, matching the proto2 schema.
func appendArgument(b []byte, m *Argument) []byte {
	if m.Name != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, m.Name)
	}
	if m.F != nil {
		b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(*m.F))
	}
	if m.I != nil {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*m.I)) //nolint:gosec // G115: two's complement round trip.
	}
	if m.S != nil {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, m.S)
	}
	for _, f := range m.Floats {
		b = protowire.AppendTag(b, 5, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(f))
	}
	for _, i := range m.Ints {
		b = protowire.AppendTag(b, 6, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(i)) //nolint:gosec // G115: two's complement round trip.
	}
	for _, s := range m.Strings {
		b = protowire.AppendTag(b, 7, protowire.BytesType)
		b = protowire.AppendBytes(b, s)
	}
	if m.N != nil {
		b = protowire.AppendTag(b, 8, protowire.BytesType)
		b = protowire.AppendBytes(b, appendNetDef(nil, m.N))
	}
	for _, nd := range m.Nets {
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendBytes(b, appendNetDef(nil, nd))
	}
	if m.T != nil {
		b = protowire.AppendTag(b, 10, protowire.BytesType)
		b = protowire.AppendBytes(b, appendTensorProto(nil, m.T))
	}
	for _, t := range m.Tensors {
		b = protowire.AppendTag(b, 11, protowire.BytesType)
		b = protowire.AppendBytes(b, appendTensorProto(nil, t))
	}
	return b
}

func appendDeviceOption(b []byte, m *DeviceOption) []byte {
	if m.DeviceType != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.DeviceType)) //nolint:gosec // G115: schema enum fits in int32.
	}
	if m.CudaGPUID != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.CudaGPUID)) //nolint:gosec // G115: schema field is int32.
	}
	if m.RandomSeed != 0 {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.RandomSeed))
	}
	if m.NodeName != "" {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendString(b, m.NodeName)
	}
	if m.NumaNodeID != 0 {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.NumaNodeID)) //nolint:gosec // G115: schema field is int32.
	}
	for _, s := range m.ExtraInfo {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	if m.HipGPUID != 0 {
		b = protowire.AppendTag(b, 7, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.HipGPUID)) //nolint:gosec // G115: schema field is int32.
	}
	return b
}

// appendTensorProto writes TensorProto fields. Numeric payload fields are
// written packed, matching the schema's packed=true annotations.
func appendTensorProto(b []byte, m *TensorProto) []byte {
	if len(m.Dims) > 0 {
		var p []byte
		for _, d := range m.Dims {
			p = protowire.AppendVarint(p, uint64(d)) //nolint:gosec // G115: two's complement round trip.
		}
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}
	if m.DataType != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.DataType)) //nolint:gosec // G115: schema enum fits in int32.
	}
	if len(m.FloatData) > 0 {
		var p []byte
		for _, f := range m.FloatData {
			p = protowire.AppendFixed32(p, math.Float32bits(f))
		}
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}
	if len(m.Int32Data) > 0 {
		var p []byte
		for _, i := range m.Int32Data {
			p = protowire.AppendVarint(p, uint64(i)) //nolint:gosec // G115: two's complement round trip.
		}
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}
	if m.ByteData != nil {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, m.ByteData)
	}
	for _, s := range m.StringData {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendBytes(b, s)
	}
	if m.Name != "" {
		b = protowire.AppendTag(b, 7, protowire.BytesType)
		b = protowire.AppendString(b, m.Name)
	}
	if len(m.DoubleData) > 0 {
		var p []byte
		for _, d := range m.DoubleData {
			p = protowire.AppendFixed64(p, math.Float64bits(d))
		}
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}
	if len(m.Int64Data) > 0 {
		var p []byte
		for _, i := range m.Int64Data {
			p = protowire.AppendVarint(p, uint64(i)) //nolint:gosec // G115: two's complement round trip.
		}
		b = protowire.AppendTag(b, 10, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}
	return b
}
