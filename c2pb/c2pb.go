// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package c2pb

import (
	"github.com/born-ml/barista/internal/c2pb"
)

// NetDef describes a computation graph: named operators plus metadata.
type NetDef = c2pb.NetDef

// OperatorDef describes one operator invocation.
type OperatorDef = c2pb.OperatorDef

// Argument is a named operator attribute.
type Argument = c2pb.Argument

// DeviceOption selects where an operator or net runs.
type DeviceOption = c2pb.DeviceOption

// TensorProto carries tensor payloads.
type TensorProto = c2pb.TensorProto

// DeviceType enumerates the device kinds understood by the graph format.
type DeviceType = c2pb.DeviceType

// Device kinds.
const (
	DeviceCPU    = c2pb.DeviceCPU
	DeviceCUDA   = c2pb.DeviceCUDA
	DeviceMKLDNN = c2pb.DeviceMKLDNN
	DeviceOpenGL = c2pb.DeviceOpenGL
	DeviceOpenCL = c2pb.DeviceOpenCL
	DeviceIDEEP  = c2pb.DeviceIDEEP
	DeviceHIP    = c2pb.DeviceHIP
)

// TensorDataType enumerates tensor element types.
type TensorDataType = c2pb.TensorDataType

// Tensor element types.
const (
	TensorUndefined = c2pb.TensorUndefined
	TensorFloat     = c2pb.TensorFloat
	TensorInt32     = c2pb.TensorInt32
	TensorByte      = c2pb.TensorByte
	TensorString    = c2pb.TensorString
	TensorBool      = c2pb.TensorBool
	TensorUint8     = c2pb.TensorUint8
	TensorInt8      = c2pb.TensorInt8
	TensorUint16    = c2pb.TensorUint16
	TensorInt16     = c2pb.TensorInt16
	TensorInt64     = c2pb.TensorInt64
	TensorFloat16   = c2pb.TensorFloat16
	TensorDouble    = c2pb.TensorDouble
)

// MarshalNetDef serializes a net in protobuf wire format.
func MarshalNetDef(m *NetDef) []byte { return c2pb.MarshalNetDef(m) }

// UnmarshalNetDef parses a net from protobuf wire format.
func UnmarshalNetDef(data []byte) (*NetDef, error) { return c2pb.UnmarshalNetDef(data) }

// MarshalOperatorDef serializes an operator in protobuf wire format.
func MarshalOperatorDef(m *OperatorDef) []byte { return c2pb.MarshalOperatorDef(m) }

// UnmarshalOperatorDef parses an operator from protobuf wire format.
func UnmarshalOperatorDef(data []byte) (*OperatorDef, error) {
	return c2pb.UnmarshalOperatorDef(data)
}

// MarshalTensorProto serializes a tensor payload.
func MarshalTensorProto(m *TensorProto) []byte { return c2pb.MarshalTensorProto(m) }

// UnmarshalTensorProto parses a tensor payload.
func UnmarshalTensorProto(data []byte) (*TensorProto, error) {
	return c2pb.UnmarshalTensorProto(data)
}

// FormatNetDef renders a net in text proto form.
func FormatNetDef(m *NetDef) string { return c2pb.FormatNetDef(m) }

// FormatOperatorDef renders one operator in text proto form.
func FormatOperatorDef(m *OperatorDef) string { return c2pb.FormatOperatorDef(m) }

// PackFloat16 converts float32 values to packed IEEE half-precision bytes.
func PackFloat16(values []float32) []byte { return c2pb.PackFloat16(values) }

// UnpackFloat16 converts packed half-precision bytes back to float32.
func UnpackFloat16(data []byte) []float32 { return c2pb.UnpackFloat16(data) }

// NewFloat16Tensor builds a FLOAT16 tensor with packed byte data.
func NewFloat16Tensor(name string, dims []int64, values []float32) *TensorProto {
	return c2pb.NewFloat16Tensor(name, dims, values)
}

// NewFloatTensor builds a FLOAT tensor.
func NewFloatTensor(name string, dims []int64, values []float32) *TensorProto {
	return c2pb.NewFloatTensor(name, dims, values)
}
