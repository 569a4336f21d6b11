package c2pb

import (
	"encoding/binary"

	"github.com/x448/float16"
)

// PackFloat16 converts float32 values to IEEE 754 half precision and packs
// them little-endian, the ByteData layout FLOAT16 tensors use.
func PackFloat16(values []float32) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[2*i:], float16.Fromfloat32(v).Bits())
	}
	return out
}

// UnpackFloat16 expands packed half-precision bytes back to float32. Trailing
// odd bytes are ignored.
func UnpackFloat16(data []byte) []float32 {
	out := make([]float32, len(data)/2)
	for i := range out {
		out[i] = float16.Frombits(binary.LittleEndian.Uint16(data[2*i:])).Float32()
	}
	return out
}

// NewFloat16Tensor builds a FLOAT16 TensorProto from float32 values.
func NewFloat16Tensor(name string, dims []int64, values []float32) *TensorProto {
	return &TensorProto{
		Name:     name,
		Dims:     append([]int64(nil), dims...),
		DataType: TensorFloat16,
		ByteData: PackFloat16(values),
	}
}

// NewFloatTensor builds a FLOAT TensorProto from float32 values.
func NewFloatTensor(name string, dims []int64, values []float32) *TensorProto {
	return &TensorProto{
		Name:      name,
		Dims:      append([]int64(nil), dims...),
		DataType:  TensorFloat,
		FloatData: append([]float32(nil), values...),
	}
}
