package c2pb

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// UnmarshalNetDef decodes a NetDef from protobuf wire format.
func UnmarshalNetDef(data []byte) (*NetDef, error) {
	m := &NetDef{}
	if err := unmarshalNetDef(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse net: %w", err)
	}
	return m, nil
}

// UnmarshalOperatorDef decodes an OperatorDef from protobuf wire format.
func UnmarshalOperatorDef(data []byte) (*OperatorDef, error) {
	m := &OperatorDef{}
	if err := unmarshalOperatorDef(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse operator: %w", err)
	}
	return m, nil
}

// UnmarshalArgument decodes an Argument from protobuf wire format.
func UnmarshalArgument(data []byte) (*Argument, error) {
	m := &Argument{}
	if err := unmarshalArgument(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse argument: %w", err)
	}
	return m, nil
}

// UnmarshalDeviceOption decodes a DeviceOption from protobuf wire format.
func UnmarshalDeviceOption(data []byte) (*DeviceOption, error) {
	m := &DeviceOption{}
	if err := unmarshalDeviceOption(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse device option: %w", err)
	}
	return m, nil
}

// UnmarshalTensorProto decodes a TensorProto from protobuf wire format.
func UnmarshalTensorProto(data []byte) (*TensorProto, error) {
	m := &TensorProto{}
	if err := unmarshalTensorProto(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse tensor: %w", err)
	}
	return m, nil
}

// unmarshalNetDef reads NetDef fields. Unknown fields are skipped so newer
// producers remain readable.
func unmarshalNetDef(b []byte, m *NetDef) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Name = string(v)
			b = b[n:]
		case 2: // op
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			op := &OperatorDef{}
			if err := unmarshalOperatorDef(v, op); err != nil {
				return err
			}
			m.Op = append(m.Op, op)
			b = b[n:]
		case 3: // type
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Type = string(v)
			b = b[n:]
		case 4: // num_workers (deprecated)
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.NumWorkers = int32(v) //nolint:gosec // G115: schema field is int32.
			b = b[n:]
		case 5: // device_option
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DeviceOption = &DeviceOption{}
			if err := unmarshalDeviceOption(v, m.DeviceOption); err != nil {
				return err
			}
			b = b[n:]
		case 6: // arg
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			arg := &Argument{}
			if err := unmarshalArgument(v, arg); err != nil {
				return err
			}
			m.Arg = append(m.Arg, arg)
			b = b[n:]
		case 7: // external_input
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ExternalInput = append(m.ExternalInput, string(v))
			b = b[n:]
		case 8: // external_output
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ExternalOutput = append(m.ExternalOutput, string(v))
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// unmarshalOperatorDef reads OperatorDef fields.
func unmarshalOperatorDef(b []byte, m *OperatorDef) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // input
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Input = append(m.Input, string(v))
			b = b[n:]
		case 2: // output
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Output = append(m.Output, string(v))
			b = b[n:]
		case 3: // name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Name = string(v)
			b = b[n:]
		case 4: // type
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Type = string(v)
			b = b[n:]
		case 5: // arg
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			arg := &Argument{}
			if err := unmarshalArgument(v, arg); err != nil {
				return err
			}
			m.Arg = append(m.Arg, arg)
			b = b[n:]
		case 6: // device_option
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DeviceOption = &DeviceOption{}
			if err := unmarshalDeviceOption(v, m.DeviceOption); err != nil {
				return err
			}
			b = b[n:]
		case 7: // engine
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Engine = string(v)
			b = b[n:]
		case 8: // control_input
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ControlInput = append(m.ControlInput, string(v))
			b = b[n:]
		case 9: // is_gradient_op
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.IsGradientOp = v != 0
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// unmarshalArgument reads Argument fields. Repeated numeric fields accept
// both packed and unpacked encodings.
func unmarshalArgument(b []byte, m *Argument) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Name = string(v)
			b = b[n:]
		case 2: // f
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f := math.Float32frombits(v)
			m.F = &f
			b = b[n:]
		case 3: // i
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			i := int64(v) //nolint:gosec // G115: two's complement round trip.
			m.I = &i
			b = b[n:]
		case 4: // s
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.S = append([]byte(nil), v...)
			b = b[n:]
		case 5: // floats
			if typ == protowire.BytesType {
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return protowire.ParseError(n)
				}
				for len(v) > 0 {
					f, fn := protowire.ConsumeFixed32(v)
					if fn < 0 {
						return protowire.ParseError(fn)
					}
					m.Floats = append(m.Floats, math.Float32frombits(f))
					v = v[fn:]
				}
				b = b[n:]
				continue
			}
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Floats = append(m.Floats, math.Float32frombits(v))
			b = b[n:]
		case 6: // ints
			if typ == protowire.BytesType {
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return protowire.ParseError(n)
				}
				for len(v) > 0 {
					i, in := protowire.ConsumeVarint(v)
					if in < 0 {
						return protowire.ParseError(in)
					}
					m.Ints = append(m.Ints, int64(i)) //nolint:gosec // G115: two's complement round trip.
					v = v[in:]
				}
				b = b[n:]
				continue
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Ints = append(m.Ints, int64(v)) //nolint:gosec // G115: two's complement round trip.
			b = b[n:]
		case 7: // strings
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Strings = append(m.Strings, append([]byte(nil), v...))
			b = b[n:]
		case 8: // n
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.N = &NetDef{}
			if err := unmarshalNetDef(v, m.N); err != nil {
				return err
			}
			b = b[n:]
		case 9: // nets
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			nd := &NetDef{}
			if err := unmarshalNetDef(v, nd); err != nil {
				return err
			}
			m.Nets = append(m.Nets, nd)
			b = b[n:]
		case 10: // t
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.T = &TensorProto{}
			if err := unmarshalTensorProto(v, m.T); err != nil {
				return err
			}
			b = b[n:]
		case 11: // tensors
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			t := &TensorProto{}
			if err := unmarshalTensorProto(v, t); err != nil {
				return err
			}
			m.Tensors = append(m.Tensors, t)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// unmarshalDeviceOption reads DeviceOption fields.
func unmarshalDeviceOption(b []byte, m *DeviceOption) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // device_type
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DeviceType = DeviceType(v) //nolint:gosec // G115: schema enum fits in int32.
			b = b[n:]
		case 2: // cuda_gpu_id
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.CudaGPUID = int32(v) //nolint:gosec // G115: schema field is int32.
			b = b[n:]
		case 3: // random_seed
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.RandomSeed = uint32(v) //nolint:gosec // G115: schema field is uint32.
			b = b[n:]
		case 4: // node_name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.NodeName = string(v)
			b = b[n:]
		case 5: // numa_node_id
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.NumaNodeID = int32(v) //nolint:gosec // G115: schema field is int32.
			b = b[n:]
		case 6: // extra_info
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ExtraInfo = append(m.ExtraInfo, string(v))
			b = b[n:]
		case 7: // hip_gpu_id
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.HipGPUID = int32(v) //nolint:gosec // G115: schema field is int32.
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// unmarshalTensorProto reads TensorProto fields. Numeric payload fields
// accept both packed and unpacked encodings.
func unmarshalTensorProto(b []byte, m *TensorProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // dims
			if typ == protowire.BytesType {
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return protowire.ParseError(n)
				}
				for len(v) > 0 {
					d, dn := protowire.ConsumeVarint(v)
					if dn < 0 {
						return protowire.ParseError(dn)
					}
					m.Dims = append(m.Dims, int64(d)) //nolint:gosec // G115: two's complement round trip.
					v = v[dn:]
				}
				b = b[n:]
				continue
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Dims = append(m.Dims, int64(v)) //nolint:gosec // G115: two's complement round trip.
			b = b[n:]
		case 2: // data_type
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DataType = TensorDataType(v) //nolint:gosec // G115: schema enum fits in int32.
			b = b[n:]
		case 3: // float_data
			if typ == protowire.BytesType {
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return protowire.ParseError(n)
				}
				for len(v) > 0 {
					f, fn := protowire.ConsumeFixed32(v)
					if fn < 0 {
						return protowire.ParseError(fn)
					}
					m.FloatData = append(m.FloatData, math.Float32frombits(f))
					v = v[fn:]
				}
				b = b[n:]
				continue
			}
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.FloatData = append(m.FloatData, math.Float32frombits(v))
			b = b[n:]
		case 4: // int32_data
			if typ == protowire.BytesType {
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return protowire.ParseError(n)
				}
				for len(v) > 0 {
					i, in := protowire.ConsumeVarint(v)
					if in < 0 {
						return protowire.ParseError(in)
					}
					m.Int32Data = append(m.Int32Data, int32(i)) //nolint:gosec // G115: schema field is int32.
					v = v[in:]
				}
				b = b[n:]
				continue
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Int32Data = append(m.Int32Data, int32(v)) //nolint:gosec // G115: schema field is int32.
			b = b[n:]
		case 5: // byte_data
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ByteData = append([]byte(nil), v...)
			b = b[n:]
		case 6: // string_data
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.StringData = append(m.StringData, append([]byte(nil), v...))
			b = b[n:]
		case 7: // name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Name = string(v)
			b = b[n:]
		case 9: // double_data
			if typ == protowire.BytesType {
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return protowire.ParseError(n)
				}
				for len(v) > 0 {
					d, dn := protowire.ConsumeFixed64(v)
					if dn < 0 {
						return protowire.ParseError(dn)
					}
					m.DoubleData = append(m.DoubleData, math.Float64frombits(d))
					v = v[dn:]
				}
				b = b[n:]
				continue
			}
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DoubleData = append(m.DoubleData, math.Float64frombits(v))
			b = b[n:]
		case 10: // int64_data
			if typ == protowire.BytesType {
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return protowire.ParseError(n)
				}
				for len(v) > 0 {
					i, in := protowire.ConsumeVarint(v)
					if in < 0 {
						return protowire.ParseError(in)
					}
					m.Int64Data = append(m.Int64Data, int64(i)) //nolint:gosec // G115: two's complement round trip.
					v = v[in:]
				}
				b = b[n:]
				continue
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Int64Data = append(m.Int64Data, int64(v)) //nolint:gosec // G115: two's complement round trip.
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}
