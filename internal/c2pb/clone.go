package c2pb

// Clone returns a deep copy of the net.
func (m *NetDef) Clone() *NetDef {
	if m == nil {
		return nil
	}
	out := &NetDef{
		Name:           m.Name,
		Type:           m.Type,
		NumWorkers:     m.NumWorkers,
		DeviceOption:   m.DeviceOption.Clone(),
		ExternalInput:  append([]string(nil), m.ExternalInput...),
		ExternalOutput: append([]string(nil), m.ExternalOutput...),
	}
	for _, op := range m.Op {
		out.Op = append(out.Op, op.Clone())
	}
	for _, arg := range m.Arg {
		out.Arg = append(out.Arg, arg.Clone())
	}
	return out
}

// Clone returns a deep copy of the operator.
func (m *OperatorDef) Clone() *OperatorDef {
	if m == nil {
		return nil
	}
	out := &OperatorDef{
		Input:        append([]string(nil), m.Input...),
		Output:       append([]string(nil), m.Output...),
		Name:         m.Name,
		Type:         m.Type,
		DeviceOption: m.DeviceOption.Clone(),
		Engine:       m.Engine,
		ControlInput: append([]string(nil), m.ControlInput...),
		IsGradientOp: m.IsGradientOp,
	}
	for _, arg := range m.Arg {
		out.Arg = append(out.Arg, arg.Clone())
	}
	return out
}

// Clone returns a deep copy of the argument.
func (m *Argument) Clone() *Argument {
	if m == nil {
		return nil
	}
	out := &Argument{
		Name:   m.Name,
		S:      append([]byte(nil), m.S...),
		Floats: append([]float32(nil), m.Floats...),
		Ints:   append([]int64(nil), m.Ints...),
		N:      m.N.Clone(),
		T:      m.T.Clone(),
	}
	if m.F != nil {
		f := *m.F
		out.F = &f
	}
	if m.I != nil {
		i := *m.I
		out.I = &i
	}
	for _, s := range m.Strings {
		out.Strings = append(out.Strings, append([]byte(nil), s...))
	}
	for _, nd := range m.Nets {
		out.Nets = append(out.Nets, nd.Clone())
	}
	for _, t := range m.Tensors {
		out.Tensors = append(out.Tensors, t.Clone())
	}
	return out
}

// Clone returns a deep copy of the device option.
func (m *DeviceOption) Clone() *DeviceOption {
	if m == nil {
		return nil
	}
	out := *m
	out.ExtraInfo = append([]string(nil), m.ExtraInfo...)
	return &out
}

// Clone returns a deep copy of the tensor.
func (m *TensorProto) Clone() *TensorProto {
	if m == nil {
		return nil
	}
	out := &TensorProto{
		Dims:       append([]int64(nil), m.Dims...),
		DataType:   m.DataType,
		FloatData:  append([]float32(nil), m.FloatData...),
		Int32Data:  append([]int32(nil), m.Int32Data...),
		ByteData:   append([]byte(nil), m.ByteData...),
		Name:       m.Name,
		DoubleData: append([]float64(nil), m.DoubleData...),
		Int64Data:  append([]int64(nil), m.Int64Data...),
	}
	for _, s := range m.StringData {
		out.StringData = append(out.StringData, append([]byte(nil), s...))
	}
	return out
}
