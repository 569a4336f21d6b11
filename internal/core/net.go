package core

import (
	"fmt"

	"github.com/born-ml/barista/internal/c2pb"
)

// Net accumulates operators into a NetDef. It tracks which blobs the
// accumulated operators define so that generated names stay unique.
//
// A Net never executes anything; it is a builder for the graph description.
type Net struct {
	proto   *c2pb.NetDef
	defined map[string]bool
}

// NewNet creates an empty net with the given name.
func NewNet(name string) *Net {
	return &Net{
		proto:   &c2pb.NetDef{Name: name},
		defined: make(map[string]bool),
	}
}

// FromProto wraps an existing NetDef in a Net, indexing its defined blobs.
func FromProto(def *c2pb.NetDef) *Net {
	n := &Net{proto: def, defined: make(map[string]bool)}
	for _, s := range def.ExternalInput {
		n.defined[s] = true
	}
	for _, op := range def.Op {
		for _, out := range op.Output {
			n.defined[out] = true
		}
	}
	return n
}

// Name returns the net name.
func (n *Net) Name() string { return n.proto.Name }

// Proto returns the underlying NetDef. Callers may decorate it further; the
// net keeps referring to the same proto.
func (n *Net) Proto() *c2pb.NetDef { return n.proto }

// AddOp appends an operator and returns its def for further decoration
// (engine, device option). Output blobs become defined names.
func (n *Net) AddOp(opType string, inputs, outputs []BlobRef, args ...*c2pb.Argument) *c2pb.OperatorDef {
	op := &c2pb.OperatorDef{
		Type:   opType,
		Input:  BlobNames(inputs),
		Output: BlobNames(outputs),
		Arg:    args,
	}
	n.proto.Op = append(n.proto.Op, op)
	for _, out := range op.Output {
		n.defined[out] = true
	}
	return op
}

// BlobIsDefined reports whether a blob is produced by an operator in this net
// or registered as an external input.
func (n *Net) BlobIsDefined(b BlobRef) bool {
	return n.defined[string(b)]
}

// NextName returns an unused blob name derived from prefix. The first request
// for a prefix returns it verbatim; later requests append _2, _3, ...
func (n *Net) NextName(prefix string) BlobRef {
	if prefix == "" {
		prefix = n.proto.Name + "_blob"
	}
	name := prefix
	for idx := 2; n.defined[name]; idx++ {
		name = fmt.Sprintf("%s_%d", prefix, idx)
	}
	return BlobRef(name)
}

// AddExternalInput declares blobs the net reads but does not produce.
// Registering the same input twice panics.
func (n *Net) AddExternalInput(blobs ...BlobRef) {
	for _, b := range blobs {
		for _, existing := range n.proto.ExternalInput {
			if existing == string(b) {
				panic(fmt.Sprintf("net %s already contains an input named %s", n.proto.Name, b))
			}
		}
		n.proto.ExternalInput = append(n.proto.ExternalInput, string(b))
		n.defined[string(b)] = true
	}
}

// AddExternalOutput declares blobs the net exposes to callers.
func (n *Net) AddExternalOutput(blobs ...BlobRef) {
	for _, b := range blobs {
		n.proto.ExternalOutput = append(n.proto.ExternalOutput, string(b))
	}
}

// RunAllOnGPU places the whole net on a GPU device. Individual operators can
// still override placement with their own device option.
func (n *Net) RunAllOnGPU(deviceType c2pb.DeviceType, gpuID int) {
	dev := &c2pb.DeviceOption{DeviceType: deviceType}
	switch deviceType {
	case c2pb.DeviceHIP:
		dev.HipGPUID = int32(gpuID) //nolint:gosec // G115: GPU ordinals are small.
	default:
		dev.CudaGPUID = int32(gpuID) //nolint:gosec // G115: GPU ordinals are small.
	}
	n.proto.DeviceOption = dev
}

// RunAllOnCPU places the whole net on the CPU.
func (n *Net) RunAllOnCPU() {
	n.proto.DeviceOption = &c2pb.DeviceOption{DeviceType: c2pb.DeviceCPU}
}

// Clone returns a deep copy of this net under a new name.
func (n *Net) Clone(name string) *Net {
	proto := n.proto.Clone()
	proto.Name = name
	return FromProto(proto)
}
