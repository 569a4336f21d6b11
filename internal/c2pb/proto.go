package c2pb

// Caffe2 protobuf data structures (hand-written).

// NetDef describes a network: a named list of operators plus the blobs the
// network consumes and produces.
type NetDef struct {
	Name           string         // Net name
	Op             []*OperatorDef // Operators, in execution order
	Type           string         // Executor type (e.g., "simple", "dag")
	NumWorkers     int32          // Worker count for legacy executors (deprecated)
	DeviceOption   *DeviceOption  // Net-wide device placement
	Arg            []*Argument    // Net-level arguments
	ExternalInput  []string       // Blobs the net reads but does not produce
	ExternalOutput []string       // Blobs the net exposes to callers
}

// OperatorDef describes a single operator invocation.
type OperatorDef struct {
	Input        []string      // Input blob names
	Output       []string      // Output blob names
	Name         string        // Operator name (optional)
	Type         string        // Operator type (e.g., "Conv", "FC", "Relu")
	Arg          []*Argument   // Operator arguments
	DeviceOption *DeviceOption // Device placement override
	Engine       string        // Engine hint (e.g., "CUDNN", "MIOPEN")
	ControlInput []string      // Scheduling-only dependencies
	IsGradientOp bool          // Set on operators emitted by the gradient builder
}

// Argument is a named value attached to an operator or a net. Exactly one
// value field is meant to be set; MakeArgument-style constructors enforce
// that. F and I are pointers so that explicitly set zero values survive a
// round trip through the wire format.
type Argument struct {
	Name    string         // Argument name
	F       *float32       // Single float value
	I       *int64         // Single int value
	S       []byte         // Single byte-string value
	Floats  []float32      // Repeated float values
	Ints    []int64        // Repeated int values
	Strings [][]byte       // Repeated byte-string values
	N       *NetDef        // Single net value
	Nets    []*NetDef      // Repeated net values
	T       *TensorProto   // Single tensor value
	Tensors []*TensorProto // Repeated tensor values
}

// DeviceOption describes where an operator or net should run.
type DeviceOption struct {
	DeviceType DeviceType // Device kind (CPU, CUDA, HIP, ...)
	CudaGPUID  int32      // CUDA device ordinal
	RandomSeed uint32     // Per-device RNG seed (0 means unset)
	NodeName   string     // Distributed node name
	NumaNodeID int32      // NUMA node binding
	ExtraInfo  []string   // Free-form placement hints
	HipGPUID   int32      // HIP device ordinal
}

// TensorProto carries tensor contents, used by fill arguments such as
// GivenTensorFill and by serialized parameters.
type TensorProto struct {
	Dims       []int64        // Tensor shape
	DataType   TensorDataType // Element data type
	FloatData  []float32      // float32 payload
	Int32Data  []int32        // int32 payload
	ByteData   []byte         // Raw byte payload (uint8 and float16 tensors)
	StringData [][]byte       // String payload
	Name       string         // Tensor name
	DoubleData []float64      // float64 payload
	Int64Data  []int64        // int64 payload
}

// DeviceType enumerates the device kinds understood by the graph format.
type DeviceType int32

// Device kinds.
const (
	DeviceCPU    DeviceType = 0
	DeviceCUDA   DeviceType = 1
	DeviceMKLDNN DeviceType = 2
	DeviceOpenGL DeviceType = 3
	DeviceOpenCL DeviceType = 4
	DeviceIDEEP  DeviceType = 5
	DeviceHIP    DeviceType = 6
)

// String returns the canonical device name.
func (d DeviceType) String() string {
	switch d {
	case DeviceCPU:
		return "CPU"
	case DeviceCUDA:
		return "CUDA"
	case DeviceMKLDNN:
		return "MKLDNN"
	case DeviceOpenGL:
		return "OPENGL"
	case DeviceOpenCL:
		return "OPENCL"
	case DeviceIDEEP:
		return "IDEEP"
	case DeviceHIP:
		return "HIP"
	default:
		return "UNKNOWN"
	}
}

// TensorDataType enumerates tensor element types.
type TensorDataType int32

// Tensor element types. Value 11 is reserved in the schema.
const (
	TensorUndefined TensorDataType = 0
	TensorFloat     TensorDataType = 1  // float32
	TensorInt32     TensorDataType = 2  // int32
	TensorByte      TensorDataType = 3  // raw bytes
	TensorString    TensorDataType = 4  // string
	TensorBool      TensorDataType = 5  // bool (stored as int32)
	TensorUint8     TensorDataType = 6  // uint8
	TensorInt8      TensorDataType = 7  // int8
	TensorUint16    TensorDataType = 8  // uint16
	TensorInt16     TensorDataType = 9  // int16
	TensorInt64     TensorDataType = 10 // int64
	TensorFloat16   TensorDataType = 12 // IEEE half, packed into ByteData
	TensorDouble    TensorDataType = 13 // float64
)

// String returns the canonical data type name.
func (t TensorDataType) String() string {
	switch t {
	case TensorUndefined:
		return "UNDEFINED"
	case TensorFloat:
		return "FLOAT"
	case TensorInt32:
		return "INT32"
	case TensorByte:
		return "BYTE"
	case TensorString:
		return "STRING"
	case TensorBool:
		return "BOOL"
	case TensorUint8:
		return "UINT8"
	case TensorInt8:
		return "INT8"
	case TensorUint16:
		return "UINT16"
	case TensorInt16:
		return "INT16"
	case TensorInt64:
		return "INT64"
	case TensorFloat16:
		return "FLOAT16"
	case TensorDouble:
		return "DOUBLE"
	default:
		return "UNKNOWN"
	}
}
