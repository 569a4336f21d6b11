package brew

import (
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/device"
	"github.com/born-ml/barista/internal/model"
)

// config collects everything the options can set. Pointer fields distinguish
// "not given" from an explicit zero so the ArgScope fallback only applies
// when the caller said nothing.
type config struct {
	order            string
	kernels          []int
	stride           int
	pads             []int // length 1 uniform, length 4 t/l/b/r
	dilation         int
	group            int
	axis             *int
	topK             int
	rank             int
	numChannels      int
	ratio            *float32
	epsilon          *float32
	momentum         *float32
	threshold        *float32
	compLB           *float32
	weightInit       *model.Initializer
	biasInit         *model.Initializer
	slopeInit        *model.Initializer
	noBias           bool
	isTest           *bool
	useGPUEngine     *bool
	exhaustiveSearch *bool
	wsLimit          *int64
	engine           string
	deviceOpt        *c2pb.DeviceOption
	useGPUTransform  bool
	extraArgs        []*c2pb.Argument
}

// Option configures a single helper call.
type Option func(*config)

func makeConfig(opts []Option) *config {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithOrder sets the tensor layout, "NCHW" or "NHWC".
func WithOrder(order string) Option {
	return func(c *config) { c.order = order }
}

// WithKernel sets a square kernel size.
func WithKernel(k int) Option {
	return func(c *config) { c.kernels = []int{k} }
}

// WithKernels sets one kernel size per spatial dimension.
func WithKernels(ks ...int) Option {
	return func(c *config) { c.kernels = ks }
}

// WithStride sets the stride.
func WithStride(s int) Option {
	return func(c *config) { c.stride = s }
}

// WithPad sets uniform padding.
func WithPad(p int) Option {
	return func(c *config) { c.pads = []int{p} }
}

// WithPads sets per-edge padding.
func WithPads(t, l, b, r int) Option {
	return func(c *config) { c.pads = []int{t, l, b, r} }
}

// WithDilation sets the kernel dilation.
func WithDilation(d int) Option {
	return func(c *config) { c.dilation = d }
}

// WithGroup splits the convolution channels into groups.
func WithGroup(g int) Option {
	return func(c *config) { c.group = g }
}

// WithAxis sets the axis argument on ops that take one.
func WithAxis(axis int) Option {
	return func(c *config) { c.axis = &axis }
}

// WithTopK sets the top-k cutoff for Accuracy.
func WithTopK(k int) Option {
	return func(c *config) { c.topK = k }
}

// WithRank sets the factorization rank for FCDecomp.
func WithRank(r int) Option {
	return func(c *config) { c.rank = r }
}

// WithNumChannels sets the channel count for per-channel parameters.
func WithNumChannels(n int) Option {
	return func(c *config) { c.numChannels = n }
}

// WithRatio sets the dropout ratio.
func WithRatio(r float32) Option {
	return func(c *config) { c.ratio = &r }
}

// WithEpsilon sets the numerical stability epsilon on normalization ops.
func WithEpsilon(e float32) Option {
	return func(c *config) { c.epsilon = &e }
}

// WithMomentum sets the running statistics momentum.
func WithMomentum(v float32) Option {
	return func(c *config) { c.momentum = &v }
}

// WithThreshold sets the pruning threshold for FCPrune.
func WithThreshold(v float32) Option {
	return func(c *config) { c.threshold = &v }
}

// WithCompLB sets the compression lower bound for FCPrune.
func WithCompLB(v float32) Option {
	return func(c *config) { c.compLB = &v }
}

// WithWeightInit overrides the weight initializer.
func WithWeightInit(init model.Initializer) Option {
	return func(c *config) { c.weightInit = &init }
}

// WithBiasInit overrides the bias initializer.
func WithBiasInit(init model.Initializer) Option {
	return func(c *config) { c.biasInit = &init }
}

// WithSlopeInit overrides the PRelu slope initializer.
func WithSlopeInit(init model.Initializer) Option {
	return func(c *config) { c.slopeInit = &init }
}

// WithNoBias drops the bias parameter.
func WithNoBias() Option {
	return func(c *config) { c.noBias = true }
}

// WithIsTest marks the op as running in test (inference) mode. Some helpers
// change their output signature on this flag.
func WithIsTest(v bool) Option {
	return func(c *config) { c.isTest = &v }
}

// WithGPUEngine overrides the session's GPU engine preference for one call.
func WithGPUEngine(v bool) Option {
	return func(c *config) { c.useGPUEngine = &v }
}

// WithExhaustiveSearch overrides the engine's algorithm-search preference.
func WithExhaustiveSearch(v bool) Option {
	return func(c *config) { c.exhaustiveSearch = &v }
}

// WithWSLimit caps the engine workspace, in bytes.
func WithWSLimit(bytes int64) Option {
	return func(c *config) { c.wsLimit = &bytes }
}

// WithEngine pins the op to a named engine, bypassing the GPU preference.
func WithEngine(engine string) Option {
	return func(c *config) { c.engine = engine }
}

// WithDeviceOption places the op on a specific device.
func WithDeviceOption(do *c2pb.DeviceOption) Option {
	return func(c *config) { c.deviceOpt = do }
}

// WithUseGPUTransform lets ImageInput decode and lay out images on the GPU.
func WithUseGPUTransform(v bool) Option {
	return func(c *config) { c.useGPUTransform = v }
}

// WithArg attaches an arbitrary operator argument. The value types accepted
// are those of core.MakeArgument.
func WithArg(name string, value any) Option {
	return func(c *config) { c.extraArgs = append(c.extraArgs, core.MakeArgument(name, value)) }
}

// resolveOrder returns the layout for this call: explicit option, then the
// model's ArgScope, then NCHW.
func (c *config) resolveOrder(m *model.Helper) string {
	if c.order != "" {
		return c.order
	}
	if s := m.ArgScope().Order; s != "" {
		return s
	}
	return "NCHW"
}

// gpuEngineOn reports whether this call wants the vendor GPU engine.
func (c *config) gpuEngineOn(m *model.Helper) bool {
	if c.useGPUEngine != nil {
		return *c.useGPUEngine
	}
	return m.ArgScope().UseGPUEngine
}

// resolveEngine returns the engine for ops that honor the GPU preference.
// An explicit WithEngine always wins; otherwise the preference picks the
// vendor engine for the GPU flavor in use.
func (c *config) resolveEngine(m *model.Helper) string {
	if c.engine != "" {
		return c.engine
	}
	if c.gpuEngineOn(m) {
		return device.PreferredGPUEngine()
	}
	return ""
}

func (c *config) exhaustive(m *model.Helper) bool {
	if c.exhaustiveSearch != nil {
		return *c.exhaustiveSearch
	}
	return m.ArgScope().GPUEngineExhaustiveSearch
}

func (c *config) wsLimitBytes(m *model.Helper) int64 {
	if c.wsLimit != nil {
		return *c.wsLimit
	}
	return m.ArgScope().WSNBytesLimit
}

func (c *config) weightInitializer() model.Initializer {
	if c.weightInit != nil {
		return *c.weightInit
	}
	return model.XavierFill()
}

func (c *config) biasInitializer() model.Initializer {
	if c.biasInit != nil {
		return *c.biasInit
	}
	return model.ZeroFill()
}

// applyConvEngine sets the engine on conv-family ops, plus the tuning
// arguments the vendor engines read.
func (c *config) applyConvEngine(m *model.Helper, op *c2pb.OperatorDef) {
	engine := c.resolveEngine(m)
	if engine == "" {
		return
	}
	op.Engine = engine
	if engine == device.EngineCUDNN || engine == device.EngineMIOPEN {
		op.Arg = append(op.Arg, core.MakeArgument(device.ArgExhaustiveSearch, c.exhaustive(m)))
		if ws := c.wsLimitBytes(m); ws > 0 {
			op.Arg = append(op.Arg, core.MakeArgument(device.ArgWSNBytesLimit, ws))
		}
	}
}

// finish applies the call-independent trailers: explicit engine, passthrough
// arguments, and device placement.
func (c *config) finish(op *c2pb.OperatorDef) {
	if c.engine != "" {
		op.Engine = c.engine
	}
	op.Arg = append(op.Arg, c.extraArgs...)
	if c.deviceOpt != nil {
		op.DeviceOption = c.deviceOpt.Clone()
	}
}

// padArgs renders the padding options as operator arguments.
func (c *config) padArgs() []*c2pb.Argument {
	switch len(c.pads) {
	case 1:
		return []*c2pb.Argument{core.MakeArgument("pad", c.pads[0])}
	case 4:
		return []*c2pb.Argument{
			core.MakeArgument("pad_t", c.pads[0]),
			core.MakeArgument("pad_l", c.pads[1]),
			core.MakeArgument("pad_b", c.pads[2]),
			core.MakeArgument("pad_r", c.pads[3]),
		}
	}
	return nil
}

// createParam creates a parameter through the model, treating registration
// conflicts as programmer error.
func createParam(m *model.Helper, name core.BlobRef, shape []int64, init model.Initializer, tag model.ParamTag) core.BlobRef {
	p, err := m.CreateParam(string(name), shape, init, tag)
	if err != nil {
		panic(err)
	}
	return p
}
