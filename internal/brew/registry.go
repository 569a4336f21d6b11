package brew

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// HelperFunc is the uniform calling shape a helper registers under: blob
// lists for inputs and outputs, and dims carrying the integer geometry in
// the helper's declaration order (dimIn, dimOut, kernel for Conv).
type HelperFunc func(m *model.Helper, inputs, outputs []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]HelperFunc)
)

// Register makes a helper invocable by name. Registering a taken name
// panics.
func Register(name string, fn HelperFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		panic("helper already registered: " + name)
	}
	registry[name] = fn
}

// Has reports whether a helper is registered under the name.
func Has(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// Names returns the registered helper names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

// Run invokes a registered helper by name.
func Run(name string, m *model.Helper, inputs, outputs []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
	registryMu.RLock()
	fn, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown helper: %s", name)
	}
	return fn(m, inputs, outputs, dims, opts...)
}

// arity checks the blob and dim counts an adapter expects.
func arity(name string, inputs, outputs []core.BlobRef, dims []int, nIn, nOut, nDims int) error {
	if len(inputs) != nIn || len(outputs) != nOut || len(dims) != nDims {
		return fmt.Errorf("%s expects %d input(s), %d output(s) and %d dim(s), got %d/%d/%d",
			name, nIn, nOut, nDims, len(inputs), len(outputs), len(dims))
	}
	return nil
}

// single wraps a helper that emits one output blob.
func single(blob core.BlobRef) []core.BlobRef { return []core.BlobRef{blob} }

func init() {
	Register("Conv", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("Conv", in, out, dims, 1, 1, 3); err != nil {
			return nil, err
		}
		return single(Conv(m, in[0], out[0], dims[0], dims[1], dims[2], opts...)), nil
	})
	Register("ConvTranspose", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("ConvTranspose", in, out, dims, 1, 1, 3); err != nil {
			return nil, err
		}
		return single(ConvTranspose(m, in[0], out[0], dims[0], dims[1], dims[2], opts...)), nil
	})
	Register("GroupConv", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("GroupConv", in, out, dims, 1, 1, 4); err != nil {
			return nil, err
		}
		return single(GroupConv(m, in[0], out[0], dims[0], dims[1], dims[2], dims[3], opts...)), nil
	})
	Register("FC", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("FC", in, out, dims, 1, 1, 2); err != nil {
			return nil, err
		}
		return single(FC(m, in[0], out[0], dims[0], dims[1], opts...)), nil
	})
	Register("PackedFC", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("PackedFC", in, out, dims, 1, 1, 2); err != nil {
			return nil, err
		}
		return single(PackedFC(m, in[0], out[0], dims[0], dims[1], opts...)), nil
	})
	Register("FCPrune", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("FCPrune", in, out, dims, 1, 1, 2); err != nil {
			return nil, err
		}
		return single(FCPrune(m, in[0], out[0], dims[0], dims[1], opts...)), nil
	})
	Register("FCDecomp", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("FCDecomp", in, out, dims, 1, 1, 2); err != nil {
			return nil, err
		}
		return single(FCDecomp(m, in[0], out[0], dims[0], dims[1], opts...)), nil
	})
	Register("Relu", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("Relu", in, out, dims, 1, 1, 0); err != nil {
			return nil, err
		}
		return single(Relu(m, in[0], out[0], opts...)), nil
	})
	Register("PRelu", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("PRelu", in, out, dims, 1, 1, 0); err != nil {
			return nil, err
		}
		return single(PRelu(m, in[0], out[0], opts...)), nil
	})
	Register("Softmax", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("Softmax", in, out, dims, 1, 1, 0); err != nil {
			return nil, err
		}
		return single(Softmax(m, in[0], out[0], opts...)), nil
	})
	Register("Dropout", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("Dropout", in, out, dims, 1, 1, 0); err != nil {
			return nil, err
		}
		return single(Dropout(m, in[0], out[0], opts...)), nil
	})
	Register("LRN", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("LRN", in, out, dims, 1, 1, 0); err != nil {
			return nil, err
		}
		return single(LRN(m, in[0], out[0], opts...)), nil
	})
	Register("SpatialBN", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("SpatialBN", in, out, dims, 1, 1, 1); err != nil {
			return nil, err
		}
		return single(SpatialBN(m, in[0], out[0], dims[0], opts...)), nil
	})
	Register("InstanceNorm", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("InstanceNorm", in, out, dims, 1, 1, 1); err != nil {
			return nil, err
		}
		return single(InstanceNorm(m, in[0], out[0], dims[0], opts...)), nil
	})
	Register("Concat", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if len(in) == 0 || len(out) != 1 || len(dims) != 0 {
			return nil, fmt.Errorf("Concat expects at least 1 input and exactly 1 output")
		}
		return single(Concat(m, in, out[0], opts...)), nil
	})
	Register("Sum", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if len(in) == 0 || len(out) != 1 || len(dims) != 0 {
			return nil, fmt.Errorf("Sum expects at least 1 input and exactly 1 output")
		}
		return single(Sum(m, in, out[0], opts...)), nil
	})
	Register("Transpose", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("Transpose", in, out, dims, 1, 1, 0); err != nil {
			return nil, err
		}
		return single(Transpose(m, in[0], out[0], opts...)), nil
	})
	Register("MaxPool", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("MaxPool", in, out, dims, 1, 1, 0); err != nil {
			return nil, err
		}
		return single(MaxPool(m, in[0], out[0], opts...)), nil
	})
	Register("AveragePool", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("AveragePool", in, out, dims, 1, 1, 0); err != nil {
			return nil, err
		}
		return single(AveragePool(m, in[0], out[0], opts...)), nil
	})
	Register("MaxPoolWithIndex", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("MaxPoolWithIndex", in, out, dims, 1, 1, 0); err != nil {
			return nil, err
		}
		return single(MaxPoolWithIndex(m, in[0], out[0], opts...)), nil
	})
	Register("Iter", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("Iter", in, out, dims, 0, 1, 0); err != nil {
			return nil, err
		}
		return single(Iter(m, out[0], opts...)), nil
	})
	Register("Accuracy", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("Accuracy", in, out, dims, 2, 1, 0); err != nil {
			return nil, err
		}
		return single(Accuracy(m, in[0], in[1], out[0], opts...)), nil
	})
	Register("ImageInput", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if err := arity("ImageInput", in, out, dims, 1, 2, 0); err != nil {
			return nil, err
		}
		data, label := ImageInput(m, in[0], out[0], out[1], opts...)
		return []core.BlobRef{data, label}, nil
	})
	Register("VideoInput", func(m *model.Helper, in, out []core.BlobRef, dims []int, opts ...Option) ([]core.BlobRef, error) {
		if len(in) != 1 || len(out) == 0 || len(dims) != 0 {
			return nil, fmt.Errorf("VideoInput expects 1 input and at least 1 output")
		}
		return VideoInput(m, in[0], out, opts...), nil
	})
}
