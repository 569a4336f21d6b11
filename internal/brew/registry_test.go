package brew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/barista/internal/core"
	"github.com/born-ml/barista/internal/model"
)

// TestRegistry_BuiltIns verifies the built-in helpers are registered.
func TestRegistry_BuiltIns(t *testing.T) {
	for _, name := range []string{"Conv", "FC", "Relu", "MaxPool", "SpatialBN", "Concat"} {
		assert.True(t, Has(name), "missing built-in %s", name)
	}
	assert.False(t, Has("NoSuchHelper"))

	names := Names()
	assert.Contains(t, names, "Conv")
	assert.IsIncreasing(t, names)
}

// TestRegistry_Run verifies a helper invoked by name builds the same graph
// as a direct call.
func TestRegistry_Run(t *testing.T) {
	m := model.New("m")
	outs, err := Run("FC", m,
		[]core.BlobRef{"data"}, []core.BlobRef{"fc1"}, []int{784, 128})
	require.NoError(t, err)
	assert.Equal(t, []core.BlobRef{"fc1"}, outs)

	direct := model.New("d")
	FC(direct, "data", "fc1", 784, 128)
	assert.Equal(t, direct.Net().Proto().Op, m.Net().Proto().Op)
}

// TestRegistry_Errors verifies unknown names and arity mismatches.
func TestRegistry_Errors(t *testing.T) {
	m := model.New("m")
	_, err := Run("NoSuchHelper", m, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown helper")

	_, err = Run("Conv", m, []core.BlobRef{"data"}, []core.BlobRef{"c1"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects")
}

// TestRegistry_DuplicatePanics verifies double registration is refused.
func TestRegistry_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("Conv", func(*model.Helper, []core.BlobRef, []core.BlobRef, []int, ...Option) ([]core.BlobRef, error) {
			return nil, nil
		})
	})
}
