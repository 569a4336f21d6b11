package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/barista/internal/c2pb"
)

// withHIP runs a test body under a forced HIP preference.
func withHIP(t *testing.T, enabled bool, fn func()) {
	t.Helper()
	prev := HasHIP()
	SetHIPEnabled(enabled)
	defer SetHIPEnabled(prev)
	fn()
}

// TestPreferredGPUEngine verifies the engine picked for each GPU flavor.
func TestPreferredGPUEngine(t *testing.T) {
	withHIP(t, false, func() {
		assert.Equal(t, EngineCUDNN, PreferredGPUEngine())
	})
	withHIP(t, true, func() {
		assert.Equal(t, EngineMIOPEN, PreferredGPUEngine())
	})
}

// TestGPUOption verifies that the id lands in the field matching the flavor.
func TestGPUOption(t *testing.T) {
	withHIP(t, false, func() {
		opt := GPUOption(2)
		assert.Equal(t, c2pb.DeviceCUDA, opt.DeviceType)
		assert.Equal(t, int32(2), opt.CudaGPUID)
		assert.Equal(t, int32(0), opt.HipGPUID)
		assert.Equal(t, c2pb.DeviceCUDA, GPUType())
	})
	withHIP(t, true, func() {
		opt := GPUOption(3)
		assert.Equal(t, c2pb.DeviceHIP, opt.DeviceType)
		assert.Equal(t, int32(3), opt.HipGPUID)
		assert.Equal(t, int32(0), opt.CudaGPUID)
		assert.Equal(t, c2pb.DeviceHIP, GPUType())
	})
}

// TestOption verifies ordinal placement per device type.
func TestOption(t *testing.T) {
	cuda := Option(c2pb.DeviceCUDA, 1)
	assert.Equal(t, int32(1), cuda.CudaGPUID)

	hip := Option(c2pb.DeviceHIP, 1)
	assert.Equal(t, int32(1), hip.HipGPUID)
	assert.Equal(t, int32(0), hip.CudaGPUID)

	cpu := Option(c2pb.DeviceCPU, 7)
	assert.Equal(t, int32(0), cpu.CudaGPUID)
	assert.Equal(t, int32(0), cpu.HipGPUID)

	assert.Equal(t, c2pb.DeviceCPU, CPUOption().DeviceType)
}

// TestDefaultGPUID verifies validation against the advisory count.
func TestDefaultGPUID(t *testing.T) {
	prevCount, prevID := GPUCount(), DefaultGPUID()
	defer func() {
		SetGPUCount(prevCount)
		require.NoError(t, SetDefaultGPUID(prevID))
	}()

	SetGPUCount(2)
	require.NoError(t, SetDefaultGPUID(1))
	assert.Equal(t, 1, DefaultGPUID())

	err := SetDefaultGPUID(2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.Equal(t, 1, DefaultGPUID())

	require.Error(t, SetDefaultGPUID(-1))
}

// TestEnvParsing verifies trimming and fallback on bad values.
func TestEnvParsing(t *testing.T) {
	t.Setenv("BARISTA_TEST_FLAG", "  \"true\" ")
	assert.True(t, envBool("BARISTA_TEST_FLAG", false))

	t.Setenv("BARISTA_TEST_FLAG", "not-a-bool")
	assert.False(t, envBool("BARISTA_TEST_FLAG", false))
	assert.True(t, envBool("BARISTA_TEST_FLAG", true))

	t.Setenv("BARISTA_TEST_COUNT", "4")
	assert.Equal(t, 4, envInt("BARISTA_TEST_COUNT", 1))

	t.Setenv("BARISTA_TEST_COUNT", "0")
	assert.Equal(t, 1, envInt("BARISTA_TEST_COUNT", 1))

	t.Setenv("BARISTA_TEST_COUNT", "garbage")
	assert.Equal(t, 3, envInt("BARISTA_TEST_COUNT", 3))
}
