// Package device builds device descriptors and holds the process-wide GPU
// preferences the layer helpers consult. Nothing here probes hardware: the
// GPU count is advisory and comes from the environment, since the builder
// only describes where a graph should run.
package device

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/barista/internal/c2pb"
)

// Engine names and the argument names of the tunable engine knobs on
// conv-family operators.
const (
	EngineCUDNN  = "CUDNN"
	EngineMIOPEN = "MIOPEN"

	ArgExhaustiveSearch = "exhaustive_search"
	ArgWSNBytesLimit    = "ws_nbytes_limit"
)

var (
	hipEnabled   = envBool("BARISTA_USE_HIP", false)
	gpuCount     = envInt("BARISTA_GPU_COUNT", 1)
	defaultGPUID = 0
)

// envVar reads an environment variable with whitespace and quotes trimmed.
func envVar(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

func envBool(key string, defaultValue bool) bool {
	s := envVar(key)
	if s == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		slog.Warn("invalid environment variable, using default",
			"key", key, "value", s, "default", defaultValue)
		return defaultValue
	}
	return b
}

func envInt(key string, defaultValue int) int {
	s := envVar(key)
	if s == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		slog.Warn("invalid environment variable, using default",
			"key", key, "value", s, "default", defaultValue)
		return defaultValue
	}
	return n
}

// HasHIP reports whether GPU descriptors target AMD HIP devices instead of
// CUDA. Off unless BARISTA_USE_HIP is set.
func HasHIP() bool { return hipEnabled }

// SetHIPEnabled overrides the HIP preference. Mainly for tests.
func SetHIPEnabled(v bool) { hipEnabled = v }

// PreferredGPUEngine returns the vendor library engine that helpers request
// on GPU-capable operators: MIOPEN under HIP, CUDNN otherwise.
func PreferredGPUEngine() string {
	if hipEnabled {
		return EngineMIOPEN
	}
	return EngineCUDNN
}

// GPUCount returns the advisory device count used to validate GPU ids.
// Set BARISTA_GPU_COUNT to match the machine the graph will run on.
func GPUCount() int { return gpuCount }

// SetGPUCount overrides the advisory device count.
func SetGPUCount(n int) { gpuCount = n }

// DefaultGPUID returns the device id used when a caller gives none.
func DefaultGPUID() int { return defaultGPUID }

// SetDefaultGPUID changes the default device id, validated against the
// advisory count.
func SetDefaultGPUID(id int) error {
	if id < 0 || id >= gpuCount {
		return fmt.Errorf("gpu id %d out of range, have %d devices", id, gpuCount)
	}
	defaultGPUID = id
	return nil
}

// Option returns a descriptor for the given device type. The id lands in the
// ordinal field matching the type: HipGPUID for HIP, CudaGPUID for CUDA, and
// is ignored for device types without ordinals.
func Option(deviceType c2pb.DeviceType, id int) *c2pb.DeviceOption {
	opt := &c2pb.DeviceOption{DeviceType: deviceType}
	switch deviceType {
	case c2pb.DeviceHIP:
		opt.HipGPUID = int32(id)
	case c2pb.DeviceCUDA:
		opt.CudaGPUID = int32(id)
	}
	return opt
}

// CPUOption returns a CPU descriptor.
func CPUOption() *c2pb.DeviceOption {
	return &c2pb.DeviceOption{DeviceType: c2pb.DeviceCPU}
}

// GPUOption returns a descriptor for the preferred GPU flavor.
func GPUOption(id int) *c2pb.DeviceOption {
	if hipEnabled {
		return Option(c2pb.DeviceHIP, id)
	}
	return Option(c2pb.DeviceCUDA, id)
}

// GPUType returns the device type GPU descriptors use.
func GPUType() c2pb.DeviceType {
	if hipEnabled {
		return c2pb.DeviceHIP
	}
	return c2pb.DeviceCUDA
}
