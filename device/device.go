// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device builds device descriptors and resolves the preferred GPU
// flavor. Everything here is advisory graph metadata; nothing probes
// hardware.
//
// Two environment variables adjust the defaults:
//
//	BARISTA_USE_HIP    prefer HIP/MIOpen over CUDA/cuDNN (default false)
//	BARISTA_GPU_COUNT  advisory device count for id validation (default 1)
package device

import (
	"github.com/born-ml/barista/internal/c2pb"
	"github.com/born-ml/barista/internal/device"
)

// Vendor engine names for GPU-accelerated operators.
const (
	EngineCUDNN  = device.EngineCUDNN
	EngineMIOPEN = device.EngineMIOPEN
)

// Argument names the vendor engines understand on convolution operators.
const (
	ArgExhaustiveSearch = device.ArgExhaustiveSearch
	ArgWSNBytesLimit    = device.ArgWSNBytesLimit
)

// HasHIP reports whether HIP devices are preferred over CUDA.
func HasHIP() bool { return device.HasHIP() }

// SetHIPEnabled overrides the HIP preference at runtime.
func SetHIPEnabled(v bool) { device.SetHIPEnabled(v) }

// PreferredGPUEngine returns MIOPEN under HIP, CUDNN otherwise.
func PreferredGPUEngine() string { return device.PreferredGPUEngine() }

// GPUCount returns the advisory GPU count.
func GPUCount() int { return device.GPUCount() }

// SetGPUCount overrides the advisory GPU count.
func SetGPUCount(n int) { device.SetGPUCount(n) }

// DefaultGPUID returns the GPU ordinal used when none is given.
func DefaultGPUID() int { return device.DefaultGPUID() }

// SetDefaultGPUID sets the default GPU ordinal, validated against the
// advisory count.
func SetDefaultGPUID(id int) error { return device.SetDefaultGPUID(id) }

// Option builds a device descriptor for an explicit device type.
func Option(deviceType c2pb.DeviceType, id int) *c2pb.DeviceOption {
	return device.Option(deviceType, id)
}

// CPUOption builds a CPU descriptor.
func CPUOption() *c2pb.DeviceOption { return device.CPUOption() }

// GPUOption builds a descriptor for the preferred GPU flavor.
func GPUOption(id int) *c2pb.DeviceOption { return device.GPUOption(id) }

// GPUType returns the preferred GPU device type (HIP or CUDA).
func GPUType() c2pb.DeviceType { return device.GPUType() }
