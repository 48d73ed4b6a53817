// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package distributed

import (
	"github.com/pkg/errors"
)

// Names of the collective-communication backends a process group can be
// initialized with. The backend must support collectives on tensors resident on
// the devices the job uses.
const (
	// BackendGloo is the general-purpose backend, operating on CPU tensors.
	BackendGloo = "gloo"

	// BackendNCCL is the accelerator-optimized backend, operating on CUDA tensors.
	BackendNCCL = "nccl"
)

// BackendForDevice returns the name of the collective-communication backend that
// supports collectives on tensors resident on the given device: BackendGloo for
// CPU devices, BackendNCCL for CUDA devices.
//
// It returns an error for device types it doesn't recognize.
func BackendForDevice(device Device) (string, error) {
	switch device.Type {
	case DeviceTypeCPU:
		return BackendGloo, nil
	case DeviceTypeCUDA:
		return BackendNCCL, nil
	}
	return "", errors.Errorf("no process group backend known for device %q", device)
}
