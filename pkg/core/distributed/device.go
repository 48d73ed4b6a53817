// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package distributed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DeviceType is the kind of compute device a tensor resides on.
type DeviceType int

//go:generate go tool enumer -type=DeviceType -trimprefix=DeviceType -transform=lower -output=gen_devicetype_enumer.go device.go

const (
	// DeviceTypeCPU is the host CPU.
	DeviceTypeCPU DeviceType = iota

	// DeviceTypeCUDA is a CUDA-class GPU accelerator.
	DeviceTypeCUDA
)

// Device identifies a compute device: its kind and, optionally, its ordinal
// among devices of the same kind.
//
// The zero value is the CPU with an unspecified index.
type Device struct {
	Type DeviceType

	// Index is the ordinal among devices of the same type, or -1 (or any negative
	// value) if unspecified.
	Index int
}

// CPU returns the host CPU device.
func CPU() Device {
	return Device{Type: DeviceTypeCPU, Index: -1}
}

// CUDA returns the CUDA device with the given ordinal.
func CUDA(index int) Device {
	return Device{Type: DeviceTypeCUDA, Index: index}
}

// ParseDevice parses a device descriptor in the form "<type>" or "<type>:<index>",
// e.g. "cpu", "cuda" or "cuda:1".
func ParseDevice(desc string) (Device, error) {
	typePart := desc
	index := -1
	if colon := strings.Index(desc, ":"); colon != -1 {
		typePart = desc[:colon]
		parsed, err := strconv.Atoi(desc[colon+1:])
		if err != nil || parsed < 0 {
			return Device{}, errors.Errorf("invalid device index in descriptor %q", desc)
		}
		index = parsed
	}
	deviceType, err := DeviceTypeString(typePart)
	if err != nil {
		return Device{}, errors.Errorf("unsupported device type in descriptor %q", desc)
	}
	return Device{Type: deviceType, Index: index}, nil
}

// String implements fmt.Stringer, in the same "<type>[:<index>]" form accepted
// by ParseDevice.
func (d Device) String() string {
	if d.Index < 0 {
		return d.Type.String()
	}
	return fmt.Sprintf("%s:%d", d.Type, d.Index)
}
