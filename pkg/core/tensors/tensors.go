// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors implements Tensor, a host-resident multidimensional array.
//
// A Tensor is defined by its shape (a data type and its axes' dimensions, see
// package shapes) and its content, stored as a flat (row-major) slice of the
// Go type corresponding to the DType.
//
// Tensors here are the values exchanged by the collective helpers in package
// distributed: they hold only a host ("local") backing. Device placement,
// transfers and collective transport belong to the distributed runtime and its
// backends, not to this package.
//
// There are various ways to construct a Tensor:
//
//   - FromShape(shape): a tensor of the given shape, zero-initialized.
//   - FromScalar[T](value): a scalar (rank-0) tensor.
//   - FromScalarAndDimensions[T](value, dimensions...): a tensor of the given
//     dimensions, filled with value.
//   - FromFlatDataAndDimensions[T](data, dimensions...): a tensor of the given
//     dimensions with the flattened content data (copied).
//
// Access the flat data with the generic ConstFlatData and MutableFlatData, or
// the raw bytes with Tensor.ConstBytes and Tensor.MutableBytes.
package tensors

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/ninginthecloud/tnt/pkg/core/shapes"
	"github.com/ninginthecloud/tnt/pkg/support/xslices"
)

// Tensor represents a multidimensional array, from a scalar with rank 0 to
// arbitrarily large ranks, stored on the host as a flat row-major slice.
//
// A Tensor is not safe for concurrent mutation: callers coordinating tensors
// across goroutines (e.g., a distributed runtime) must do their own locking or
// exchange clones.
type Tensor struct {
	shape shapes.Shape

	// flat is a []T slice, where T is the Go type corresponding to shape.DType.
	flat any
}

// FromShape returns a Tensor of the given shape, with the data zero-initialized.
func FromShape(shape shapes.Shape) *Tensor {
	if !shape.Ok() {
		exceptions.Panicf("tensors.FromShape: invalid shape")
	}
	flatV := reflect.MakeSlice(reflect.SliceOf(shape.DType.GoType()), shape.Size(), shape.Size())
	return &Tensor{shape: shape.Clone(), flat: flatV.Interface()}
}

// FromScalar returns a scalar (rank-0) Tensor with the given value.
// The DType is inferred from the value.
func FromScalar[T dtypes.Supported](value T) *Tensor {
	return FromScalarAndDimensions(value)
}

// FromScalarAndDimensions returns a Tensor with the given dimensions, filled with
// the scalar value replicated everywhere. The DType is inferred from the value.
func FromScalarAndDimensions[T dtypes.Supported](value T, dimensions ...int) *Tensor {
	dtype := dtypes.FromGenericsType[T]()
	t := FromShape(shapes.Make(dtype, dimensions...))
	MutableFlatData(t, func(flat []T) {
		xslices.FillSlice(flat, value)
	})
	return t
}

// FromFlatDataAndDimensions returns a Tensor with the given dimensions, with the
// flattened content copied from data. The DType is inferred from the data type.
//
// It panics if the size of data doesn't match the dimensions.
func FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int) *Tensor {
	dtype := dtypes.FromGenericsType[T]()
	shape := shapes.Make(dtype, dimensions...)
	if len(data) != shape.Size() {
		exceptions.Panicf("tensors.FromFlatDataAndDimensions(%s): data size is %d, but shape size is %d",
			shape, len(data), shape.Size())
	}
	t := FromShape(shape)
	MutableFlatData(t, func(flat []T) {
		copy(flat, data)
	})
	return t
}

// Shape of the Tensor.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType of the Tensor's elements.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Rank of the Tensor's shape: the number of axes. A scalar has rank 0.
func (t *Tensor) Rank() int { return t.shape.Rank() }

// IsScalar returns whether the Tensor is a scalar, that is, has rank 0.
func (t *Tensor) IsScalar() bool { return t.shape.IsScalar() }

// Size is the number of elements in the Tensor.
func (t *Tensor) Size() int { return t.shape.Size() }

// ConstFlatData calls accessFn with the flattened data as a slice of the Go type
// corresponding to the DType. Even a scalar has a flat representation of one element.
//
// The slice is the actual Tensor data, not a copy, and must not be modified --
// see Tensor.MutableFlatData for that.
func (t *Tensor) ConstFlatData(accessFn func(flat any)) {
	accessFn(t.flat)
}

// MutableFlatData calls accessFn with the flattened data as a slice of the Go type
// corresponding to the DType. The contents of the slice may be changed until
// accessFn returns.
func (t *Tensor) MutableFlatData(accessFn func(flat any)) {
	accessFn(t.flat)
}

// ConstFlatData calls accessFn with the Tensor's flat data as a []T.
// The slice must not be modified -- see MutableFlatData.
//
// It panics if T doesn't match the Tensor's DType.
func ConstFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) {
	accessFn(flatAs[T](t))
}

// MutableFlatData calls accessFn with the Tensor's flat data as a []T, whose
// contents may be changed until accessFn returns.
//
// It panics if T doesn't match the Tensor's DType.
func MutableFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) {
	accessFn(flatAs[T](t))
}

func flatAs[T dtypes.Supported](t *Tensor) []T {
	if t.shape.DType != dtypes.FromGenericsType[T]() {
		var v T
		exceptions.Panicf("tensor has dtype %s, cannot access it as the incompatible Go type %T",
			t.shape.DType, v)
	}
	return t.flat.([]T)
}

// ConstBytes calls accessFn with the Tensor's data as raw bytes.
// The bytes are the actual Tensor data and must not be modified -- see
// Tensor.MutableBytes for that.
func (t *Tensor) ConstBytes(accessFn func(data []byte)) {
	accessFn(t.bytes())
}

// MutableBytes calls accessFn with the Tensor's data as raw bytes, whose
// contents may be changed until accessFn returns.
func (t *Tensor) MutableBytes(accessFn func(data []byte)) {
	accessFn(t.bytes())
}

// bytes reinterprets the flat data slice as raw bytes, without copying.
func (t *Tensor) bytes() []byte {
	flatV := reflect.ValueOf(t.flat)
	if flatV.Len() == 0 {
		return nil
	}
	element0 := flatV.Index(0)
	flatValuesPtr := element0.Addr().UnsafePointer()
	sizeBytes := uintptr(flatV.Len()) * element0.Type().Size()
	return unsafe.Slice((*byte)(flatValuesPtr), sizeBytes)
}

// Clone returns a deep copy of the Tensor.
func (t *Tensor) Clone() *Tensor {
	t2 := FromShape(t.shape)
	t2.MutableBytes(func(dst []byte) {
		t.ConstBytes(func(src []byte) {
			copy(dst, src)
		})
	})
	return t2
}

// CopyFrom overwrites the Tensor's content with other's. The shapes must be equal.
func (t *Tensor) CopyFrom(other *Tensor) error {
	if !t.shape.Equal(other.shape) {
		return errors.Errorf("Tensor.CopyFrom: shapes differ, %s vs %s", t.shape, other.shape)
	}
	t.MutableBytes(func(dst []byte) {
		other.ConstBytes(func(src []byte) {
			copy(dst, src)
		})
	})
	return nil
}

// Equal reports whether the two tensors have the same shape and bit-identical
// content. Notice NaNs compare unequal to themselves under normal float
// comparison, but here the comparison is bitwise.
func (t *Tensor) Equal(other *Tensor) bool {
	if other == nil || !t.shape.Equal(other.shape) {
		return false
	}
	equal := true
	t.ConstBytes(func(a []byte) {
		other.ConstBytes(func(b []byte) {
			if len(a) != len(b) {
				equal = false
				return
			}
			for i := range a {
				if a[i] != b[i] {
					equal = false
					return
				}
			}
		})
	})
	return equal
}

// MaxStringElements is the maximum number of elements Tensor.String prints
// before truncating.
const MaxStringElements = 16

// String pretty-prints the tensor's shape and content, truncated to
// MaxStringElements elements.
func (t *Tensor) String() string {
	var sb strings.Builder
	sb.WriteString(t.shape.String())
	sb.WriteString(": [")
	count := t.Size()
	truncated := false
	if count > MaxStringElements {
		count = MaxStringElements
		truncated = true
	}
	flatV := reflect.ValueOf(t.flat)
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		element := flatV.Index(i).Interface()
		// float16 has no native Go representation, print its float32 conversion.
		if f16, ok := element.(float16.Float16); ok {
			element = f16.Float32()
		}
		_, _ = fmt.Fprintf(&sb, "%v", element)
	}
	if truncated {
		sb.WriteString(" ...")
	}
	sb.WriteByte(']')
	return sb.String()
}
