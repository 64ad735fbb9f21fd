// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"math"
)

// exifType represents the basic tiff tag data types.
//
//go:generate stringer -type=exifType
type exifType uint16

const (
	exifTypeUnsignedByte  exifType = 1
	exifTypeASCII         exifType = 2
	exifTypeUnsignedShort exifType = 3
	exifTypeUnsignedLong  exifType = 4
	exifTypeUnsignedRat   exifType = 5
	exifTypeSignedByte    exifType = 6
	exifTypeUndef         exifType = 7
	exifTypeSignedShort   exifType = 8
	exifTypeSignedLong    exifType = 9
	exifTypeSignedRat     exifType = 10
	exifTypeFloat         exifType = 11
	exifTypeDouble        exifType = 12
)

// Size in bytes of each type.
var exifTypeSize = map[exifType]uint32{
	exifTypeUnsignedByte:  1,
	exifTypeASCII:         1,
	exifTypeUnsignedShort: 2,
	exifTypeUnsignedLong:  4,
	exifTypeUnsignedRat:   8,
	exifTypeSignedByte:    1,
	exifTypeUndef:         1,
	exifTypeSignedShort:   2,
	exifTypeSignedLong:    4,
	exifTypeSignedRat:     8,
	exifTypeFloat:         4,
	exifTypeDouble:        8,
}

// typeSize returns the element size of typ.
// Unknown types are treated as opaque bytes.
func typeSize(typ exifType) uint32 {
	if size, ok := exifTypeSize[typ]; ok {
		return size
	}
	return 1
}

// Rat is a rational number.
type Rat[T int32 | uint32] interface {
	Num() T
	Den() T
	Float64() float64

	// String returns the string representation of the rational number.
	// If the denominator is 1, the string will be the numerator only.
	String() string
}

var _ encoding.TextMarshaler = rat[int32]{}

// rat is a rational number as stored in the file, not normalized.
type rat[T int32 | uint32] struct {
	num T
	den T
}

// Num returns the numerator of the rational number.
func (r rat[T]) Num() T {
	return r.num
}

// Den returns the denominator of the rational number.
func (r rat[T]) Den() T {
	return r.den
}

// Float64 returns num/den. A zero denominator gives ±Inf or NaN.
func (r rat[T]) Float64() float64 {
	return float64(r.num) / float64(r.den)
}

// String returns the string representation of the rational number.
// If the denominator is 1, the string will be the numerator only.
func (r rat[T]) String() string {
	if r.den == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

func (r rat[T]) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}

// valueDecoder decodes IFD entry values.
type valueDecoder struct {
	c   *cursor
	hdr tiffHeader
}

// decode returns the value of e.
// If the value doesn't fit in the 4 value bytes, Raw holds an offset relative
// to the TIFF header and the value is read from there.
// All returned values are copies, nothing references the input buffer.
func (d *valueDecoder) decode(e IFDEntry) any {
	if e.Count == 0 {
		return nil
	}

	n := e.byteLen()

	var b []byte
	if n <= 4 {
		b = e.Raw[:n]
	} else {
		offset := d.hdr.byteOrder.Uint32(e.Raw[:])
		d.c.seek(d.hdr.pos + int(offset))
		if n > uint64(len(d.c.b)) {
			d.c.stop(fmt.Errorf("%w: tag 0x%04x value of %d bytes", ErrTruncated, e.Tag, n))
		}
		b = d.c.read(int(n))
	}

	return convertValues(d.hdr.byteOrder, exifType(e.Type), int(e.Count), b)
}

func convertValues(order binary.ByteOrder, typ exifType, count int, b []byte) any {
	switch typ {
	case exifTypeASCII:
		return decodeASCII(b)
	case exifTypeSignedByte:
		return values(count, 1, b, func(b []byte) int8 {
			return int8(b[0])
		})
	case exifTypeUnsignedShort:
		return values(count, 2, b, order.Uint16)
	case exifTypeSignedShort:
		return values(count, 2, b, func(b []byte) int16 {
			return int16(order.Uint16(b))
		})
	case exifTypeUnsignedLong:
		return values(count, 4, b, order.Uint32)
	case exifTypeSignedLong:
		return values(count, 4, b, func(b []byte) int32 {
			return toSigned32(order.Uint32(b))
		})
	case exifTypeUnsignedRat:
		return values(count, 8, b, func(b []byte) Rat[uint32] {
			return rat[uint32]{num: order.Uint32(b), den: order.Uint32(b[4:])}
		})
	case exifTypeSignedRat:
		return values(count, 8, b, func(b []byte) Rat[int32] {
			return rat[int32]{num: toSigned32(order.Uint32(b)), den: toSigned32(order.Uint32(b[4:]))}
		})
	case exifTypeFloat:
		return values(count, 4, b, func(b []byte) float32 {
			return math.Float32frombits(order.Uint32(b))
		})
	case exifTypeDouble:
		return values(count, 8, b, func(b []byte) float64 {
			return math.Float64frombits(order.Uint64(b))
		})
	default:
		// BYTE, UNDEFINED and unknown types.
		bb := make([]byte, len(b))
		copy(bb, b)
		return bb
	}
}

// values decodes count consecutive elements of size bytes each.
// A single element is returned as is, more as a slice.
func values[T any](count, size int, b []byte, f func([]byte) T) any {
	if count == 1 {
		return f(b[:size])
	}
	vals := make([]T, count)
	for i := range vals {
		vals[i] = f(b[i*size:])
	}
	return vals
}

// toSigned32 reinterprets x as two's complement.
func toSigned32(x uint32) int32 {
	return int32(x)
}
