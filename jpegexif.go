// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package jpegexif reads the Exif metadata of a JPEG image and rewrites
// the image with that metadata removed or reduced to the orientation tag.
// All other bytes of the image are preserved.
package jpegexif

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotJPEG is returned when the input doesn't start with a JPEG SOI marker.
	ErrNotJPEG = fmt.Errorf("jpegexif: not a JPEG")

	// ErrInvalidByteOrder is returned when the TIFF header of the Exif block is invalid.
	ErrInvalidByteOrder = fmt.Errorf("jpegexif: invalid TIFF byte order")

	// ErrTruncated is returned when a read or seek would go past the end of the input.
	ErrTruncated = fmt.Errorf("jpegexif: truncated")
)

// IsInvalidFormat reports whether err is caused by malformed input.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrNotJPEG) || errors.Is(err, ErrInvalidByteOrder) || errors.Is(err, ErrTruncated)
}

// Orientation is the Exif orientation code, 1 to 8.
// The zero value means that no valid orientation is set.
// Note that viewers differ in how they interpret the rotation direction
// of 6 and 8; the code is passed on as stored.
//
//go:generate stringer -type=Orientation
type Orientation uint16

const (
	OrientationUnspecified Orientation = iota
	OrientationNormal
	OrientationFlipH
	OrientationRotate180
	OrientationFlipV
	OrientationTranspose
	OrientationRotate270
	OrientationTransverse
	OrientationRotate90
)

// IsValid reports whether o is in the range 1 to 8.
func (o Orientation) IsValid() bool {
	return o >= OrientationNormal && o <= OrientationRotate90
}

// Options contains the options for the Decode function.
type Options struct {
	// If set, tags not known to this package are included in the
	// field lists with a name prefixed with UnknownPrefix.
	IncludeUnknown bool

	// If set, a TIFF byte order mark other than "MM" or "II" fails with ErrInvalidByteOrder.
	// By default any mark other than "MM" selects little endian.
	StrictByteOrder bool

	// Warnf will be called for each warning.
	Warnf func(string, ...any)

	// LimitNumTags is the maximum number of IFD entries to read.
	// Default value is 5000.
	LimitNumTags uint32

	// LimitNumIFDs is the maximum number of linked IFDs in one chain.
	// Default value is 32.
	LimitNumIFDs int
}

// Field is a decoded IFD field.
type Field struct {
	// The tag ID.
	ID uint16
	// The tag name, e.g. "Make".
	Tag string
	// The path to the IFD, e.g. "IFD0/GPSInfoIFD".
	Namespace string
	// The decoded value.
	Value any
	// The value formatted for display.
	Formatted string
}

// Metadata is the result of a Decode.
// It holds no references into the decoded buffer.
type Metadata struct {
	// Image dimensions from the frame header.
	Width  int
	Height int

	// HasEXIF is set if an Exif APP1 segment was found.
	HasEXIF bool
	// BigEndian is the byte order of the Exif TIFF block.
	BigEndian bool

	// Orientation is OrientationUnspecified if not set or invalid.
	Orientation Orientation

	// Fields from IFD0, the Exif IFD and the GPS IFD in on-disk order.
	Main   []Field
	Camera []Field
	GPS    []Field

	// DMS is the GPS position as e.g. 35°30'1.5"N139°45'0"E, or empty.
	DMS string

	// IFDs holds the raw IFD chains.
	IFDs IFDChains
}

// Decode reads the Exif metadata and dimensions from the JPEG in b.
// The buffer is not modified and may be released after Decode returns.
func Decode(b []byte, opts Options) (m *Metadata, err error) {
	const (
		defaultLimitNumTags = 5000
		defaultLimitNumIFDs = 32
	)

	if opts.LimitNumTags == 0 {
		opts.LimitNumTags = defaultLimitNumTags
	}
	if opts.LimitNumIFDs == 0 {
		opts.LimitNumIFDs = defaultLimitNumIFDs
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}

	c := newCursor(b)

	defer func() {
		if err2 := c.recoverErr(recover()); err2 != nil {
			m, err = nil, err2
		}
	}()

	s := &jpegScanner{c: c, opts: &opts}
	s.scan()

	return s.metadata(), nil
}

// DecodeReader reads all of r and decodes it.
func DecodeReader(r io.Reader, opts Options) (*Metadata, error) {
	if r == nil {
		return nil, fmt.Errorf("no reader provided")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(b, opts)
}

// Encode rewrites b, see the package function Encode, using m's orientation.
func (m *Metadata) Encode(b []byte, stripAll bool) ([]byte, error) {
	return Encode(b, EncodeOptions{Orientation: m.Orientation, StripAll: stripAll})
}
