// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

// Helpers to build JPEG images with an Exif block in tests.
// They're exported so the external test package can use them.

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

type TestRational struct{ Num, Den uint32 }

type TestSRational struct{ Num, Den int32 }

// TestField is an IFD entry to write.
type TestField struct {
	Tag uint16
	// Type and Count are derived from Value if not set.
	Type  uint16
	Count uint32
	// Value is one of []uint16, []uint32, []int32, string, []TestRational, []TestSRational or []byte.
	Value any
}

// TestEXIF describes a TIFF block.
// Pointers to the Exif and GPS IFDs are appended to IFD0 when needed.
type TestEXIF struct {
	Order binary.ByteOrder

	IFD0 []TestField
	IFD1 []TestField
	Exif []TestField
	GPS  []TestField

	// Overrides for the header, used to test invalid input.
	ByteOrderMark uint16
	Magic         uint16
}

func ifdSize(n int) int {
	return 2 + n*ifdEntrySize + 4
}

// TIFF returns the TIFF block, header included.
func (x TestEXIF) TIFF() []byte {
	order := x.Order
	if order == nil {
		order = binary.BigEndian
	}

	ifd0 := append([]TestField(nil), x.IFD0...)
	var exifPtr, gpsPtr int = -1, -1
	if len(x.Exif) > 0 {
		exifPtr = len(ifd0)
		ifd0 = append(ifd0, TestField{Tag: tagExifIFDPointer})
	}
	if len(x.GPS) > 0 {
		gpsPtr = len(ifd0)
		ifd0 = append(ifd0, TestField{Tag: tagGPSIFDPointer})
	}

	pos := 8
	ifd0Offset := pos
	pos += ifdSize(len(ifd0))
	ifd1Offset := 0
	if len(x.IFD1) > 0 {
		ifd1Offset = pos
		pos += ifdSize(len(x.IFD1))
	}
	exifOffset := pos
	if len(x.Exif) > 0 {
		pos += ifdSize(len(x.Exif))
	}
	gpsOffset := pos
	if len(x.GPS) > 0 {
		pos += ifdSize(len(x.GPS))
	}
	dataOffset := pos

	if exifPtr >= 0 {
		ifd0[exifPtr].Value = []uint32{uint32(exifOffset)}
	}
	if gpsPtr >= 0 {
		ifd0[gpsPtr].Value = []uint32{uint32(gpsOffset)}
	}

	var (
		head bytes.Buffer
		data bytes.Buffer
	)

	word := func(v uint16) {
		b := make([]byte, 2)
		order.PutUint16(b, v)
		head.Write(b)
	}
	dword := func(v uint32) {
		b := make([]byte, 4)
		order.PutUint32(b, v)
		head.Write(b)
	}

	mark := uint16(byteOrderLittleEndian)
	if order == binary.BigEndian {
		mark = byteOrderBigEndian
	}
	if x.ByteOrderMark != 0 {
		mark = x.ByteOrderMark
	}
	magic := uint16(tiffMagic)
	if x.Magic != 0 {
		magic = x.Magic
	}
	head.Write([]byte{byte(mark >> 8), byte(mark)})
	word(magic)
	dword(uint32(ifd0Offset))

	writeIFD := func(fields []TestField, next int) {
		word(uint16(len(fields)))
		for _, f := range fields {
			typ, count, b := encodeTestValue(order.(binary.AppendByteOrder), f)
			word(f.Tag)
			word(typ)
			dword(count)
			if len(b) <= 4 {
				head.Write(append(b, make([]byte, 4-len(b))...))
			} else {
				dword(uint32(dataOffset + data.Len()))
				data.Write(b)
			}
		}
		dword(uint32(next))
	}

	writeIFD(ifd0, ifd1Offset)
	if len(x.IFD1) > 0 {
		writeIFD(x.IFD1, 0)
	}
	if len(x.Exif) > 0 {
		writeIFD(x.Exif, 0)
	}
	if len(x.GPS) > 0 {
		writeIFD(x.GPS, 0)
	}

	return append(head.Bytes(), data.Bytes()...)
}

func encodeTestValue(order binary.AppendByteOrder, f TestField) (typ uint16, count uint32, b []byte) {
	switch v := f.Value.(type) {
	case []uint16:
		typ = uint16(exifTypeUnsignedShort)
		for _, n := range v {
			b = order.AppendUint16(b, n)
		}
	case []uint32:
		typ = uint16(exifTypeUnsignedLong)
		for _, n := range v {
			b = order.AppendUint32(b, n)
		}
	case []int32:
		typ = uint16(exifTypeSignedLong)
		for _, n := range v {
			b = order.AppendUint32(b, uint32(n))
		}
	case string:
		typ = uint16(exifTypeASCII)
		b = append([]byte(v), 0)
	case []TestRational:
		typ = uint16(exifTypeUnsignedRat)
		for _, r := range v {
			b = order.AppendUint32(b, r.Num)
			b = order.AppendUint32(b, r.Den)
		}
	case []TestSRational:
		typ = uint16(exifTypeSignedRat)
		for _, r := range v {
			b = order.AppendUint32(b, uint32(r.Num))
			b = order.AppendUint32(b, uint32(r.Den))
		}
	case []byte:
		typ = uint16(exifTypeUndef)
		b = append(b, v...)
	default:
		panic("unsupported test value")
	}

	if f.Type != 0 {
		typ = f.Type
	}
	count = uint32(len(b)) / typeSize(exifType(typ))
	if f.Count != 0 {
		count = f.Count
	}
	return
}

// BuildSegment returns a JPEG marker segment.
func BuildSegment(marker uint16, payload []byte) []byte {
	b := binary.BigEndian.AppendUint16(nil, marker)
	b = binary.BigEndian.AppendUint16(b, uint16(len(payload)+2))
	return append(b, payload...)
}

// BuildEXIFSegment returns an APP1 segment holding x.
func BuildEXIFSegment(x TestEXIF) []byte {
	return BuildSegment(markerApp1, append(append([]byte(nil), exifSignature...), x.TIFF()...))
}

// BuildJPEG encodes a width x height image and inserts segments right after SOI.
func BuildJPEG(t testing.TB, width, height int, segments ...[]byte) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8(x ^ y), A: 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 75}); err != nil {
		t.Fatal(err)
	}

	b := buf.Bytes()
	out := append([]byte(nil), b[:2]...)
	for _, s := range segments {
		out = append(out, s...)
	}
	return append(out, b[2:]...)
}

// SOSOffset returns the offset of the first SOS marker in the encoded image b.
func SOSOffset(t testing.TB, b []byte) int {
	t.Helper()
	pos := 2
	for pos+4 <= len(b) {
		marker := binary.BigEndian.Uint16(b[pos:])
		if marker == markerSOS {
			return pos
		}
		pos += 2 + int(binary.BigEndian.Uint16(b[pos+2:]))
	}
	t.Fatal("no SOS marker found")
	return -1
}

// SampleEXIF returns a TIFF block with fields in all IFDs.
func SampleEXIF(order binary.ByteOrder) TestEXIF {
	return TestEXIF{
		Order: order,
		IFD0: []TestField{
			{Tag: 0x010f, Value: "Canon"},
			{Tag: 0x0110, Value: "Canon EOS 5D"},
			{Tag: tagOrientation, Value: []uint16{6}},
			{Tag: 0x011a, Value: []TestRational{{72, 1}}},
			{Tag: 0x011b, Value: []TestRational{{72, 1}}},
			{Tag: 0x0128, Value: []uint16{2}},
			{Tag: 0x0132, Value: "2017:10:27 08:15:43"},
			{Tag: 0x8298, Value: "Bjorn Erik Pedersen"},
		},
		IFD1: []TestField{
			{Tag: 0x0103, Value: []uint16{6}},
		},
		Exif: []TestField{
			{Tag: 0x829a, Value: []TestRational{{1, 200}}},
			{Tag: 0x829d, Value: []TestRational{{56, 10}}},
			{Tag: 0x8827, Value: []uint16{400}},
			{Tag: 0x9000, Value: []byte("0230")},
			{Tag: 0x9003, Value: "2017:10:27 08:15:43"},
			{Tag: 0x9201, Value: []TestSRational{{7643856, 1000000}}},
			{Tag: 0x9204, Value: []TestSRational{{-1, 3}}},
			{Tag: 0x9207, Value: []uint16{5}},
			{Tag: 0x9209, Value: []uint16{0x19}},
			{Tag: 0x920a, Value: []TestRational{{21, 1}}},
			{Tag: 0xa001, Value: []uint16{1}},
			{Tag: 0xa002, Value: []uint32{64}},
			{Tag: 0xa405, Value: []uint16{0}},
			{Tag: 0xa420, Value: "abc"},
		},
		GPS: []TestField{
			{Tag: tagGPSLatitudeRef, Value: "N"},
			{Tag: tagGPSLatitude, Value: []TestRational{{35, 1}, {30, 1}, {3, 2}}},
			{Tag: tagGPSLongitudeRef, Value: "E"},
			{Tag: tagGPSLongitude, Value: []TestRational{{139, 1}, {45, 1}, {0, 1}}},
			{Tag: 0x0006, Value: []TestRational{{1234, 10}}},
			{Tag: 0x0007, Value: []TestRational{{8, 1}, {15, 1}, {43, 1}}},
			{Tag: 0x001d, Value: "2017:10:27"},
		},
	}
}
