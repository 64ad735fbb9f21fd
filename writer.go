// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeOptions contains the options for the Encode function.
type EncodeOptions struct {
	// Orientation to keep. If not valid, or if StripAll is set,
	// the Exif segment is removed completely.
	Orientation Orientation

	// StripAll removes the Exif segment completely.
	StripAll bool

	// InitialCapacity of the output buffer.
	// Default value is the input length plus room for the orientation segment.
	InitialCapacity int

	// GrowthChunk is the extra space added when the output buffer is reallocated.
	// Default value is 64 KiB.
	GrowthChunk int
}

// Encode returns a copy of the JPEG in b where the first Exif APP1 segment is
// either removed or replaced by a segment holding only the orientation tag.
// Every other segment and all data from SOS onwards is copied unchanged.
func Encode(b []byte, opts EncodeOptions) (out []byte, err error) {
	if opts.InitialCapacity <= 0 {
		opts.InitialCapacity = len(b) + 64
	}
	if opts.GrowthChunk <= 0 {
		opts.GrowthChunk = defaultGrowthChunk
	}

	c := newCursor(b)

	defer func() {
		if err2 := c.recoverErr(recover()); err2 != nil {
			out, err = nil, err2
		}
	}()

	w := &exifWriter{
		c:    c,
		sink: newByteSink(opts.InitialCapacity, opts.GrowthChunk),
		opts: opts,
	}
	w.write()

	return w.sink.bytes(), nil
}

type exifWriter struct {
	c    *cursor
	sink *byteSink
	opts EncodeOptions

	exifDone bool
}

func (w *exifWriter) write() {
	if soi := w.c.read2(); soi != markerSOI {
		w.c.stop(fmt.Errorf("%w: got 0x%04x, expected SOI", ErrNotJPEG, soi))
	}
	w.sink.writeWord(binary.BigEndian, markerSOI)

	for {
		start := w.c.pos
		marker := w.c.read2()

		if marker == markerEOI {
			w.sink.write(w.c.b[start:w.c.pos])
			return
		}

		length := w.c.read2()
		if length < 2 {
			w.c.stop(fmt.Errorf("%w: segment 0x%04x has length %d", ErrTruncated, marker, length))
		}
		body := w.c.read(int(length) - 2)

		if marker == markerSOS {
			// Copy the rest verbatim, scan data included.
			w.sink.write(w.c.b[start:])
			return
		}

		if marker == markerApp1 && !w.exifDone && bytes.HasPrefix(body, exifSignature) {
			w.exifDone = true
			if !w.opts.StripAll && w.opts.Orientation.IsValid() {
				w.writeOrientationSegment()
			}
			continue
		}

		w.sink.write(w.c.b[start:w.c.pos])
	}
}

// writeOrientationSegment writes an APP1 segment with a big endian TIFF block
// holding a single IFD0 entry: Orientation, SHORT, count 1.
func (w *exifWriter) writeOrientationSegment() {
	const (
		headerLen = 8                    // Byte order, magic, IFD0 offset.
		ifdLen    = 2 + ifdEntrySize + 4 // Count, one entry, next IFD offset.
		length    = 2 + 6 + headerLen + ifdLen
	)

	be := binary.BigEndian
	s := w.sink

	s.writeWord(be, markerApp1)
	s.writeWord(be, length)
	s.write(exifSignature)

	// Byte order mark.
	s.writeByte('M')
	s.writeByte('M')
	s.writeWord(be, tiffMagic)
	s.writeDword(be, headerLen)

	s.writeWord(be, 1)
	s.writeWord(be, tagOrientation)
	s.writeWord(be, uint16(exifTypeUnsignedShort))
	s.writeDword(be, 1)
	s.writeWord(be, uint16(w.opts.Orientation))
	s.writeWord(be, 0)

	s.writeDword(be, 0)
}
