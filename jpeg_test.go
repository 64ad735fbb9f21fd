// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

import (
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"
)

func newTestScanner(b []byte) *jpegScanner {
	opts := &Options{LimitNumTags: 5000, LimitNumIFDs: 32, Warnf: func(string, ...any) {}}
	return &jpegScanner{c: newCursor(b), opts: opts}
}

func TestJPEGScanner(t *testing.T) {
	c := qt.New(t)

	c.Run("Frame size peek", func(c *qt.C) {
		// SOF0 length 17, precision 8, height 0x0102, width 0x0304.
		s := newTestScanner([]byte{0x00, 0x11, 0x08, 0x01, 0x02, 0x03, 0x04})
		s.readFrameSize()
		c.Assert(s.height, qt.Equals, 0x0102)
		c.Assert(s.width, qt.Equals, 0x0304)
		c.Assert(s.c.pos, qt.Equals, 0)
	})

	c.Run("Progressive", func(c *qt.C) {
		img := BuildJPEG(c, 24, 16)
		// Rewrite SOF0 to SOF2, the frame header layout is the same.
		for i := 2; i < SOSOffset(c, img); {
			marker := binary.BigEndian.Uint16(img[i:])
			if marker == markerSOF0 {
				img[i+1] = 0xc2
				break
			}
			i += 2 + int(binary.BigEndian.Uint16(img[i+2:]))
		}
		s := newTestScanner(img)
		s.scan()
		c.Assert(s.width, qt.Equals, 24)
		c.Assert(s.height, qt.Equals, 16)
	})

	c.Run("Non Exif APP1", func(c *qt.C) {
		xmp := BuildSegment(markerApp1, []byte("http://ns.adobe.com/xap/1.0/\x00<x/>"))
		short := BuildSegment(markerApp1, []byte("Ex"))
		s := newTestScanner(BuildJPEG(c, 8, 8, xmp, short))
		s.scan()
		c.Assert(s.exif, qt.IsNil)
	})

	c.Run("Second Exif APP1", func(c *qt.C) {
		first := SampleEXIF(binary.BigEndian)
		second := TestEXIF{IFD0: []TestField{{Tag: tagOrientation, Value: []uint16{3}}}}

		var warnings int
		s := newTestScanner(BuildJPEG(c, 8, 8, BuildEXIFSegment(first), BuildEXIFSegment(second)))
		s.opts.Warnf = func(string, ...any) { warnings++ }
		s.scan()

		c.Assert(s.exif, qt.IsNotNil)
		c.Assert(s.exif.chains.Main[0], qt.HasLen, 10)
		c.Assert(warnings, qt.Equals, 1)
		c.Assert(s.c.byteOrder, qt.Equals, binary.ByteOrder(binary.BigEndian))
	})

	c.Run("Scan stops at SOS", func(c *qt.C) {
		img := BuildJPEG(c, 8, 8)
		sos := SOSOffset(c, img)
		s := newTestScanner(img)
		s.scan()
		length := int(binary.BigEndian.Uint16(img[sos+2:]))
		c.Assert(s.c.pos, qt.Equals, sos+2+length)
	})

	c.Run("EOI", func(c *qt.C) {
		s := newTestScanner([]byte{0xff, 0xd8, 0xff, 0xd9})
		s.scan()
		c.Assert(s.c.pos, qt.Equals, 4)
		c.Assert(s.width, qt.Equals, 0)
	})
}
