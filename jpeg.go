// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// JPEG markers and lengths are always big endian.
const (
	markerSOI  = 0xffd8 // Start Of Image.
	markerEOI  = 0xffd9 // End Of Image.
	markerSOS  = 0xffda // Start Of Scan.
	markerSOF0 = 0xffc0 // Start Of Frame (Baseline Sequential).
	markerSOF2 = 0xffc2 // Start Of Frame (Progressive).
	markerApp1 = 0xffe1
)

var exifSignature = []byte("Exif\x00\x00")

// exifBlock is the decoded structure of the Exif APP1 segment.
type exifBlock struct {
	hdr    tiffHeader
	chains IFDChains
}

type jpegScanner struct {
	c    *cursor
	opts *Options

	width  int
	height int
	exif   *exifBlock
}

func (s *jpegScanner) scan() {
	if soi := s.c.read2(); soi != markerSOI {
		s.c.stop(fmt.Errorf("%w: got 0x%04x, expected SOI", ErrNotJPEG, soi))
	}

	for {
		marker := s.c.read2()
		skip, done := s.segment(marker)
		if skip > 0 {
			s.c.skip(skip)
		}
		if done {
			// Everything after SOS is scan data.
			return
		}
	}
}

// segment handles one marker segment with the cursor positioned at its length field.
// It returns the number of bytes to skip past the length field and
// whether the scan is done.
func (s *jpegScanner) segment(marker uint16) (skip int, done bool) {
	switch marker {
	case markerEOI:
		return 0, true
	case markerSOF0, markerSOF2:
		s.readFrameSize()
	case markerApp1:
		s.readApp1()
	}

	length := s.c.read2()
	if length < 2 {
		s.c.stop(fmt.Errorf("%w: segment 0x%04x has length %d", ErrTruncated, marker, length))
	}

	return int(length) - 2, marker == markerSOS
}

// readFrameSize peeks at the frame header without moving the cursor.
func (s *jpegScanner) readFrameSize() {
	s.c.preservePos(func() {
		// Length and sample precision.
		s.c.skip(3)
		s.height = int(s.c.read2())
		s.width = int(s.c.read2())
	})
}

// readApp1 decodes the first Exif APP1 segment without moving the cursor.
func (s *jpegScanner) readApp1() {
	s.c.preservePos(func() {
		length := s.c.read2()
		if int(length) < 2+len(exifSignature) {
			return
		}
		if !bytes.Equal(s.c.read(len(exifSignature)), exifSignature) {
			return
		}
		if s.exif != nil {
			s.opts.Warnf("ignoring Exif APP1 segment at offset %d", s.c.pos-len(exifSignature)-4)
			return
		}
		s.exif = s.readExif()
	})
}

func (s *jpegScanner) readExif() *exifBlock {
	defer func() {
		s.c.byteOrder = binary.BigEndian
	}()

	hdr := readTIFFHeader(s.c, s.opts.StrictByteOrder)
	w := &ifdWalker{c: s.c, hdr: hdr, opts: s.opts}

	return &exifBlock{
		hdr:    hdr,
		chains: w.walkAll(),
	}
}
