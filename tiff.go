// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

import (
	"encoding/binary"
	"fmt"
)

const (
	byteOrderBigEndian    = 0x4d4d // MM
	byteOrderLittleEndian = 0x4949 // II
	tiffMagic             = 0x002a

	tagExifIFDPointer = 0x8769 // 34665
	tagGPSIFDPointer  = 0x8825 // 34853

	ifdEntrySize = 12
)

// IFDEntry is a single 12 byte field record of an Image File Directory.
type IFDEntry struct {
	Tag   uint16
	Type  uint16
	Count uint32

	// Raw holds the 4 value bytes as stored in the file.
	// They contain the value itself if it fits, otherwise an offset
	// relative to the start of the TIFF header.
	Raw [4]byte
}

// IFD is an Image File Directory with its entries in on-disk order.
type IFD []IFDEntry

// IFDChains holds the raw IFD chains of an Exif block.
type IFDChains struct {
	// Main is IFD0 followed by any linked IFDs (usually the thumbnail in IFD1).
	Main []IFD
	// Exif is the chain reached via the Exif IFD pointer in IFD0.
	Exif []IFD
	// GPS is the chain reached via the GPS IFD pointer in IFD0.
	GPS []IFD
}

// byteLen is the size in bytes of the entry's value.
func (e IFDEntry) byteLen() uint64 {
	return uint64(typeSize(exifType(e.Type))) * uint64(e.Count)
}

// inline reports whether the value is stored in Raw.
// This depends on the value size only, never on the tag.
func (e IFDEntry) inline() bool {
	return e.byteLen() <= 4
}

type tiffHeader struct {
	// Absolute offset of the header in the buffer.
	// All IFD and value offsets are relative to this.
	pos            int
	byteOrder      binary.ByteOrder
	firstIFDOffset uint32
}

// readTIFFHeader reads the header at the current position and switches
// the cursor to the byte order it declares.
func readTIFFHeader(c *cursor, strict bool) tiffHeader {
	h := tiffHeader{pos: c.pos}

	// The byte order mark reads the same in either order.
	c.byteOrder = binary.BigEndian
	switch mark := c.read2(); mark {
	case byteOrderBigEndian:
		h.byteOrder = binary.BigEndian
	case byteOrderLittleEndian:
		h.byteOrder = binary.LittleEndian
	default:
		if strict {
			c.stop(fmt.Errorf("%w: byte order mark 0x%04x", ErrInvalidByteOrder, mark))
		}
		h.byteOrder = binary.LittleEndian
	}
	c.byteOrder = h.byteOrder

	if magic := c.read2(); magic != tiffMagic {
		c.stop(fmt.Errorf("%w: magic 0x%04x", ErrInvalidByteOrder, magic))
	}

	h.firstIFDOffset = c.read4()

	return h
}

type ifdWalker struct {
	c    *cursor
	hdr  tiffHeader
	opts *Options

	numTags uint32
}

// walk follows the IFD chain starting at offset (relative to the TIFF header)
// until a zero next offset.
func (w *ifdWalker) walk(namespace string, offset uint32) []IFD {
	var (
		chain   []IFD
		visited = make(map[uint32]bool)
	)

	for {
		if len(chain) >= w.opts.LimitNumIFDs {
			w.opts.Warnf("%s: more than %d linked IFDs, stopping", namespace, w.opts.LimitNumIFDs)
			return chain
		}
		if visited[offset] {
			w.opts.Warnf("%s: IFD at offset %d already visited, stopping", namespace, offset)
			return chain
		}
		visited[offset] = true

		w.c.seek(w.hdr.pos + int(offset))
		n := w.c.read2()

		// The entries and the next IFD offset must fit before any limit applies.
		if need := int(n)*ifdEntrySize + 4; need > len(w.c.b)-w.c.pos {
			w.c.stop(fmt.Errorf("%w: %s: IFD at offset %d declares %d entries", ErrTruncated, namespace, offset, n))
		}

		w.numTags += uint32(n)
		if w.numTags > w.opts.LimitNumTags {
			w.opts.Warnf("%s: more than %d tags, stopping", namespace, w.opts.LimitNumTags)
			return chain
		}

		ifd := make(IFD, n)
		for i := range ifd {
			ifd[i] = w.readEntry()
		}
		chain = append(chain, ifd)

		next := w.c.read4()
		if next == 0 {
			return chain
		}
		offset = next
	}
}

// A tag is represented in 12 bytes:
//   - 2 bytes for the tag ID
//   - 2 bytes for the data type
//   - 4 bytes for the number of data values of the specified type
//   - 4 bytes for the value itself, if it fits, otherwise for a pointer to another location where the data may be found.
func (w *ifdWalker) readEntry() IFDEntry {
	b := w.c.read(ifdEntrySize)
	order := w.hdr.byteOrder
	e := IFDEntry{
		Tag:   order.Uint16(b[0:2]),
		Type:  order.Uint16(b[2:4]),
		Count: order.Uint32(b[4:8]),
	}
	copy(e.Raw[:], b[8:12])
	return e
}

// walkAll walks IFD0 and the sub IFDs it points to.
func (w *ifdWalker) walkAll() IFDChains {
	var chains IFDChains
	chains.Main = w.walk("IFD0", w.hdr.firstIFDOffset)
	if len(chains.Main) == 0 {
		return chains
	}

	for _, e := range chains.Main[0] {
		switch e.Tag {
		case tagExifIFDPointer:
			if chains.Exif == nil {
				chains.Exif = w.walk(namespaceExif, w.hdr.byteOrder.Uint32(e.Raw[:]))
			}
		case tagGPSIFDPointer:
			if chains.GPS == nil {
				chains.GPS = w.walk(namespaceGPS, w.hdr.byteOrder.Uint32(e.Raw[:]))
			}
		}
	}

	return chains
}
