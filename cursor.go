// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Internal error to signal that we should stop any further processing.
// The real cause is recorded on the cursor.
var errStop = fmt.Errorf("stop")

// cursor is a bounds checked, forward seekable view over an immutable byte slice.
// Note that this is not thread safe.
type cursor struct {
	b         []byte
	pos       int
	byteOrder binary.ByteOrder

	readErr error
}

func newCursor(b []byte) *cursor {
	return &cursor{
		b:         b,
		byteOrder: binary.BigEndian,
	}
}

// readE returns the next n bytes and advances the position by n.
// The returned slice shares memory with the underlying buffer and must not be modified.
func (c *cursor) readE(n int) ([]byte, error) {
	if n < 0 || c.pos < 0 || c.pos > len(c.b) || n > len(c.b)-c.pos {
		return nil, fmt.Errorf("%w: reading %d bytes at offset %d of %d", ErrTruncated, n, c.pos, len(c.b))
	}
	b := c.b[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) read(n int) []byte {
	b, err := c.readE(n)
	if err != nil {
		c.stop(err)
	}
	return b
}

func (c *cursor) read1() uint8 {
	return c.read(1)[0]
}

func (c *cursor) read2() uint16 {
	return c.byteOrder.Uint16(c.read(2))
}

func (c *cursor) read4() uint32 {
	return c.byteOrder.Uint32(c.read(4))
}

// readASCII reads n bytes and decodes them as a string.
// NUL bytes are kept.
func (c *cursor) readASCII(n int) string {
	return decodeASCII(c.read(n))
}

// preservePos runs f and restores the position afterwards.
func (c *cursor) preservePos(f func()) {
	pos := c.pos
	f()
	c.pos = pos
}

// seek sets the absolute position. It's not validated here,
// an out of range position fails on the next read.
func (c *cursor) seek(pos int) {
	c.pos = pos
}

// skip advances the position by n and stops if that leaves the buffer.
func (c *cursor) skip(n int) {
	c.pos += n
	if c.pos > len(c.b) {
		c.stop(fmt.Errorf("%w: skipping %d bytes to offset %d of %d", ErrTruncated, n, c.pos, len(c.b)))
	}
}

func (c *cursor) stop(err error) {
	if err != nil {
		c.readErr = err
	}
	panic(errStop)
}

// recoverErr converts a recovered panic value into an error.
func (c *cursor) recoverErr(r any) error {
	if r == nil {
		return nil
	}
	if r == errStop {
		if c.readErr != nil {
			return c.readErr
		}
		return ErrTruncated
	}
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("unknown panic: %v", r)
}

// The TIFF ASCII type is 7-bit, but files in the wild contain Latin-1.
// ISO-8859-1 maps every byte to the code point with the same value.
func decodeASCII(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
