// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

import "encoding/binary"

const (
	defaultGrowthChunk = 64 * 1024
	minGrowthChunk     = 16
)

// byteSink is an append only output buffer.
// When an append doesn't fit, the buffer is reallocated to
// size + append length + growthChunk and the existing bytes are copied forward.
type byteSink struct {
	buf         []byte // len(buf) is the capacity.
	size        int
	growthChunk int
}

func newByteSink(initialCapacity, growthChunk int) *byteSink {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	if growthChunk < minGrowthChunk {
		growthChunk = minGrowthChunk
	}
	return &byteSink{
		buf:         make([]byte, initialCapacity),
		growthChunk: growthChunk,
	}
}

func (s *byteSink) grow(n int) {
	if s.size+n <= len(s.buf) {
		return
	}
	b := make([]byte, s.size+n+s.growthChunk)
	copy(b, s.buf[:s.size])
	s.buf = b
}

func (s *byteSink) write(p []byte) {
	s.grow(len(p))
	copy(s.buf[s.size:], p)
	s.size += len(p)
}

func (s *byteSink) writeByte(v byte) {
	s.grow(1)
	s.buf[s.size] = v
	s.size++
}

func (s *byteSink) writeWord(order binary.ByteOrder, v uint16) {
	s.grow(2)
	order.PutUint16(s.buf[s.size:], v)
	s.size += 2
}

func (s *byteSink) writeDword(order binary.ByteOrder, v uint32) {
	s.grow(4)
	order.PutUint32(s.buf[s.size:], v)
	s.size += 4
}

// bytes returns the written bytes.
func (s *byteSink) bytes() []byte {
	return s.buf[:s.size:s.size]
}
