// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package wire defines the buffers and token shapes shared between the
// streamjson driver and the low-level tokenizer. It exists so that the two
// sides of that boundary can agree on a wire format without importing each
// other.
package wire

// ByteWindow is a fixed-capacity sliding window over a byte stream: a write
// index, a read index, and a stream-relative base position, following the
// layout of wuffs_base__io_buffer. Bytes in data[ri:wi] are valid and not
// yet consumed; bytes in data[:ri] have been consumed and may be discarded
// by Compact.
type ByteWindow struct {
	Data []byte
	WI   int // write index; invariant 0 <= RI <= WI <= len(Data)
	RI   int // read index
	Pos  uint64 // bytes discarded before Data[0], saturating
	Closed bool // no further pulls will produce bytes
}

// NewByteWindow allocates a ByteWindow with the given capacity.
func NewByteWindow(capacity int) *ByteWindow {
	return &ByteWindow{Data: make([]byte, capacity)}
}

// Window returns the unread portion of the buffer.
func (b *ByteWindow) Window() []byte { return b.Data[b.RI:b.WI] }

// Compact moves any written-but-unread bytes to the front of the buffer and
// advances Pos by the number of bytes discarded, saturating on overflow.
func (b *ByteWindow) Compact() {
	if b.RI == 0 {
		return
	}
	b.Pos = satAdd(b.Pos, uint64(b.RI))
	n := copy(b.Data, b.Data[b.RI:b.WI])
	b.WI = n
	b.RI = 0
}

// Position returns the stream-absolute offset of the read frontier.
func (b *ByteWindow) Position() uint64 { return satAdd(b.Pos, uint64(b.RI)) }

func satAdd(a, b uint64) uint64 {
	s := a + b
	if s < a { // overflow
		return ^uint64(0)
	}
	return s
}

// SatAdd is the saturating unsigned 64-bit addition used throughout the
// driver for cursor-position bookkeeping, matching
// wuffs_base__u64__sat_add.
func SatAdd(a, b uint64) uint64 { return satAdd(a, b) }
