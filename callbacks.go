// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import "github.com/willoughbyrm/streamjson/internal/wire"

// Callbacks is the capability set DecodeJson drives as it streams through a
// document. Every method that can fail returns a non-empty error string to
// request termination; the driver honors this after finishing the value in
// progress rather than unwinding mid-value.
//
// Embed DefaultCallbacks to get a sane AppendByteString/Done and override
// only what a particular use case cares about.
type Callbacks interface {
	Push(detail wire.VBD) string
	Pop(detail wire.VBD) string
	AppendNull() string
	AppendBool(b bool) string
	AppendI64(i int64) string
	AppendF64(f float64) string
	AppendTextString(s string) string
	AppendByteString(b []byte) string
	Done(result DecodeJsonResult, input Input, ib *wire.ByteWindow)
}

// rejectByteString is the sentinel message a decode that produces a byte
// string (via a quirk such as backslash-x) returns when the caller's
// Callbacks does not override AppendByteString: the default refuses
// non-UTF-8 string content unless the caller opts in.
const rejectByteString = "wuffs_aux::DecodeJson: unexpected JSON byte string"

// DefaultCallbacks supplies the two methods every real Callbacks
// implementation is allowed to inherit unmodified: a Done that does
// nothing, and an AppendByteString that rejects the value. Embed it and
// override Push/Pop/AppendNull/AppendBool/AppendI64/AppendF64/
// AppendTextString, which have no safe default.
type DefaultCallbacks struct{}

func (DefaultCallbacks) AppendByteString([]byte) string { return rejectByteString }

func (DefaultCallbacks) Done(DecodeJsonResult, Input, *wire.ByteWindow) {}

// Input is the pull-based byte source DecodeJson reads from.
type Input interface {
	// BringsItsOwnIOBuffer returns a ByteWindow the Input manages itself, or
	// nil if the driver should allocate and own the fallback buffer.
	BringsItsOwnIOBuffer() *wire.ByteWindow

	// CopyIn appends as many bytes as are currently available into ib's
	// free space (ib.Data[ib.WI:]), advancing ib.WI, and setting ib.Closed
	// once no further bytes will ever be produced. A non-empty return is a
	// terminal I/O error message.
	CopyIn(ib *wire.ByteWindow) string
}

// DecodeJsonResult is DecodeJson's return value.
type DecodeJsonResult struct {
	ErrorMessage   string
	CursorPosition uint64
}
