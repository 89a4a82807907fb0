// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ioinput provides concrete streamjson.Input implementations: a
// plain io.Reader adapter, a fully-in-memory adapter that brings its own
// buffer, and a retrying decorator.
package ioinput

import (
	"io"

	"github.com/willoughbyrm/streamjson/internal/wire"
)

// ReaderInput wraps an io.Reader. It does not bring its own buffer, so
// DecodeJson allocates the fallback ByteWindow and CopyIn fills it a Read
// at a time.
type ReaderInput struct {
	R io.Reader
}

func (ReaderInput) BringsItsOwnIOBuffer() *wire.ByteWindow { return nil }

func (in ReaderInput) CopyIn(ib *wire.ByteWindow) string {
	if ib.WI >= len(ib.Data) {
		return "" // no room; the Refill Loop treats this as an internal error
	}
	n, err := in.R.Read(ib.Data[ib.WI:])
	ib.WI += n
	if err == io.EOF {
		ib.Closed = true
		return ""
	}
	if err != nil {
		ib.Closed = true
		return err.Error()
	}
	return ""
}

// BytesInput wraps a []byte that is already fully in memory. It brings
// its own pre-loaded, closed ByteWindow, so the driver never calls CopyIn
// on it at all, since ib.Closed is already true and ib.WI already covers
// the whole slice.
type BytesInput struct {
	ib *wire.ByteWindow
}

// NewBytesInput copies data into a new closed ByteWindow.
func NewBytesInput(data []byte) *BytesInput {
	ib := wire.NewByteWindow(len(data))
	ib.WI = copy(ib.Data, data)
	ib.Closed = true
	return &BytesInput{ib: ib}
}

func (in *BytesInput) BringsItsOwnIOBuffer() *wire.ByteWindow { return in.ib }

// CopyIn is never called by the Refill Loop once BringsItsOwnIOBuffer has
// returned a closed, fully-written buffer, but is implemented for
// completeness: there is nothing further to pull.
func (in *BytesInput) CopyIn(ib *wire.ByteWindow) string { return "" }
