// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package streamjson implements a streaming, suspendable JSON decoder
// driver modeled on wuffs_aux::DecodeJson: given a pull-based Input and a
// set of Callbacks, it parses one JSON value into a semantic event stream,
// optionally navigating to a subtree first via a JSON Pointer (RFC 6901).
package streamjson

import (
	"github.com/willoughbyrm/streamjson/internal/tokenizer"
	"github.com/willoughbyrm/streamjson/internal/wire"
)

const fallbackByteWindowCapacity = 4096
const tokenWindowCapacity = 256

// context is the driver's per-call state.
type context struct {
	ib  *wire.ByteWindow
	tb  *wire.TokenWindow
	dec *tokenizer.Decoder

	input Input

	// cursorIndex mirrors ByteWindow.ri but is maintained separately: the
	// low-level decoder advances ri eagerly as it emits tokens, while the
	// driver consumes them one at a time.
	cursorIndex    int
	ioErrorMessage string
	status         wire.Status

	depth int

	scratch []byte // accumulates string fragments across continued tokens
}

// DecodeJson is the package's entry point.
func DecodeJson(callbacks Callbacks, input Input, quirks []uint32, jsonPointer string) DecodeJsonResult {
	c := &context{input: input, dec: tokenizer.NewDecoder(), status: wire.StatusOK}

	if ib := input.BringsItsOwnIOBuffer(); ib != nil {
		c.ib = ib
	} else {
		c.ib = wire.NewByteWindow(fallbackByteWindowCapacity)
	}
	c.tb = wire.NewTokenWindow(tokenWindowCapacity)

	for _, q := range quirks {
		c.dec.SetQuirkEnabled(q, true)
	}

	if msg := c.walkPointer(jsonPointer); msg != "" {
		return c.finish(callbacks, msg)
	}

	msg := c.runEventLoop(callbacks)
	return c.finish(callbacks, msg)
}

func (c *context) finish(callbacks Callbacks, errMessage string) DecodeJsonResult {
	result := DecodeJsonResult{
		ErrorMessage:   errMessage,
		CursorPosition: wire.SatAdd(c.ib.Pos, uint64(c.cursorIndex)),
	}
	callbacks.Done(result, c.input, c.ib)
	return result
}

// nextToken is the Refill Loop: it returns the next token plus the exact
// source bytes that produced it, transparently handling decoder
// suspension. A non-empty returned message is terminal.
func (c *context) nextToken() (wire.Token, []byte, string) {
	for c.tb.Empty() {
		switch c.status {
		case wire.StatusOK:
			// Either the initial call, or the decoder just completed a
			// prior pass; either way, proceed straight to re-invoking it.
		case wire.StatusShortWrite:
			c.tb.Compact()
		case wire.StatusShortRead:
			if c.ioErrorMessage != "" {
				return wire.Token{}, nil, c.ioErrorMessage
			}
			if c.cursorIndex != c.ib.RI {
				return wire.Token{}, nil, "internal error: cursor_index != ByteWindow.ri"
			}
			if c.ib.Closed {
				return wire.Token{}, nil, "internal error: io_buf is closed"
			}
			c.ib.Compact()
			c.cursorIndex = 0
			if c.ib.WI >= len(c.ib.Data) {
				return wire.Token{}, nil, "internal error: io_buf is full"
			}
			c.ioErrorMessage = c.input.CopyIn(c.ib)
		default:
			return wire.Token{}, nil, "internal error: unknown decoder status"
		}

		status, msg := c.dec.DecodeTokens(c.tb, c.ib)
		c.status = status
		if msg != "" {
			return wire.Token{}, nil, msg
		}
	}

	tok := c.tb.Data[c.tb.RI]
	c.tb.RI++
	if c.ib.RI < c.cursorIndex+tok.Length {
		return wire.Token{}, nil, "internal error: token extends past consumed bytes"
	}
	tokenBytes := c.ib.Data[c.cursorIndex : c.cursorIndex+tok.Length]
	c.cursorIndex += tok.Length
	return tok, tokenBytes, ""
}

// unreadToken implements peek-by-rewind: it is only valid immediately
// after the most recent nextToken call returned tok, before any further
// token has been consumed.
func (c *context) unreadToken(tok wire.Token) {
	c.tb.RI--
	c.cursorIndex -= tok.Length
}

// assembleString accumulates one run of String/UnicodeCodePoint tokens
// into c.scratch following each token's conversion-rule detail bits.
// first/firstSrc is the run's already-consumed opening token (every
// caller has to fetch one token via nextToken to learn its category
// before it can know it is looking at a string run at all); assembleString
// fetches the rest itself
// and returns once a token with Continued == false is applied. mustBeUTF8
// reports whether the terminal token carried CHAIN_MUST_BE_UTF_8, which
// selects AppendTextString vs AppendByteString at the call site.
func (c *context) assembleString(first wire.Token, firstSrc []byte) (mustBeUTF8 bool, errMsg string) {
	c.scratch = c.scratch[:0]
	tok, src := first, firstSrc
	for {
		done, mustUTF8, msg := c.applyStringToken(tok, src)
		if msg != "" {
			return false, msg
		}
		if done {
			return mustUTF8, ""
		}
		tok, src, msg = c.nextToken()
		if msg != "" {
			return false, msg
		}
	}
}

// applyStringToken folds one token of a string run into c.scratch.
func (c *context) applyStringToken(tok wire.Token, src []byte) (done, mustBeUTF8 bool, errMsg string) {
	switch tok.Category {
	case wire.String:
		switch {
		case tok.Detail&wire.StringConvertDrop != 0:
			// discard src
		case tok.Detail&wire.StringConvertCopy != 0:
			c.scratch = append(c.scratch, src...)
		case tok.Detail&wire.StringConvertBackslashX != 0:
			for i := 0; i+4 <= len(src); i += 4 {
				hi, ok1 := hexDigit(src[i+2])
				lo, ok2 := hexDigit(src[i+3])
				if !ok1 || !ok2 {
					return false, false, "internal error: malformed backslash-x token"
				}
				c.scratch = append(c.scratch, hi<<4|lo)
			}
		default:
			return false, false, "internal error: string token with no conversion rule"
		}
		if !tok.Continued {
			return true, tok.Detail&wire.StringChainMustBeUTF8 != 0, ""
		}
		return false, false, ""
	case wire.UnicodeCodePoint:
		var buf [4]byte
		n := encodeUTF8(buf[:], rune(tok.Detail))
		c.scratch = append(c.scratch, buf[:n]...)
		if !tok.Continued {
			return true, true, ""
		}
		return false, false, ""
	default:
		return false, false, "internal error: unexpected token in string"
	}
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

// encodeUTF8 writes the UTF-8 encoding of r into buf (which must have
// room for 4 bytes) and returns the number of bytes written.
func encodeUTF8(buf []byte, r rune) int {
	switch {
	case r < 0x80:
		buf[0] = byte(r)
		return 1
	case r < 0x800:
		buf[0] = 0xC0 | byte(r>>6)
		buf[1] = 0x80 | byte(r&0x3F)
		return 2
	case r < 0x10000:
		buf[0] = 0xE0 | byte(r>>12)
		buf[1] = 0x80 | byte((r>>6)&0x3F)
		buf[2] = 0x80 | byte(r&0x3F)
		return 3
	default:
		buf[0] = 0xF0 | byte(r>>18)
		buf[1] = 0x80 | byte((r>>12)&0x3F)
		buf[2] = 0x80 | byte((r>>6)&0x3F)
		buf[3] = 0x80 | byte(r&0x3F)
		return 4
	}
}
