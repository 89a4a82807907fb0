// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import (
	"errors"
	"math"
	"strconv"

	"github.com/willoughbyrm/streamjson/internal/wire"
)

// runEventLoop drives the Refill Loop and turns each token into a
// callback invocation, until a callback errors or the top-level value
// completes (depth returns to 0).
func (c *context) runEventLoop(callbacks Callbacks) string {
	for {
		tok, src, msg := c.nextToken()
		if msg != "" {
			return msg
		}

		var cbErr string
		completedValue := false

		switch tok.Category {
		case wire.Filler:
			continue

		case wire.Structure:
			if tok.Detail&wire.StructurePush != 0 {
				cbErr = callbacks.Push(tok.Detail)
				if cbErr == "" {
					c.depth++
				}
			} else {
				cbErr = callbacks.Pop(tok.Detail)
				c.depth--
				completedValue = true
			}

		case wire.String, wire.UnicodeCodePoint:
			mustUTF8, amsg := c.assembleString(tok, src)
			if amsg != "" {
				return amsg
			}
			if mustUTF8 {
				cbErr = callbacks.AppendTextString(string(c.scratch))
			} else {
				cbErr = callbacks.AppendByteString(c.scratch)
			}
			completedValue = true

		case wire.Literal:
			if tok.Detail&wire.LiteralNull != 0 {
				cbErr = callbacks.AppendNull()
			} else {
				cbErr = callbacks.AppendBool(tok.Detail&wire.LiteralTrue != 0)
			}
			completedValue = true

		case wire.Number:
			asI64, asF64, isInt, nmsg := decodeNumber(tok, src)
			if nmsg != "" {
				return nmsg
			}
			if isInt {
				cbErr = callbacks.AppendI64(asI64)
			} else {
				cbErr = callbacks.AppendF64(asF64)
			}
			completedValue = true

		default:
			return "internal error: unknown token category"
		}

		if cbErr != "" {
			return cbErr
		}
		if completedValue && c.depth == 0 {
			return ""
		}
	}
}

// decodeNumber turns a Number token plus its source bytes into either an
// int64 or a float64: with FORMAT_TEXT set, try parse_i64 first (for
// CONTENT_INTEGER_SIGNED), then fall through to parse_f64 — this also
// covers integers too large for int64; without FORMAT_TEXT, one of the
// four CONTENT_{NEG,POS}_{INF,NAN} bits selects a fixed IEEE-754 bit
// pattern fed to AppendF64, preserved verbatim rather than reconstructed
// from math.Inf/math.NaN.
func decodeNumber(tok wire.Token, src []byte) (asI64 int64, asF64 float64, isInt bool, errMsg string) {
	if tok.Detail&wire.NumberFormatText != 0 {
		text := string(src)
		if tok.Detail&wire.NumberContentIntegerSigned != 0 {
			if i, err := strconv.ParseInt(text, 10, 64); err == nil {
				return i, 0, true, ""
			}
		}
		f, err := strconv.ParseFloat(text, 64)
		// A magnitude too large for float64 still parses to ±Inf with
		// strconv.ErrRange; that result is the correct parse_f64 outcome
		// for an ordinary (non-quirk-literal) number, not a decode error.
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return 0, f, false, ""
		}
		return 0, 0, false, "internal error: unparseable number"
	}

	switch {
	case tok.Detail&wire.NumberContentNegInf != 0:
		return 0, math.Float64frombits(0xFFF0000000000000), false, ""
	case tok.Detail&wire.NumberContentPosInf != 0:
		return 0, math.Float64frombits(0x7FF0000000000000), false, ""
	case tok.Detail&wire.NumberContentNegNaN != 0:
		return 0, math.Float64frombits(0xFFFFFFFFFFFFFFFF), false, ""
	case tok.Detail&wire.NumberContentPosNaN != 0:
		return 0, math.Float64frombits(0x7FFFFFFFFFFFFFFF), false, ""
	default:
		return 0, 0, false, "internal error: number token with no recognized content"
	}
}
