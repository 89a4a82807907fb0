// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tokenizer

import (
	"github.com/willoughbyrm/streamjson/internal/wire"
)

// scanString begins a new string (key or value) at an opening quote.
func (d *Decoder) scanString(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string, bool) {
	isKey := false
	if f := d.top(); f != nil && f.kind == containerDict &&
		(f.state == stateExpectKeyOrClose || f.state == stateExpectKeyAfterComma) {
		isKey = true
	}
	if isKey {
		if msg, ok := d.checkKeyStart(); !ok {
			return 0, msg, true
		}
	} else if msg, ok := d.checkValueStart(); !ok {
		return 0, msg, true
	}
	d.put(tb, wire.Token{Length: 1, Category: wire.String, Detail: wire.StringConvertDrop, Continued: true})
	ib.RI++
	d.inString = true
	d.stringIsKey = isKey
	d.usedBackslashX = false
	return wire.StatusOK, "", true
}

// continueString resumes scanning the body of a string already opened by
// scanString. It is dispatched ahead of byte classification in step, since
// once inside a string every byte belongs to it until the closing quote.
func (d *Decoder) continueString(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string, bool) {
	win := ib.Window()
	i := 0
	for i < len(win) {
		c := win[i]
		if c == '"' {
			if i > 0 {
				// Emit the copied run on its own; the closing quote is
				// the next step's token, after DecodeTokens has checked
				// that tb still has room.
				d.put(tb, wire.Token{Length: i, Category: wire.String, Detail: wire.StringConvertCopy, Continued: true})
				ib.RI += i
				return wire.StatusOK, "", true
			}
			detail := wire.StringConvertDrop
			if !d.usedBackslashX {
				detail |= wire.StringChainMustBeUTF8
			}
			d.put(tb, wire.Token{Length: 1, Category: wire.String, Detail: detail})
			ib.RI++
			d.inString = false
			if d.stringIsKey {
				d.afterKey()
			} else {
				d.afterValue()
			}
			return wire.StatusOK, "", true
		}
		if c == '\\' {
			if i > 0 {
				d.put(tb, wire.Token{Length: i, Category: wire.String, Detail: wire.StringConvertCopy, Continued: true})
				ib.RI += i
				return wire.StatusOK, "", true
			}
			return d.scanEscape(tb, ib)
		}
		if c < 0x20 {
			return 0, "streamjson: unescaped control byte in string", true
		}
		i++
	}
	if i > 0 {
		d.put(tb, wire.Token{Length: i, Category: wire.String, Detail: wire.StringConvertCopy, Continued: true})
		ib.RI += i
	}
	return wire.StatusShortRead, "", false
}

// scanEscape handles a single backslash escape at the front of ib's window,
// which is known to start with '\\'. It either emits a UnicodeCodePoint
// token for a decoded scalar escape, or (with the backslash-x quirk) a run
// of \xHH groups as a single String/BACKSLASH_X token.
func (d *Decoder) scanEscape(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string, bool) {
	win := ib.Window()
	if len(win) < 2 {
		return wire.StatusShortRead, "", false
	}
	switch win[1] {
	case '"', '\\', '/':
		return d.emitCodePoint(tb, ib, rune(win[1]), 2), "", true
	case 'b':
		return d.emitCodePoint(tb, ib, '\b', 2), "", true
	case 'f':
		return d.emitCodePoint(tb, ib, '\f', 2), "", true
	case 'n':
		return d.emitCodePoint(tb, ib, '\n', 2), "", true
	case 'r':
		return d.emitCodePoint(tb, ib, '\r', 2), "", true
	case 't':
		return d.emitCodePoint(tb, ib, '\t', 2), "", true
	case 'u':
		return d.scanUnicodeEscape(tb, ib)
	case 'x':
		if d.quirk(wire.QuirkAllowBackslashX) {
			return d.scanBackslashXRun(tb, ib)
		}
		return 0, "streamjson: \\x escape not allowed", true
	default:
		return 0, "streamjson: invalid escape", true
	}
}

func (d *Decoder) emitCodePoint(tb *wire.TokenWindow, ib *wire.ByteWindow, r rune, n int) wire.Status {
	d.put(tb, wire.Token{Length: n, Category: wire.UnicodeCodePoint, Detail: wire.VBD(r), Continued: true})
	ib.RI += n
	return wire.StatusOK
}

// scanUnicodeEscape decodes a \uXXXX escape, combining it with an
// immediately following low surrogate \uYYYY into one astral code point
// when applicable. An unpaired surrogate is replaced by U+FFFD, matching
// internal/escape's treatment of malformed escapes.
func (d *Decoder) scanUnicodeEscape(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string, bool) {
	win := ib.Window()
	if len(win) < 6 {
		return wire.StatusShortRead, "", false
	}
	hi, ok := parseHex4(win[2:6])
	if !ok {
		return 0, "streamjson: invalid \\u escape", true
	}
	if hi < 0xD800 || hi > 0xDBFF {
		return d.emitCodePoint(tb, ib, rune(hi), 6), "", true
	}
	// High surrogate: look for an immediately following low surrogate.
	if len(win) < 12 {
		if !ib.Closed {
			return wire.StatusShortRead, "", false
		}
		// No more input can arrive, so no low surrogate can follow.
		return d.emitCodePoint(tb, ib, runeError, 6), "", true
	}
	if win[6] != '\\' || win[7] != 'u' {
		return d.emitCodePoint(tb, ib, runeError, 6), "", true
	}
	lo, ok := parseHex4(win[8:12])
	if !ok || lo < 0xDC00 || lo > 0xDFFF {
		return d.emitCodePoint(tb, ib, runeError, 6), "", true
	}
	r := rune(0x10000 + (hi-0xD800)<<10 + (lo - 0xDC00))
	return d.emitCodePoint(tb, ib, r, 12), "", true
}

const runeError = '�'

func parseHex4(b []byte) (rune, bool) {
	var v rune
	for _, c := range b {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v += rune(c - '0')
		case c >= 'a' && c <= 'f':
			v += rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v += rune(c-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}

// scanBackslashXRun consumes one or more consecutive \xHH groups, emitting
// them as a single String token whose source span the driver later decodes
// with base-16 under the CONVERT_1_DST_4_SRC_BACKSLASH_X conversion rule.
func (d *Decoder) scanBackslashXRun(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string, bool) {
	win := ib.Window()
	n := 0
	for n+4 <= len(win) && win[n] == '\\' && win[n+1] == 'x' && isHexDigit(win[n+2]) && isHexDigit(win[n+3]) {
		n += 4
	}
	if n == 0 {
		if len(win) < 4 {
			return wire.StatusShortRead, "", false
		}
		return 0, "streamjson: invalid \\x escape", true
	}
	d.usedBackslashX = true
	d.put(tb, wire.Token{Length: n, Category: wire.String, Detail: wire.StringConvertBackslashX, Continued: true})
	ib.RI += n
	return wire.StatusOK, "", true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
