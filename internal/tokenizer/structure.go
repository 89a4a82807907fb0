// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tokenizer

import (
	"fmt"

	"github.com/willoughbyrm/streamjson/internal/wire"
)

// checkValueStart reports a syntax error if a value may not begin here
// (e.g. a second value without an intervening comma).
func (d *Decoder) checkValueStart() (string, bool) {
	f := d.top()
	if f == nil {
		return "", true // a single top-level value is always allowed
	}
	switch f.state {
	case stateExpectValue, stateExpectValueAfterComma:
		return "", true
	case stateExpectKeyOrClose, stateExpectKeyAfterComma:
		return "streamjson: expected a string key", false
	default:
		return "streamjson: unexpected value", false
	}
}

// checkKeyStart reports a syntax error if a dict key may not begin here.
func (d *Decoder) checkKeyStart() (string, bool) {
	f := d.top()
	if f == nil || f.kind != containerDict {
		return "streamjson: unexpected string", false
	}
	switch f.state {
	case stateExpectKeyOrClose, stateExpectKeyAfterComma:
		return "", true
	default:
		return "streamjson: unexpected key", false
	}
}

func (d *Decoder) push(tb *wire.TokenWindow, ib *wire.ByteWindow, kind containerKind) (wire.Status, string, bool) {
	if msg, ok := d.checkValueStart(); !ok {
		return 0, msg, true
	}
	detail := wire.StructurePush
	initial := stateExpectKeyOrClose
	if kind == containerList {
		detail |= wire.StructureToList
		initial = stateExpectValue
	}
	d.put(tb, wire.Token{Length: 1, Category: wire.Structure, Detail: detail})
	ib.RI++
	d.stack = append(d.stack, frame{kind: kind, state: initial})
	return wire.StatusOK, "", true
}

func (d *Decoder) pop(tb *wire.TokenWindow, ib *wire.ByteWindow, kind containerKind) (wire.Status, string, bool) {
	f := d.top()
	if f == nil || f.kind != kind {
		return 0, fmt.Sprintf("streamjson: mismatched closing %q", closerByte(kind)), true
	}
	switch f.state {
	case stateExpectKeyOrClose, stateExpectValue, stateExpectCommaOrClose:
		// empty container, or a close right after a complete value; a dict
		// in stateExpectValue has a key and ':' still waiting for a value
		if f.state == stateExpectValue && kind == containerDict {
			return 0, fmt.Sprintf("streamjson: unexpected closing %q", closerByte(kind)), true
		}
	case stateExpectKeyAfterComma, stateExpectValueAfterComma:
		if !d.quirk(wire.QuirkAllowTrailingCommas) {
			return 0, "streamjson: trailing comma not allowed", true
		}
	default:
		return 0, fmt.Sprintf("streamjson: unexpected closing %q", closerByte(kind)), true
	}
	detail := wire.StructurePop
	if kind == containerList {
		detail |= wire.StructureToList
	}
	d.put(tb, wire.Token{Length: 1, Category: wire.Structure, Detail: detail})
	ib.RI++
	d.stack = d.stack[:len(d.stack)-1]
	d.afterValue()
	return wire.StatusOK, "", true
}

func closerByte(kind containerKind) byte {
	if kind == containerList {
		return ']'
	}
	return '}'
}

func (d *Decoder) consumeDelimiter(tb *wire.TokenWindow, ib *wire.ByteWindow, b byte) (wire.Status, string, bool) {
	f := d.top()
	if f == nil {
		return 0, fmt.Sprintf("streamjson: unexpected %q", b), true
	}
	if b == ':' {
		if f.kind != containerDict || f.state != stateExpectColon {
			return 0, "streamjson: unexpected ':'", true
		}
		f.state = stateExpectValue
	} else { // b == ','
		switch f.state {
		case stateExpectCommaOrClose:
			if f.kind == containerDict {
				f.state = stateExpectKeyAfterComma
			} else {
				f.state = stateExpectValueAfterComma
			}
		default:
			return 0, "streamjson: unexpected ','", true
		}
	}
	return d.emitFiller(tb, ib, 1), "", true
}

// afterValue transitions the innermost frame once a complete value (scalar
// or a fully closed nested container) has just been produced. At the top
// level (no frame) it is a no-op: the driver decides when a top-level value
// is complete by watching depth return to 0.
func (d *Decoder) afterValue() {
	f := d.top()
	if f == nil {
		return
	}
	f.state = stateExpectCommaOrClose
}

// afterKey transitions a dict frame once a key string has just been
// produced, to expect the separating colon.
func (d *Decoder) afterKey() {
	f := d.top()
	f.state = stateExpectColon
}
