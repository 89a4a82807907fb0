// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package tokenizer implements the low-level JSON tokenizer that
// streamjson's driver treats as a black box: it consumes bytes from a
// wire.ByteWindow and emits wire.Token values into a wire.TokenWindow,
// suspending with wire.StatusShortRead or wire.StatusShortWrite rather than
// blocking. Its token classification (scanning digits, names, escapes) is
// restructured as an explicit pushdown automaton over byte windows instead
// of a blocking, rune-at-a-time reader.
package tokenizer

import (
	"fmt"

	"go4.org/mem"

	"github.com/willoughbyrm/streamjson/internal/wire"
)

type containerKind uint8

const (
	containerDict containerKind = iota
	containerList
)

// state names the position within a container's grammar.
type state uint8

const (
	stateExpectValue state = iota // first array element, or dict value after ':'
	stateExpectKeyOrClose         // dict: first key, or '}'
	stateExpectColon              // dict: after a key, before ':'
	stateExpectCommaOrClose       // after a value: ',' or the closer
	stateExpectKeyAfterComma      // dict: after ',': a key (or '}' with the trailing-comma quirk)
	stateExpectValueAfterComma    // list: after ',': a value (or ']' with the trailing-comma quirk)
)

type frame struct {
	kind  containerKind
	state state
}

// Decoder is the low-level tokenizer. A Decoder returned by NewDecoder is
// ready to use; it starts expecting a single top-level value.
type Decoder struct {
	quirks map[uint32]bool
	stack  []frame

	// inString and stringIsKey track a string scan in progress, so it can
	// resume correctly if DecodeTokens is re-entered mid-string.
	inString    bool
	stringIsKey bool

	// usedBackslashX records whether the string currently being scanned
	// contained any \xHH run, which disqualifies it from being reported as
	// UTF-8 text (the CHAIN_MUST_BE_UTF_8 bit) once it closes.
	usedBackslashX bool

	sawBOM bool
}

// NewDecoder allocates a Decoder. It mirrors wuffs_json__decoder::alloc(),
// which can fail with "out of memory"; in Go, allocation does not fail, so
// EventDriver never takes that branch, but the possibility is documented
// there for fidelity to the original.
func NewDecoder() *Decoder {
	return &Decoder{quirks: make(map[uint32]bool)}
}

// SetQuirkEnabled enables or disables a quirk by its numeric identifier.
// Unknown identifiers are silently ignored, matching wuffs_json__decoder.
func (d *Decoder) SetQuirkEnabled(quirk uint32, enabled bool) {
	if enabled {
		d.quirks[quirk] = true
	} else {
		delete(d.quirks, quirk)
	}
}

func (d *Decoder) quirk(id uint32) bool { return d.quirks[id] }

// DecodeTokens is the resumable entry point the driver's Refill Loop calls.
// It appends as many tokens as it can to tb given the bytes currently
// available in ib, and reports why it stopped: wire.StatusShortWrite if tb
// became full, wire.StatusShortRead if ib ran out of unambiguous bytes, or
// a non-empty message for a terminal syntax error.
func (d *Decoder) DecodeTokens(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string) {
	for {
		if tb.WI >= len(tb.Data) {
			return wire.StatusShortWrite, ""
		}
		status, msg, ok := d.step(tb, ib)
		if msg != "" {
			return status, msg
		}
		if !ok {
			return wire.StatusShortRead, ""
		}
	}
}

// step performs one unit of work: skip filler, or scan and emit exactly one
// (possibly continued) token. It returns ok=false when the available bytes
// in ib are insufficient to make progress without suspending.
func (d *Decoder) step(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string, bool) {
	win := ib.Window()
	if len(win) == 0 {
		return wire.StatusShortRead, "", false
	}

	if d.inString {
		return d.continueString(tb, ib)
	}

	if !d.sawBOM {
		if d.quirk(wire.QuirkAllowLeadingUnicodeByteOrderMark) && len(win) < len(bom) && !ib.Closed && hasPrefix(bom, win) {
			// A partial BOM so far: wait for enough bytes to decide.
			return wire.StatusShortRead, "", false
		}
		d.sawBOM = true
		if d.quirk(wire.QuirkAllowLeadingUnicodeByteOrderMark) && hasPrefix(win, bom) {
			return d.emitFiller(tb, ib, len(bom)), "", true
		}
	}

	b := win[0]
	switch {
	case isSpace(b):
		return d.emitFiller(tb, ib, 1), "", true

	case b == ',' || b == ':':
		return d.consumeDelimiter(tb, ib, b)

	case b == '{':
		return d.push(tb, ib, containerDict)
	case b == '[':
		return d.push(tb, ib, containerList)
	case b == '}':
		return d.pop(tb, ib, containerDict)
	case b == ']':
		return d.pop(tb, ib, containerList)

	case b == '"':
		return d.scanString(tb, ib)

	case b == '/' && (d.quirk(wire.QuirkAllowCommentBlock) || d.quirk(wire.QuirkAllowCommentLine)):
		return d.scanComment(tb, ib)

	case b == '-' || isDigit(b):
		return d.scanNumber(tb, ib)

	case b == 't' || b == 'f' || b == 'n':
		return d.scanLiteral(tb, ib)

	case b == 'I' && d.quirk(wire.QuirkAllowInfNaN):
		return d.scanSpecialNumber(tb, ib, "Infinity", wire.NumberContentPosInf)
	case b == 'N' && d.quirk(wire.QuirkAllowInfNaN):
		return d.scanSpecialNumber(tb, ib, "NaN", wire.NumberContentPosNaN)

	default:
		return 0, fmt.Sprintf("streamjson: unexpected byte %q", b), true
	}
}

var bom = []byte{0xEF, 0xBB, 0xBF}

func hasPrefix(b, prefix []byte) bool {
	return len(b) >= len(prefix) && mem.B(b[:len(prefix)]).Equal(mem.B(prefix))
}

// matchesOrShortRead compares win against lit. If win is a proper prefix of
// lit, needMore is true (ambiguous without more bytes). Otherwise matched
// reports whether win begins with the complete literal.
func matchesOrShortRead(win []byte, lit string) (matched, needMore bool) {
	n := len(lit)
	if len(win) < n {
		return false, mem.B(win).Equal(mem.S(lit[:len(win)]))
	}
	return mem.B(win[:n]).Equal(mem.S(lit)), false
}

// emitFiller commits n bytes from ib as a single Filler token.
func (d *Decoder) emitFiller(tb *wire.TokenWindow, ib *wire.ByteWindow, n int) wire.Status {
	d.put(tb, wire.Token{Length: n, Category: wire.Filler})
	ib.RI += n
	return wire.StatusOK
}

func (d *Decoder) put(tb *wire.TokenWindow, t wire.Token) {
	tb.Data[tb.WI] = t
	tb.WI++
}

// top returns the innermost container frame, or nil at the top level.
func (d *Decoder) top() *frame {
	if len(d.stack) == 0 {
		return nil
	}
	return &d.stack[len(d.stack)-1]
}

