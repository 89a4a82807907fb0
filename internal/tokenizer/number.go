// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tokenizer

import (
	"github.com/willoughbyrm/streamjson/internal/wire"
)

// scanNumber matches a JSON number, or (with the AllowInfNaN quirk) a
// leading -Infinity. Unlike strings, a number is never split across a
// Continued chain: scanNumber requires the whole span to already be
// present in ib's window, known complete either because a following
// non-number byte is already there or because ib.Closed rules out any
// more input arriving, and returns wire.StatusShortRead without
// consuming anything otherwise. This keeps the grammar check (extra
// leading zeroes, digits after '.', etc.) simple: it runs once, over a
// complete span.
func (d *Decoder) scanNumber(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string, bool) {
	win := ib.Window()

	if win[0] == '-' && d.quirk(wire.QuirkAllowInfNaN) {
		matched, needMore := matchesOrShortRead(win[1:], "Infinity")
		if needMore {
			return wire.StatusShortRead, "", false
		}
		if matched {
			if msg, ok := d.checkValueStart(); !ok {
				return 0, msg, true
			}
			n := 1 + len("Infinity")
			d.put(tb, wire.Token{Length: n, Category: wire.Number, Detail: wire.NumberContentNegInf})
			ib.RI += n
			d.afterValue()
			return wire.StatusOK, "", true
		}
	}

	n, terminated := numberSpan(win)
	if !terminated {
		if !ib.Closed {
			return wire.StatusShortRead, "", false
		}
		// No non-number byte ends the span, but the input is closed: this
		// is the last thing in the stream, so win in its entirety is the
		// whole number.
		n = len(win)
	}
	span := win[:n]
	isFloat, msg := validateNumber(span)
	if msg != "" {
		return 0, msg, true
	}
	if msg, ok := d.checkValueStart(); !ok {
		return 0, msg, true
	}
	detail := wire.NumberFormatText
	if isFloat {
		detail |= wire.NumberContentFloatingPoint
	} else {
		detail |= wire.NumberContentIntegerSigned
	}
	d.put(tb, wire.Token{Length: n, Category: wire.Number, Detail: detail})
	ib.RI += n
	d.afterValue()
	return wire.StatusOK, "", true
}

// numberSpan returns the length of the longest prefix of win made up of
// number-constituent bytes, and whether that prefix is known to be
// complete: true only once a non-constituent byte past it is actually in
// the window. If win is entirely number-constituent bytes, the number
// might still grow with more input, so terminated is false; the caller
// treats that span as complete anyway once ib.Closed rules out more
// input ever arriving.
func numberSpan(win []byte) (n int, terminated bool) {
	for n < len(win) && isNumberByte(win[n]) {
		n++
	}
	return n, n < len(win)
}

func isNumberByte(b byte) bool {
	return isDigit(b) || b == '-' || b == '+' || b == '.' || b == 'e' || b == 'E'
}

// validateNumber checks span against the JSON number grammar and reports
// whether it is a float (has a '.' or exponent) or a plain signed integer.
func validateNumber(span []byte) (isFloat bool, errMsg string) {
	i := 0
	if span[i] == '-' {
		i++
	}
	if i >= len(span) || !isDigit(span[i]) {
		return false, "streamjson: missing digits in number"
	}
	start := i
	for i < len(span) && isDigit(span[i]) {
		i++
	}
	if hasExtraLeadingZeroes(span[start:i]) {
		return false, "streamjson: extra leading zeroes in number"
	}
	if i < len(span) && span[i] == '.' {
		isFloat = true
		i++
		fracStart := i
		for i < len(span) && isDigit(span[i]) {
			i++
		}
		if i == fracStart {
			return false, "streamjson: no digits after decimal point"
		}
	}
	if i < len(span) && (span[i] == 'e' || span[i] == 'E') {
		isFloat = true
		i++
		if i < len(span) && (span[i] == '+' || span[i] == '-') {
			i++
		}
		expStart := i
		for i < len(span) && isDigit(span[i]) {
			i++
		}
		if i == expStart {
			return false, "streamjson: missing exponent digits"
		}
	}
	if i != len(span) {
		return false, "streamjson: malformed number"
	}
	return isFloat, ""
}

// hasExtraLeadingZeroes reports whether digits (an unsigned run of digits
// forming the integer part) has a leading zero followed by more digits.
func hasExtraLeadingZeroes(digits []byte) bool {
	return len(digits) > 1 && digits[0] == '0'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}
