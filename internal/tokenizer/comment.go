// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tokenizer

import (
	"github.com/willoughbyrm/streamjson/internal/wire"
)

// scanComment matches a line comment ("// ... \n") or a block comment
// ("/* ... */") at the front of ib's window, gated by the
// AllowCommentLine / AllowCommentBlock quirks, and folds it into a single
// Filler token: the wire contract has no separate comment category, so a
// comment is just filler the decoder happens to validate the shape of.
func (d *Decoder) scanComment(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string, bool) {
	win := ib.Window()
	if len(win) < 2 {
		return wire.StatusShortRead, "", false
	}
	switch win[1] {
	case '/':
		if !d.quirk(wire.QuirkAllowCommentLine) {
			return 0, "streamjson: line comments not allowed", true
		}
		n := 2
		for n < len(win) && win[n] != '\n' {
			n++
		}
		if n == len(win) {
			return wire.StatusShortRead, "", false
		}
		return d.emitFiller(tb, ib, n), "", true

	case '*':
		if !d.quirk(wire.QuirkAllowCommentBlock) {
			return 0, "streamjson: block comments not allowed", true
		}
		n := 2
		for {
			for n < len(win) && win[n] != '*' {
				n++
			}
			if n+1 >= len(win) {
				return wire.StatusShortRead, "", false
			}
			if win[n+1] == '/' {
				return d.emitFiller(tb, ib, n+2), "", true
			}
			n++ // saw '*' but not '*/'; keep scanning
		}

	default:
		return 0, "streamjson: invalid comment", true
	}
}
