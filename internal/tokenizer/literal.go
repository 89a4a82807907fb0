// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tokenizer

import (
	"github.com/willoughbyrm/streamjson/internal/wire"
)

// scanLiteral matches one of the three bare-word literals at the front of
// ib's window: true, false, null. The caller has already checked that the
// first byte is 't', 'f', or 'n'.
func (d *Decoder) scanLiteral(tb *wire.TokenWindow, ib *wire.ByteWindow) (wire.Status, string, bool) {
	win := ib.Window()
	var lit string
	var detail wire.VBD
	switch win[0] {
	case 't':
		lit, detail = "true", wire.LiteralTrue
	case 'f':
		lit, detail = "false", 0
	default:
		lit, detail = "null", wire.LiteralNull
	}
	matched, needMore := matchesOrShortRead(win, lit)
	if needMore {
		return wire.StatusShortRead, "", false
	}
	if !matched {
		return 0, "streamjson: invalid literal", true
	}
	if msg, ok := d.checkValueStart(); !ok {
		return 0, msg, true
	}
	d.put(tb, wire.Token{Length: len(lit), Category: wire.Literal, Detail: detail})
	ib.RI += len(lit)
	d.afterValue()
	return wire.StatusOK, "", true
}

// scanSpecialNumber matches a bare Infinity or NaN literal, permitted by the
// AllowInfNaN quirk, reporting it as a Number token whose content bit
// records which of the four IEEE-754 special values it names. The caller
// has already checked the first byte and that the quirk is enabled.
func (d *Decoder) scanSpecialNumber(tb *wire.TokenWindow, ib *wire.ByteWindow, lit string, content wire.VBD) (wire.Status, string, bool) {
	win := ib.Window()
	matched, needMore := matchesOrShortRead(win, lit)
	if needMore {
		return wire.StatusShortRead, "", false
	}
	if !matched {
		return 0, "streamjson: invalid number", true
	}
	if msg, ok := d.checkValueStart(); !ok {
		return 0, msg, true
	}
	d.put(tb, wire.Token{Length: len(lit), Category: wire.Number, Detail: content})
	ib.RI += len(lit)
	d.afterValue()
	return wire.StatusOK, "", true
}
