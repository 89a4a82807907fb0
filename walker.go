// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import (
	"strconv"

	"github.com/willoughbyrm/streamjson/internal/wire"
)

// walkPointer descends one level per fragment of a JSON Pointer before the
// main event loop ever starts. On success the token stream is left
// positioned exactly at the start of the target value; runEventLoop sees
// it as if it were the top-level document.
func (c *context) walkPointer(jsonPointer string) string {
	for i := 0; i < len(jsonPointer); {
		if jsonPointer[i] != '/' {
			return ErrBadJSONPointer
		}
		fragment, rest, ok := nextPointerFragment(jsonPointer[i:])
		if !ok {
			return ErrBadJSONPointer
		}
		if msg := c.walkFragment(fragment); msg != "" {
			return msg
		}
		i += rest
	}
	return ""
}

// walkFragment descends exactly one JSON Pointer fragment into the value
// the token stream is currently positioned at.
func (c *context) walkFragment(fragment string) string {
	// AWAIT_CONTAINER: consume filler; the next token must open a
	// container.
	var open wire.Token
	for {
		tok, _, msg := c.nextToken()
		if msg != "" {
			return msg
		}
		if tok.Category == wire.Filler {
			continue
		}
		if tok.Category != wire.Structure || tok.Detail&wire.StructurePush == 0 {
			return ErrNoMatch
		}
		open = tok
		break
	}

	if open.Detail&wire.StructureToList != 0 {
		return c.walkIntoList(fragment)
	}
	return c.walkIntoDict(fragment)
}

// walkIntoDict implements the DICT state: alternate READ_KEY and
// SKIP_VALUE until the matching key is found or the dict closes.
func (c *context) walkIntoDict(fragment string) string {
	for {
		// READ_KEY: skip the Filler tokens separating entries (including the
		// ',' before a key) before a key string can start.
		var tok wire.Token
		var src []byte
		for {
			var msg string
			tok, src, msg = c.nextToken()
			if msg != "" {
				return msg
			}
			if tok.Category == wire.Filler {
				continue
			}
			break
		}
		switch {
		case tok.Category == wire.Structure && tok.Detail&wire.StructurePop != 0:
			return ErrNoMatch // dict closed with no key matching
		case tok.Category == wire.Structure:
			return "internal error: unexpected push while reading a dict key"
		case tok.Category != wire.String:
			return "internal error: expected a string key"
		}

		_, amsg := c.assembleString(tok, src)
		if amsg != "" {
			return amsg
		}
		if string(c.scratch) == fragment {
			return "" // positioned at the colon; resume there
		}

		// SKIP_VALUE: consume the colon, then the whole value.
		if msg := c.consumeColon(); msg != "" {
			return msg
		}
		closedAtZero, smsg := c.skipValue()
		if smsg != "" {
			return smsg
		}
		if closedAtZero {
			return ErrNoMatch
		}
	}
}

// walkIntoList implements the LIST state: parse fragment as an unsigned
// decimal index, skip that many complete elements, then PEEK_VALUE.
func (c *context) walkIntoList(fragment string) string {
	n, err := strconv.ParseUint(fragment, 10, 64)
	if err != nil {
		return ErrNoMatch
	}
	for i := uint64(0); i < n; i++ {
		closedAtZero, msg := c.skipValue()
		if msg != "" {
			return msg
		}
		if closedAtZero {
			return ErrNoMatch
		}
	}
	return c.peekValue()
}

// peekValue consumes filler, then looks at (without consuming) the next
// token; if it is a closing Structure, the list had no Nth element.
func (c *context) peekValue() string {
	for {
		tok, _, msg := c.nextToken()
		if msg != "" {
			return msg
		}
		if tok.Category == wire.Filler {
			continue
		}
		c.unreadToken(tok)
		if tok.Category == wire.Structure && tok.Detail&wire.StructurePop != 0 {
			return ErrNoMatch
		}
		return ""
	}
}

// consumeColon consumes the single Filler token that follows a dict key:
// the ':' itself, or whitespace before it, in which case skipValue skips
// the ':' along with any other filler.
func (c *context) consumeColon() string {
	for {
		tok, _, msg := c.nextToken()
		if msg != "" {
			return msg
		}
		if tok.Category == wire.Filler {
			return "" // the colon itself is reported as Filler
		}
		return "internal error: expected ':' after dict key"
	}
}

// skipValue consumes one complete value (scalar, or a fully nested
// container), maintaining a depth counter. closedAtZero reports that a container
// closed (Structure POP) before any value was found at depth 0 — the
// caller (an empty dict with no matching key, or a list exhausted before
// the target index) turns that into ErrNoMatch.
func (c *context) skipValue() (closedAtZero bool, errMsg string) {
	depth := 0
	for {
		tok, _, msg := c.nextToken()
		if msg != "" {
			return false, msg
		}
		switch {
		case tok.Category == wire.Filler:
			continue
		case tok.Category == wire.Structure && tok.Detail&wire.StructurePush != 0:
			depth++
		case tok.Category == wire.Structure: // POP
			if depth == 0 {
				return true, ""
			}
			depth--
			if depth == 0 {
				return false, ""
			}
		default: // String, UnicodeCodePoint, Literal, Number
			if tok.Continued {
				continue
			}
			if depth == 0 {
				return false, ""
			}
		}
	}
}
