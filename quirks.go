// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import "github.com/willoughbyrm/streamjson/internal/wire"

// Quirk identifiers accepted by DecodeJson's quirks argument. These are
// opaque uint32 values as far as DecodeJson itself is concerned — it
// performs no interpretation of them, applying each verbatim to the
// low-level decoder, which is the only component that interprets them.
const (
	QuirkAllowCommentBlock                = wire.QuirkAllowCommentBlock
	QuirkAllowCommentLine                 = wire.QuirkAllowCommentLine
	QuirkAllowTrailingCommas              = wire.QuirkAllowTrailingCommas
	QuirkAllowBackslashX                  = wire.QuirkAllowBackslashX
	QuirkAllowInfNaN                      = wire.QuirkAllowInfNaN
	QuirkAllowLeadingUnicodeByteOrderMark = wire.QuirkAllowLeadingUnicodeByteOrderMark
)

// Re-exported token wire-contract types and constants, so that a
// Callbacks implementation never has to import internal/wire itself.
type (
	VBC   = wire.VBC
	VBD   = wire.VBD
	Token = wire.Token
)

const (
	Filler           = wire.Filler
	Structure        = wire.Structure
	String           = wire.String
	UnicodeCodePoint = wire.UnicodeCodePoint
	Literal          = wire.Literal
	Number           = wire.Number
)

const (
	StructurePush   = wire.StructurePush
	StructurePop    = wire.StructurePop
	StructureToList = wire.StructureToList
)

const (
	StringConvertDrop       = wire.StringConvertDrop
	StringConvertCopy       = wire.StringConvertCopy
	StringConvertBackslashX = wire.StringConvertBackslashX
	StringChainMustBeUTF8   = wire.StringChainMustBeUTF8
)

const (
	LiteralNull = wire.LiteralNull
	LiteralTrue = wire.LiteralTrue
)

const (
	NumberFormatText           = wire.NumberFormatText
	NumberContentIntegerSigned = wire.NumberContentIntegerSigned
	NumberContentFloatingPoint = wire.NumberContentFloatingPoint
	NumberContentNegInf        = wire.NumberContentNegInf
	NumberContentPosInf        = wire.NumberContentPosInf
	NumberContentNegNaN        = wire.NumberContentNegNaN
	NumberContentPosNaN        = wire.NumberContentPosNaN
)

// Sentinel error strings, stable and exposed as constants.
const (
	ErrBadJSONPointer = "wuffs_aux::DecodeJson: bad JSON Pointer"
	ErrNoMatch        = "wuffs_aux::DecodeJson: no match"
)
