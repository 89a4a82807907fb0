// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"github.com/willoughbyrm/streamjson"
	"github.com/willoughbyrm/streamjson/internal/wire"
)

// A Builder implements streamjson.Callbacks, materializing a Value tree
// from the decoder's event stream using a push/pop/reduce stack discipline
// driven by discrete Push/Pop/Append* method calls.
type Builder struct {
	streamjson.DefaultCallbacks

	stack  []*frame
	result Value
	done   bool
}

// frame is one container under construction: either an *Object (tracking
// whether the next scalar reported is a key or a value member) or an
// *Array.
type frame struct {
	container   Value
	awaitingKey bool
	pendingKey  string
}

// NewBuilder returns a Builder ready to pass as DecodeJson's Callbacks.
func NewBuilder() *Builder { return new(Builder) }

// Result returns the single top-level value the Builder accumulated, and
// whether decoding reached one. It is only meaningful after DecodeJson
// returns.
func (b *Builder) Result() (Value, bool) { return b.result, b.done }

func (b *Builder) top() *frame { return b.stack[len(b.stack)-1] }

// addValue folds v into whatever the stack's innermost frame is awaiting:
// the top-level result if the stack is empty, an array element, a pending
// dict key, or a dict member once the key is already known.
func (b *Builder) addValue(v Value) string {
	if len(b.stack) == 0 {
		b.result = v
		b.done = true
		return ""
	}
	f := b.top()
	switch c := f.container.(type) {
	case *Array:
		c.Values = append(c.Values, v)
	case *Object:
		if f.awaitingKey {
			s, ok := v.(String)
			if !ok {
				return "internal error: dict key is not a string"
			}
			f.pendingKey = string(s)
			f.awaitingKey = false
		} else {
			c.Members = append(c.Members, &Member{Key: f.pendingKey, Value: v})
			f.awaitingKey = true
		}
	}
	return ""
}

func (b *Builder) Push(detail wire.VBD) string {
	isList := detail&wire.StructureToList != 0
	var c Value
	if isList {
		c = &Array{}
	} else {
		c = &Object{}
	}
	b.stack = append(b.stack, &frame{container: c, awaitingKey: !isList})
	return ""
}

func (b *Builder) Pop(wire.VBD) string {
	if len(b.stack) == 0 {
		return "internal error: Pop with empty stack"
	}
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	return b.addValue(f.container)
}

func (b *Builder) AppendNull() string             { return b.addValue(Null{}) }
func (b *Builder) AppendBool(v bool) string       { return b.addValue(Bool(v)) }
func (b *Builder) AppendI64(v int64) string       { return b.addValue(Integer(v)) }
func (b *Builder) AppendF64(v float64) string     { return b.addValue(Number(v)) }
func (b *Builder) AppendTextString(s string) string { return b.addValue(String(s)) }

func (b *Builder) AppendByteString(v []byte) string {
	return b.addValue(ByteString(append([]byte(nil), v...)))
}
