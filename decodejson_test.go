// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson_test

import (
	"fmt"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/willoughbyrm/streamjson"
	"github.com/willoughbyrm/streamjson/internal/wire"
	"github.com/willoughbyrm/streamjson/ioinput"
)

// recorder is a Callbacks implementation that renders every event it
// receives as a short descriptive string, for comparison against an
// expected event trace.
type recorder struct {
	streamjson.DefaultCallbacks
	events []string
}

func (r *recorder) Push(detail wire.VBD) string {
	if detail&wire.StructureToList != 0 {
		r.events = append(r.events, "Push(list)")
	} else {
		r.events = append(r.events, "Push(dict)")
	}
	return ""
}

func (r *recorder) Pop(detail wire.VBD) string {
	if detail&wire.StructureToList != 0 {
		r.events = append(r.events, "Pop(list)")
	} else {
		r.events = append(r.events, "Pop(dict)")
	}
	return ""
}

func (r *recorder) AppendNull() string {
	r.events = append(r.events, "AppendNull")
	return ""
}

func (r *recorder) AppendBool(b bool) string {
	r.events = append(r.events, fmt.Sprintf("AppendBool(%v)", b))
	return ""
}

func (r *recorder) AppendI64(i int64) string {
	r.events = append(r.events, fmt.Sprintf("AppendI64(%d)", i))
	return ""
}

func (r *recorder) AppendF64(f float64) string {
	switch {
	case math.IsInf(f, 1):
		r.events = append(r.events, "AppendF64(+Inf)")
	case math.IsInf(f, -1):
		r.events = append(r.events, "AppendF64(-Inf)")
	case math.IsNaN(f):
		r.events = append(r.events, "AppendF64(NaN)")
	default:
		r.events = append(r.events, fmt.Sprintf("AppendF64(%v)", f))
	}
	return ""
}

func (r *recorder) AppendTextString(s string) string {
	r.events = append(r.events, fmt.Sprintf("AppendTextString(%q)", s))
	return ""
}

func decode(doc, pointer string) (*recorder, streamjson.DecodeJsonResult) {
	r := &recorder{}
	result := streamjson.DecodeJson(r, ioinput.NewBytesInput([]byte(doc)), nil, pointer)
	return r, result
}

func TestDecodeJsonScenarios(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		pointer    string
		wantEvents []string
		wantErr    string
		wantCursor uint64
	}{
		{
			name:       "bare null",
			doc:        `null`,
			wantEvents: []string{"AppendNull"},
			wantCursor: 4,
		},
		{
			name: "object with nested array",
			doc:  `{"a":1,"b":[true,false]}`,
			wantEvents: []string{
				"Push(dict)",
				`AppendTextString("a")`,
				"AppendI64(1)",
				`AppendTextString("b")`,
				"Push(list)",
				"AppendBool(true)",
				"AppendBool(false)",
				"Pop(list)",
				"Pop(dict)",
			},
			wantCursor: 24,
		},
		{
			name:       "pointer into nested array",
			doc:        `{"a":1,"b":[true,false]}`,
			pointer:    "/b/1",
			wantEvents: []string{"AppendBool(false)"},
			wantCursor: 22,
		},
		{
			name:       "pointer fragments with tilde escapes",
			doc:        `{"/":{"~":42}}`,
			pointer:    "/~1/~0",
			wantEvents: []string{"AppendI64(42)"},
			wantCursor: 12,
		},
		{
			name:       "pointer with no match",
			doc:        `{"a":1}`,
			pointer:    "/x",
			wantEvents: nil,
			wantErr:    streamjson.ErrNoMatch,
		},
		{
			name:       "pointer missing leading slash",
			doc:        `null`,
			pointer:    "a",
			wantEvents: nil,
			wantErr:    streamjson.ErrBadJSONPointer,
			wantCursor: 0,
		},
		{
			name:       "number too large for float64 still parses to +Inf",
			doc:        `1e9999`,
			wantEvents: []string{"AppendF64(+Inf)"},
			wantCursor: 6,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, result := decode(test.doc, test.pointer)
			if diff := cmp.Diff(test.wantEvents, r.events); diff != "" {
				t.Errorf("events (-want, +got):\n%s", diff)
			}
			if result.ErrorMessage != test.wantErr {
				t.Errorf("ErrorMessage = %q, want %q", result.ErrorMessage, test.wantErr)
			}
			if test.name == "pointer with no match" {
				if result.CursorPosition > 7 {
					t.Errorf("CursorPosition = %d, want <= 7", result.CursorPosition)
				}
				return
			}
			if result.CursorPosition != test.wantCursor {
				t.Errorf("CursorPosition = %d, want %d", result.CursorPosition, test.wantCursor)
			}
		})
	}
}

func TestDecodeJsonEmptyInput(t *testing.T) {
	r, result := decode(``, "")
	if result.ErrorMessage == "" {
		t.Fatalf("got no error for empty input, events = %v", r.events)
	}
}

func TestDecodeJsonLoneTildeAtPointerEnd(t *testing.T) {
	_, result := decode(`{"a":1}`, "/a/~")
	if result.ErrorMessage != streamjson.ErrBadJSONPointer {
		t.Errorf("ErrorMessage = %q, want %q", result.ErrorMessage, streamjson.ErrBadJSONPointer)
	}
}

func TestDecodeJsonTrailingSlashPointer(t *testing.T) {
	// A trailing '/' starts a final fragment that is the empty string. It
	// is applied to the value of "a", the number 1, which is not a
	// container, so this is a non-match rather than a syntax error.
	_, result := decode(`{"a":1}`, "/a/")
	if result.ErrorMessage != streamjson.ErrNoMatch {
		t.Errorf("ErrorMessage = %q, want %q", result.ErrorMessage, streamjson.ErrNoMatch)
	}
}

func TestDecodeJsonDefaultRejectsByteString(t *testing.T) {
	r := &recorder{}
	result := streamjson.DecodeJson(r, ioinput.NewBytesInput([]byte(`"\x41\x42"`)), []uint32{streamjson.QuirkAllowBackslashX}, "")
	if result.ErrorMessage == "" {
		t.Fatalf("want rejection of an unquoted byte string, got success")
	}
}

// oneByteReader returns at most one byte per Read call, forcing
// ReaderInput's CopyIn to be driven repeatedly and, once enough bytes
// have been consumed out of the front of the fallback ByteWindow, the
// Refill Loop's Compact step to run as well.
type oneByteReader struct {
	s string
	i int
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if r.i >= len(r.s) {
		return 0, io.EOF
	}
	p[0] = r.s[r.i]
	r.i++
	return 1, nil
}

func TestDecodeJsonRefillLoopAcrossChunks(t *testing.T) {
	doc := `{"a":1,"b":[true,false,null,"` + strings.Repeat("x", 64) + `"]}`
	r := &recorder{}
	result := streamjson.DecodeJson(r, ioinput.ReaderInput{R: &oneByteReader{s: doc}}, nil, "")
	if result.ErrorMessage != "" {
		t.Fatalf("DecodeJson: %v", result.ErrorMessage)
	}
	want := []string{
		"Push(dict)",
		`AppendTextString("a")`,
		"AppendI64(1)",
		`AppendTextString("b")`,
		"Push(list)",
		"AppendBool(true)",
		"AppendBool(false)",
		"AppendNull",
		fmt.Sprintf("AppendTextString(%q)", strings.Repeat("x", 64)),
		"Pop(list)",
		"Pop(dict)",
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events (-want, +got):\n%s", diff)
	}
	if result.CursorPosition != uint64(len(doc)) {
		t.Errorf("CursorPosition = %d, want %d", result.CursorPosition, len(doc))
	}
}

func TestDecodeJsonNegativeInfinityAndNaNQuirk(t *testing.T) {
	r := &recorder{}
	result := streamjson.DecodeJson(r, ioinput.NewBytesInput([]byte(`-Infinity`)), []uint32{streamjson.QuirkAllowInfNaN}, "")
	if result.ErrorMessage != "" {
		t.Fatalf("DecodeJson: %v", result.ErrorMessage)
	}
	if diff := cmp.Diff([]string{"AppendF64(-Inf)"}, r.events); diff != "" {
		t.Errorf("events (-want, +got):\n%s", diff)
	}

	r2 := &recorder{}
	result2 := streamjson.DecodeJson(r2, ioinput.NewBytesInput([]byte(`NaN`)), []uint32{streamjson.QuirkAllowInfNaN}, "")
	if result2.ErrorMessage != "" {
		t.Fatalf("DecodeJson: %v", result2.ErrorMessage)
	}
	if diff := cmp.Diff([]string{"AppendF64(NaN)"}, r2.events); diff != "" {
		t.Errorf("events (-want, +got):\n%s", diff)
	}
}
