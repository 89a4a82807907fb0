// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/willoughbyrm/streamjson"
	"github.com/willoughbyrm/streamjson/ast"
	"github.com/willoughbyrm/streamjson/ast/cursor"
	"github.com/willoughbyrm/streamjson/ioinput"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func mustParse(t *testing.T, doc string) ast.Value {
	t.Helper()
	b := ast.NewBuilder()
	result := streamjson.DecodeJson(b, ioinput.NewBytesInput([]byte(doc)), nil, "")
	if result.ErrorMessage != "" {
		t.Fatalf("DecodeJson: %v", result.ErrorMessage)
	}
	v, ok := b.Result()
	if !ok {
		t.Fatal("no top-level value")
	}
	return v
}

func TestCursor(t *testing.T) {
	v := mustParse(t, testJSON)
	list := v.(*ast.Object).Find("list").Value.(*ast.Array)
	xyz := v.(*ast.Object).Find("xyz").Value.(*ast.Object)

	tests := []struct {
		name string
		path []any
		want ast.Value
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"WrongType", []any{11}, v, true},

		{"ArrayPos", []any{"list", 1}, list.Values[1], false},
		{"ArrayNeg", []any{"list", -1}, list.Values[1], false},
		{"ArrayRange", []any{"o", 25}, v.(*ast.Object).Find("o").Value, true},
		{"ObjPath", []any{"xyz", "d"}, xyz.Find("d"), false},

		{"FuncArray", []any{"o", testPathFunc}, ast.Integer(2), false},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.Integer(3), false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, xyz.Find("d").Value, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			}
			got := c.Value()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Down %+v: wrong result (-want, +got):\n%s", tc.path, diff)
			}
		})
	}
}

func testPathFunc(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case *ast.Array:
		return ast.Integer(len(t.Values)), nil
	case *ast.Object:
		return ast.Integer(len(t.Members)), nil
	default:
		return nil, errors.New("not a thing with length")
	}
}
