// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/willoughbyrm/streamjson"
	"github.com/willoughbyrm/streamjson/ast"
	"github.com/willoughbyrm/streamjson/ioinput"
)

func parseAll(t *testing.T, doc string) ast.Value {
	t.Helper()
	b := ast.NewBuilder()
	result := streamjson.DecodeJson(b, ioinput.NewBytesInput([]byte(doc)), nil, "")
	if result.ErrorMessage != "" {
		t.Fatalf("DecodeJson(%q): %v", doc, result.ErrorMessage)
	}
	v, ok := b.Result()
	if !ok {
		t.Fatalf("DecodeJson(%q): no top-level value", doc)
	}
	return v
}

func TestBuilderScalars(t *testing.T) {
	tests := []struct {
		doc  string
		want ast.Value
	}{
		{"null", ast.Null{}},
		{"true", ast.Bool(true)},
		{"false", ast.Bool(false)},
		{"42", ast.Integer(42)},
		{"-5", ast.Integer(-5)},
		{"1.5", ast.Number(1.5)},
		{`"hello"`, ast.String("hello")},
		{`"a\tb"`, ast.String("a\tb")},
	}
	for _, test := range tests {
		got := parseAll(t, test.doc)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("parse %q: (-want, +got):\n%s", test.doc, diff)
		}
	}
}

func TestBuilderObjectAndArray(t *testing.T) {
	const doc = `{"a":1,"b":[true,false]}`
	got := parseAll(t, doc)

	obj, ok := got.(*ast.Object)
	if !ok {
		t.Fatalf("got %T, want *ast.Object", got)
	}
	a := obj.Find("a")
	if a == nil || a.Value != ast.Integer(1) {
		t.Errorf(`"a" = %v, want Integer(1)`, a)
	}
	b := obj.Find("b")
	if b == nil {
		t.Fatal(`"b" not found`)
	}
	arr, ok := b.Value.(*ast.Array)
	if !ok {
		t.Fatalf("b.Value is %T, not *ast.Array", b.Value)
	}
	want := []ast.Value{ast.Bool(true), ast.Bool(false)}
	if diff := cmp.Diff(want, arr.Values); diff != "" {
		t.Errorf("array values (-want, +got):\n%s", diff)
	}
}

func TestBuilderPointerNavigation(t *testing.T) {
	const doc = `{"a":1,"b":[true,false]}`
	b := ast.NewBuilder()
	result := streamjson.DecodeJson(b, ioinput.NewBytesInput([]byte(doc)), nil, "/b/1")
	if result.ErrorMessage != "" {
		t.Fatalf("DecodeJson: %v", result.ErrorMessage)
	}
	v, ok := b.Result()
	if !ok || v != ast.Bool(false) {
		t.Errorf("got %v, ok=%v, want Bool(false)", v, ok)
	}
}
