package query_test

import (
	"testing"

	"github.com/willoughbyrm/streamjson"
	"github.com/willoughbyrm/streamjson/ast"
	"github.com/willoughbyrm/streamjson/ioinput"
	"github.com/willoughbyrm/streamjson/query"
)

func mustParse(t *testing.T, doc string) ast.Value {
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

const testInput = `{
  "episodes": [
    {"airDate": "2021-11-30", "title": "Pilot"},
    {"airDate": "2021-12-07", "title": "Second"},
    {"airDate": "2021-12-14", "title": "Third"}
  ]
}`

func TestQuery(t *testing.T) {
	val := mustParse(t, testInput)

	t.Run("Seq", func(t *testing.T) {
		const wantString = "2021-11-30"

		v, err := query.Eval(val, query.Seq{
			query.Path("episodes"),
			query.Path(0),
			query.Path("airDate"),
		})
		if err != nil {
			t.Errorf("Eval failed: %v", err)
		} else if s, ok := v.(ast.String); !ok {
			t.Errorf("Result: got %T, want string", v)
		} else if got := string(s); got != wantString {
			t.Errorf("Result: got %q, want %q", got, wantString)
		}
	})

	t.Run("Each", func(t *testing.T) {
		v, err := query.Eval(val, query.Seq{
			query.Path("episodes"),
			query.Each("airDate"),
		})
		if err != nil {
			t.Fatalf("Eval failed: %v", err)
		}
		a, ok := v.(*ast.Array)
		if !ok {
			t.Fatalf("Result: got %T, want array", v)
		}
		if len(a.Values) != 3 {
			t.Fatalf("got %d elements, want 3", len(a.Values))
		}
		for i, elt := range a.Values {
			s, ok := elt.(ast.String)
			if !ok {
				t.Errorf("element %d: got %T, want string", i, elt)
			}
			t.Logf("element %d: %v", i, string(s))
		}
	})
}

func TestQueryPath(t *testing.T) {
	root := mustParse(t, `[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]`)

	v, err := query.Eval(root, query.Path(1, "c", "d"))
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if v != ast.Bool(true) {
		t.Errorf("got %v, want true", v)
	}
}

func TestQueryLen(t *testing.T) {
	root := mustParse(t, `{"a":1,"b":2,"c":3}`)
	v, err := query.Eval(root, query.Len())
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if v != ast.Integer(3) {
		t.Errorf("got %v, want 3", v)
	}
}

func TestQuerySelectionAndMapping(t *testing.T) {
	root := mustParse(t, `[1,2,3,4,5]`)

	sel, err := query.Eval(root, query.Selection(func(v ast.Value) bool {
		n, ok := v.(ast.Integer)
		return ok && n%2 == 0
	}))
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	arr, ok := sel.(*ast.Array)
	if !ok || len(arr.Values) != 2 {
		t.Fatalf("got %v, want array of 2 even values", sel)
	}

	mapped, err := query.Eval(root, query.Mapping(func(v ast.Value) ast.Value {
		n := v.(ast.Integer)
		return ast.Integer(n * 10)
	}))
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	marr := mapped.(*ast.Array)
	if marr.Values[0] != ast.Integer(10) {
		t.Errorf("got %v, want 10", marr.Values[0])
	}
}
