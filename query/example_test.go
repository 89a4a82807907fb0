package query_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/willoughbyrm/streamjson"
	"github.com/willoughbyrm/streamjson/ast"
	"github.com/willoughbyrm/streamjson/ioinput"
	"github.com/willoughbyrm/streamjson/query"
)

func mustParseOne(s string) ast.Value {
	b := ast.NewBuilder()
	result := streamjson.DecodeJson(b, ioinput.NewBytesInput([]byte(s)), nil, "")
	if result.ErrorMessage != "" {
		log.Fatalf("DecodeJson: %v", result.ErrorMessage)
	}
	v, ok := b.Result()
	if !ok {
		log.Fatal("no top-level value")
	}
	return v
}

// renderArray formats an *ast.Array of strings as a compact JSON-like list,
// for the purposes of this example only.
func renderArray(a *ast.Array) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%q", v.(ast.String))
	}
	sb.WriteByte(']')
	return sb.String()
}

func Example_small() {
	root := mustParseOne(`[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]`)
	v, err := query.Eval(root, query.Path(1, "c", "d"))
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(v)
	// Output:
	// true
}

func Example_medium() {
	root := mustParseOne(`
{
  "plaintiff": "Inigo Montoya",
  "complaint": {
     "defendant": "you",
     "action": "killed",
     "target": "Individual 1"
  },
  "requestedRelief": ["die", "pay punitive damages", "pay attorney fees"],
  "relatedPersons": {
    "Individual 1": {"id": "father", "rel": "plaintiff"}
  }
}`)

	v, err := query.Eval(root, query.ObjectQuery{
		"name": query.Path("plaintiff"),
		"act": query.ArrayQuery{
			query.Path("complaint", "defendant"),
			query.Path("complaint", "action"),
			query.StringConst("my"),
			query.Path("relatedPersons", "Individual 1", "id"),
		},
		"req": query.Path("requestedRelief", 0),
	})
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	obj := v.(*ast.Object)
	fmt.Printf("Hello, my name is: %s\n", obj.Find("name").Value)
	fmt.Println(renderArray(obj.Find("act").Value.(*ast.Array)))
	fmt.Printf("Prepare to %s", obj.Find("req").Value)
	// Output:
	// Hello, my name is: Inigo Montoya
	// ["you","killed","my","father"]
	// Prepare to die
}
