// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/willoughbyrm/streamjson"
	"github.com/willoughbyrm/streamjson/ast"
	"github.com/willoughbyrm/streamjson/ioinput"
	"github.com/willoughbyrm/streamjson/query"
)

// parsePath splits a dotted path such as "a.1.b" into the key/index
// arguments query.Path expects.
func parsePath(s string) []any {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ".")
	out := make([]any, len(parts))
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			out[i] = n
		} else {
			out[i] = p
		}
	}
	return out
}

func runQuery(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("path")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %q: %w", args[0], err)
	}

	b := ast.NewBuilder()
	result := streamjson.DecodeJson(b, ioinput.NewBytesInput(data), resolvedQuirks(), "")
	if result.ErrorMessage != "" {
		return fmt.Errorf("decode at cursor %d: %s", result.CursorPosition, result.ErrorMessage)
	}
	root, ok := b.Result()
	if !ok {
		return fmt.Errorf("no top-level value in %q", args[0])
	}

	v, err := query.Eval(root, query.Path(parsePath(path)...))
	if err != nil {
		return fmt.Errorf("query %q: %w", path, err)
	}
	printValue(v)
	return nil
}
