// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go4.org/mem"

	"github.com/willoughbyrm/streamjson"
	"github.com/willoughbyrm/streamjson/ast"
	"github.com/willoughbyrm/streamjson/internal/escape"
	"github.com/willoughbyrm/streamjson/ioinput"
)

func runGet(cmd *cobra.Command, args []string) error {
	pointer, err := cmd.Flags().GetString("pointer")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %q: %w", args[0], err)
	}

	b := ast.NewBuilder()
	result := streamjson.DecodeJson(b, ioinput.NewBytesInput(data), resolvedQuirks(), pointer)
	if result.ErrorMessage != "" {
		return fmt.Errorf("decode at cursor %d: %s", result.CursorPosition, result.ErrorMessage)
	}
	v, ok := b.Result()
	if !ok {
		fmt.Println("null")
		return nil
	}
	printValue(v)
	return nil
}

func printValue(v ast.Value) {
	switch t := v.(type) {
	case ast.String:
		fmt.Printf("\"%s\"\n", escape.Quote(mem.S(string(t))))
	case ast.ByteString:
		fmt.Printf("\"%s\"\n", escape.Quote(mem.B(t)))
	default:
		fmt.Println(v)
	}
}
