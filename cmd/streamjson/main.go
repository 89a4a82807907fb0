// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Command streamjson decodes JSON documents through the streamjson driver,
// optionally navigating a JSON Pointer or running a structural query over
// the result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/willoughbyrm/streamjson"
)

var quirkFlags struct {
	allowComments       bool
	allowTrailingCommas bool
	allowBackslashX     bool
	allowInfNaN         bool
}

func resolvedQuirks() []uint32 {
	var out []uint32
	addQuirk := func(enabled bool, quirks ...uint32) {
		if enabled {
			out = append(out, quirks...)
		}
	}
	addQuirk(quirkFlags.allowComments, streamjson.QuirkAllowCommentBlock, streamjson.QuirkAllowCommentLine)
	addQuirk(quirkFlags.allowTrailingCommas, streamjson.QuirkAllowTrailingCommas)
	addQuirk(quirkFlags.allowBackslashX, streamjson.QuirkAllowBackslashX)
	addQuirk(quirkFlags.allowInfNaN, streamjson.QuirkAllowInfNaN)
	return out
}

func newLogger() *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg := zap.Config{
		DisableCaller:     true,
		DisableStacktrace: true,
		EncoderConfig:     enc,
		Encoding:          "console",
		ErrorOutputPaths:  []string{"stderr"},
		Level:             zap.NewAtomicLevelAt(zap.InfoLevel),
		OutputPaths:       []string{"stderr"},
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func bindQuirkFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&quirkFlags.allowComments, "allow-comments", false, "allow // and /* */ comments")
	cmd.Flags().BoolVar(&quirkFlags.allowTrailingCommas, "allow-trailing-commas", false, "allow a trailing comma before } or ]")
	cmd.Flags().BoolVar(&quirkFlags.allowBackslashX, "allow-backslash-x", false, `allow \xHH escapes in strings`)
	cmd.Flags().BoolVar(&quirkFlags.allowInfNaN, "allow-inf-nan", false, "allow the bare literals Infinity, -Infinity, and NaN")
}

func main() {
	root := &cobra.Command{
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Short:             "Decode JSON through the streamjson driver",
		Use:               "streamjson",
	}

	getCmd := &cobra.Command{
		Args:  cobra.ExactArgs(1),
		Short: "Decode a file and print the value at a JSON Pointer",
		Use:   "get <file>",
		RunE:  runGet,
	}
	getCmd.Flags().String("pointer", "", "RFC 6901 JSON Pointer into the document")
	bindQuirkFlags(getCmd)

	queryCmd := &cobra.Command{
		Args:  cobra.ExactArgs(1),
		Short: "Decode a file and evaluate a structural query path over it",
		Use:   "query <file>",
		RunE:  runQuery,
	}
	queryCmd.Flags().String("path", "", "dotted path of object keys and array indices, e.g. a.1.b")
	bindQuirkFlags(queryCmd)

	eventsCmd := &cobra.Command{
		Args:  cobra.ExactArgs(1),
		Short: "Decode a file, logging every callback invocation",
		Use:   "events <file>",
		RunE:  runEvents,
	}
	eventsCmd.Flags().Uint64("retries", 0, "retry a failing read with exponential backoff this many times")
	bindQuirkFlags(eventsCmd)

	root.AddCommand(getCmd, queryCmd, eventsCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
