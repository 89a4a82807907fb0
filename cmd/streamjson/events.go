// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willoughbyrm/streamjson"
	"github.com/willoughbyrm/streamjson/internal/wire"
	"github.com/willoughbyrm/streamjson/ioinput"
)

// loggingCallbacks wraps streamjson.DefaultCallbacks, logging every
// invocation instead of materializing a tree.
type loggingCallbacks struct {
	streamjson.DefaultCallbacks
	log *zap.Logger
}

func (c *loggingCallbacks) Push(detail wire.VBD) string {
	c.log.Info("push", zap.Bool("list", detail&wire.StructureToList != 0))
	return ""
}

func (c *loggingCallbacks) Pop(detail wire.VBD) string {
	c.log.Info("pop", zap.Bool("list", detail&wire.StructureToList != 0))
	return ""
}

func (c *loggingCallbacks) AppendNull() string {
	c.log.Info("null")
	return ""
}

func (c *loggingCallbacks) AppendBool(v bool) string {
	c.log.Info("bool", zap.Bool("value", v))
	return ""
}

func (c *loggingCallbacks) AppendI64(v int64) string {
	c.log.Info("int64", zap.Int64("value", v))
	return ""
}

func (c *loggingCallbacks) AppendF64(v float64) string {
	c.log.Info("float64", zap.Float64("value", v))
	return ""
}

func (c *loggingCallbacks) AppendTextString(v string) string {
	c.log.Info("string", zap.String("value", v))
	return ""
}

func runEvents(cmd *cobra.Command, args []string) error {
	retries, err := cmd.Flags().GetUint64("retries")
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %q: %w", args[0], err)
	}
	defer f.Close()

	log := newLogger()
	defer log.Sync()

	var in streamjson.Input = ioinput.ReaderInput{R: f}
	if retries > 0 {
		in = ioinput.NewRetryInput(in, retries, log)
	}

	cb := &loggingCallbacks{log: log}
	result := streamjson.DecodeJson(cb, in, resolvedQuirks(), "")
	if result.ErrorMessage != "" {
		return fmt.Errorf("decode at cursor %d: %s", result.CursorPosition, result.ErrorMessage)
	}
	return nil
}
