// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ioinput

import (
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/willoughbyrm/streamjson/internal/wire"
)

// RetryInput decorates another streamjson.Input, retrying a failing
// CopyIn with exponential backoff before latching the error into
// io_error_message. Adapted from the backoffRetries/tryAgain pattern in
// tav-validate-rosetta's retry package benchmark.
type RetryInput struct {
	Inner     Input
	MaxRetries uint64
	Log        *zap.Logger
}

// Input is the subset of streamjson.Input that RetryInput wraps; spelled
// out locally so this package does not need to import the root package
// just for an interface it already knows the shape of.
type Input interface {
	BringsItsOwnIOBuffer() *wire.ByteWindow
	CopyIn(ib *wire.ByteWindow) string
}

// NewRetryInput wraps inner with up to maxRetries exponential-backoff
// attempts per CopyIn call, logging each retry with log.
func NewRetryInput(inner Input, maxRetries uint64, log *zap.Logger) *RetryInput {
	if log == nil {
		log = zap.NewNop()
	}
	return &RetryInput{Inner: inner, MaxRetries: maxRetries, Log: log}
}

func (r *RetryInput) BringsItsOwnIOBuffer() *wire.ByteWindow {
	return r.Inner.BringsItsOwnIOBuffer()
}

func (r *RetryInput) CopyIn(ib *wire.ByteWindow) string {
	eb := &backoff.ExponentialBackOff{
		Clock:           backoff.SystemClock,
		InitialInterval: 10 * time.Millisecond,
		MaxElapsedTime:  0,
		MaxInterval:     time.Second,
		Multiplier:      2,
	}
	eb.Reset()
	bo := backoff.WithMaxRetries(eb, r.MaxRetries)

	for {
		msg := r.Inner.CopyIn(ib)
		if msg == "" {
			return ""
		}
		next := bo.NextBackOff()
		if next == backoff.Stop {
			return msg
		}
		r.Log.Warn("retrying CopyIn after transient error",
			zap.String("error", msg), zap.Duration("backoff", next))
		time.Sleep(next)
	}
}
