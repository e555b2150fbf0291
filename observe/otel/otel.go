package otel

import (
	"time"

	"github.com/NetPo4ki/go-mpmc/channel"
)

// Nop is a no-op implementation of the channel.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without adding dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) Completed(channel.Op, int, time.Duration) {}
func (*Nop) Expired(channel.Op, time.Duration)        {}
func (*Nop) Refused(channel.Op)                       {}
func (*Nop) Closed(int)                               {}

var _ channel.Observer = (*Nop)(nil)
