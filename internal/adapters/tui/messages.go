package tui

import "time"

// MsgPlan announces the targets about to be built, in order.
type MsgPlan struct {
	Targets []string
}

// MsgTargetStart is sent when a target build begins.
type MsgTargetStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgTargetLog carries process output of a running target.
type MsgTargetLog struct {
	SpanID string
	Data   []byte
}

// MsgTargetComplete is sent when a target build ends.
type MsgTargetComplete struct {
	SpanID  string
	EndTime time.Time
	Status  string
	Err     error
}
