// Package channels holds generic helpers for fanning values out over Go
// channels without letting a slow or closed receiver stall the sender.
package channels

import "errors"

// Send failures. A closed channel is reported instead of panicking.
var (
	ErrChannelClosed  = errors.New("channel closed")
	ErrChannelTimeout = errors.New("send timeout")
	ErrChannelFull    = errors.New("channel full")
)
