package channels

import "time"

// SendNonBlock delivers msg only if ch can take it right away.
func SendNonBlock[T any](ch chan<- T, msg T) error {
	return send(ch, msg, nil)
}

// SendWithTimeout waits up to timeout for ch to take msg.
func SendWithTimeout[T any](ch chan<- T, msg T, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	return send(ch, msg, timer.C)
}

// send gives up with ErrChannelFull when expired is nil and ch is not ready,
// or with ErrChannelTimeout once expired fires.
func send[T any](ch chan<- T, msg T, expired <-chan time.Time) (err error) {
	defer func() {
		if recover() != nil {
			err = ErrChannelClosed
		}
	}()

	if expired == nil {
		select {
		case ch <- msg:
			return nil
		default:
			return ErrChannelFull
		}
	}

	select {
	case ch <- msg:
		return nil
	case <-expired:
		return ErrChannelTimeout
	}
}
