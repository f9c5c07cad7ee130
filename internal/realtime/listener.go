// Package realtime delivers the backend's "something changed" push
// signal. The payload is never trusted for partial merges: every signal
// means "re-fetch truth", so the transport is an interchangeable adapter
// behind a one-method contract.
package realtime

import "context"

// Listener is the push-channel boundary. Subscribe returns a channel
// that receives one value per change signal; signals carry no data.
// The channel closes when the subscription ends.
type Listener interface {
	Subscribe(ctx context.Context) (<-chan struct{}, error)
	Close() error
}

// ChanListener is an in-process Listener for tests and demos. Notify
// feeds it change signals.
type ChanListener struct {
	ch chan struct{}
}

// NewChanListener creates a ChanListener with a small signal buffer.
func NewChanListener() *ChanListener {
	return &ChanListener{ch: make(chan struct{}, 8)}
}

// Notify records a change signal. Signals are coalesced when the buffer
// is full; dropping is safe because any one signal triggers a full
// reload anyway.
func (l *ChanListener) Notify() {
	select {
	case l.ch <- struct{}{}:
	default:
	}
}

// Subscribe implements Listener.
func (l *ChanListener) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	out := make(chan struct{}, 8)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-l.ch:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

// Close implements Listener.
func (l *ChanListener) Close() error {
	close(l.ch)
	return nil
}
