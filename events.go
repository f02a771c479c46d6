package tinynotify

import (
	"errors"
	"time"

	"github.com/godbus/dbus/v5"
)

var errConnectionClosed = errors.New("connection closed while waiting for signals")

// DispatchEvent waits for one event concerning a notification sent
// through s with actions or a closed handler bound, and calls the handler.
//
// A negative timeout waits forever, zero only handles an event that is
// already pending. It returns false when the timeout passed without an
// event. Signals for other notifications are consumed and dropped.
func (s *Session) DispatchEvent(timeout time.Duration) (bool, error) {
	if err := s.ensureConnected(); err != nil {
		return false, err
	}
	signals, err := s.conn.Signals()
	if err != nil {
		s.log.Printf("error subscribing to signals: %v", err)
		return false, s.setError(newError(SendFailed, err))
	}

	if timeout == 0 {
		for {
			select {
			case signal, ok := <-signals:
				if !ok {
					return false, s.setError(newError(SendFailed, errConnectionClosed))
				}
				if s.handleSignal(signal) {
					return true, s.setError(nil)
				}
			default:
				return false, s.setError(nil)
			}
		}
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	for {
		select {
		case signal, ok := <-signals:
			if !ok {
				return false, s.setError(newError(SendFailed, errConnectionClosed))
			}
			if s.handleSignal(signal) {
				return true, s.setError(nil)
			}
		case <-expired:
			return false, s.setError(nil)
		}
	}
}

// Pending reports how many notifications are waiting for events.
func (s *Session) Pending() int {
	return len(s.tracked)
}

// handleSignal translates signal and calls the matching handler. It
// reports whether the signal belonged to a tracked notification.
func (s *Session) handleSignal(signal *dbus.Signal) bool {
	switch signal.Name {
	case signalNotificationClosed:
		var id, reason uint32
		if err := dbus.Store(signal.Body, &id, &reason); err != nil {
			s.log.Printf("malformed %v signal: %v", signal.Name, err)
			return false
		}
		n, ok := s.tracked[id]
		if !ok {
			return false
		}
		delete(s.tracked, id)
		if n.id == id {
			n.id = 0
		}
		if n.onClosed != nil {
			n.onClosed(n, Reason(reason))
		}
		return true
	case signalActionInvoked:
		var id uint32
		var key string
		if err := dbus.Store(signal.Body, &id, &key); err != nil {
			s.log.Printf("malformed %v signal: %v", signal.Name, err)
			return false
		}
		n, ok := s.tracked[id]
		if !ok {
			return false
		}
		if a, ok := n.action(key); ok && a.Handler != nil {
			a.Handler(n, key)
		}
		return true
	default:
		s.log.Printf("unknown signal: %+v", signal)
		return false
	}
}
