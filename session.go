package tinynotify

import (
	"io"
	"log"
	"time"
)

// CallTimeout is the default time a method call blocks waiting for the
// reply.
const CallTimeout = 5 * time.Second

// Session holds what is needed to send notifications: the bus connection,
// the default application name and icon, and the result of the last
// operation.
//
// The connection is opened lazily by the first operation needing it, or
// by Connect. A Session is meant to be used from a single goroutine.
type Session struct {
	appName string
	appIcon string

	dial        Dialer
	conn        Conn
	callTimeout time.Duration
	log         *log.Logger

	err *Error

	// notifications waiting for signals, by id
	tracked map[uint32]*Notification
}

// Option configures a Session.
type Option func(*Session)

// WithAppName sets the default application name.
func WithAppName(name string) Option {
	return func(s *Session) {
		s.appName = name
	}
}

// WithAppIcon sets the default application icon, see
// http://standards.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
func WithAppIcon(icon string) Option {
	return func(s *Session) {
		s.appIcon = icon
	}
}

// WithDialer overrides how the bus connection is established.
func WithDialer(dial Dialer) Option {
	return func(s *Session) {
		s.dial = dial
	}
}

// WithLogger sets the logger for failures, the default discards.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.log = logger
	}
}

// WithCallTimeout overrides CallTimeout for this session.
func WithCallTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.callTimeout = timeout
	}
}

// NewSession creates a disconnected session with no error set.
func NewSession(opts ...Option) *Session {
	s := &Session{
		dial:        SessionBusDialer,
		callTimeout: CallTimeout,
		log:         log.New(io.Discard, "", 0),
		tracked:     make(map[uint32]*Notification),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect establishes the bus connection unless already connected.
func (s *Session) Connect() error {
	if s.conn != nil {
		return s.setError(nil)
	}

	conn, err := s.dial()
	if err != nil {
		s.log.Printf("error connecting to session bus: %v", err)
		return s.setError(newError(ConnectFailed, err))
	}
	s.conn = conn
	return s.setError(nil)
}

// Connected reports whether the session holds a connection.
func (s *Session) Connected() bool {
	return s.conn != nil
}

// Disconnect closes the connection, if any, and resets the error. It is
// safe to call on a session that never connected.
func (s *Session) Disconnect() {
	if s.conn == nil {
		return
	}
	if err := s.conn.Close(); err != nil {
		s.log.Printf("error closing connection: %v", err)
	}
	s.conn = nil
	s.tracked = make(map[uint32]*Notification)
	s.err = nil
}

// Close disconnects the session. The session can still be reused and will
// reconnect on demand.
func (s *Session) Close() error {
	s.Disconnect()
	return nil
}

// AppName returns the default application name, "" when unset.
func (s *Session) AppName() string { return s.appName }

// SetAppName sets the default application name, "" unsets it.
func (s *Session) SetAppName(name string) { s.appName = name }

// AppIcon returns the default application icon, "" when unset.
func (s *Session) AppIcon() string { return s.appIcon }

// SetAppIcon sets the default application icon, "" unsets it.
func (s *Session) SetAppIcon(icon string) { s.appIcon = icon }

// Err returns the error of the last operation, nil on success.
func (s *Session) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// ErrorCode returns the code of the last operation.
func (s *Session) ErrorCode() ErrorCode {
	if s.err == nil {
		return NoError
	}
	return s.err.Code
}

// ErrorDetail returns the transport or parse detail of the last error,
// "" when the last operation succeeded.
func (s *Session) ErrorDetail() string {
	if s.err == nil {
		return ""
	}
	return s.err.Detail
}

// ErrorMessage returns a human readable message for the last error.
func (s *Session) ErrorMessage() string {
	if s.err == nil {
		return NoError.Message("")
	}
	return s.err.Error()
}

// setError records e as the last result and returns it as an error,
// keeping a nil *Error from turning into a non-nil interface.
func (s *Session) setError(e *Error) error {
	s.err = e
	if e == nil {
		return nil
	}
	return e
}
