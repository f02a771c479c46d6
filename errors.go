package tinynotify

import "fmt"

// ErrorCode is a tinynotify error code.
//
// NoError is guaranteed to be 0, so a code can be tested as a success flag.
type ErrorCode int

const (
	// NoError means the last operation succeeded.
	NoError ErrorCode = iota
	// ConnectFailed means establishing the session bus connection failed.
	ConnectFailed
	// SendFailed means the method call got no reply (transport failure or timeout).
	SendFailed
	// InvalidReply means a reply arrived but its arguments did not match the protocol.
	InvalidReply
	// NoNotificationID means the notification has no server-assigned id (not sent yet?).
	NoNotificationID
	// FormatError means the summary/body templates did not match the supplied arguments.
	FormatError

	errorCodeCount
)

var errorMessages = [errorCodeCount]string{
	NoError:          "No error",
	ConnectFailed:    "Connecting to D-Bus failed: %s",
	SendFailed:       "Sending message over D-Bus failed: %s",
	InvalidReply:     "Invalid reply received: %s",
	NoNotificationID: "No notification-id available (not sent yet?)",
	FormatError:      "Formatting notification failed: %s",
}

var errorNames = [errorCodeCount]string{
	NoError:          "NoError",
	ConnectFailed:    "ConnectFailed",
	SendFailed:       "SendFailed",
	InvalidReply:     "InvalidReply",
	NoNotificationID: "NoNotificationID",
	FormatError:      "FormatError",
}

func (c ErrorCode) String() string {
	if c < 0 || c >= errorCodeCount {
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
	return errorNames[c]
}

// Error implements error so codes can be used as errors.Is targets.
func (c ErrorCode) Error() string {
	return c.Message("")
}

// Message renders the human readable message for c, substituting detail
// where the message takes one.
func (c ErrorCode) Message(detail string) string {
	if c < 0 || c >= errorCodeCount {
		return fmt.Sprintf("Unknown error %d", int(c))
	}
	msg := errorMessages[c]
	switch c {
	case NoError, NoNotificationID:
		return msg
	}
	return fmt.Sprintf(msg, detail)
}

// Error is the error recorded by a Session and returned by its protocol
// operations.
type Error struct {
	Code ErrorCode
	// Detail is the transport or parse message, may be empty.
	Detail string
	// Err is the underlying error, if any.
	Err error
}

func newError(code ErrorCode, err error) *Error {
	e := &Error{Code: code, Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	// a recorded error always carries some detail
	if e.Detail == "" {
		e.Detail = code.String()
	}
	return e
}

func (e *Error) Error() string {
	return e.Code.Message(e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same ErrorCode as e.
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}
