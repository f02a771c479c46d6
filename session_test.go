package tinynotify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s := NewSession(WithAppName("foobar"), WithAppIcon("web-browser"))
	require.Equal(t, "foobar", s.AppName())
	require.Equal(t, "web-browser", s.AppIcon())
	require.False(t, s.Connected())
	require.Equal(t, NoError, s.ErrorCode())
	require.Empty(t, s.ErrorDetail())
	require.NoError(t, s.Err())
	require.Equal(t, "No error", s.ErrorMessage())
}

func TestConnectIsIdempotent(t *testing.T) {
	s, _, d := newTestSession()

	require.NoError(t, s.Connect())
	require.NoError(t, s.Connect())
	require.True(t, s.Connected())
	require.Equal(t, 1, d.dials)
}

func TestConnectFailed(t *testing.T) {
	s, _, d := newTestSession()
	d.err = errors.New("no session bus")

	err := s.Connect()
	require.ErrorIs(t, err, ConnectFailed)
	require.Equal(t, ConnectFailed, s.ErrorCode())
	require.Equal(t, "no session bus", s.ErrorDetail())
	require.Equal(t, "Connecting to D-Bus failed: no session bus", s.ErrorMessage())
	require.False(t, s.Connected())

	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, d.err, errors.Unwrap(e))
}

func TestDisconnect(t *testing.T) {
	s, conn, d := newTestSession()

	// never connected
	s.Disconnect()
	require.Equal(t, 0, d.dials)

	require.NoError(t, s.Connect())
	s.Disconnect()
	require.True(t, conn.closed)
	require.False(t, s.Connected())
	s.Disconnect()

	require.NoError(t, s.Connect())
	require.Equal(t, 2, d.dials)
}

func TestDisconnectResetsError(t *testing.T) {
	s, conn, _ := newTestSession()
	n := NewNotification("foo", "bar")
	conn.fail(callNotify, errors.New("timeout"))

	require.Error(t, s.Send(n))
	require.Equal(t, SendFailed, s.ErrorCode())

	s.Disconnect()
	require.Equal(t, NoError, s.ErrorCode())
	require.Empty(t, s.ErrorDetail())
}

func TestSessionDefaultsCanBeCleared(t *testing.T) {
	s, conn, _ := newTestSession(WithAppName("foobar"), WithAppIcon("web-browser"))
	s.SetAppName("")
	s.SetAppIcon("")
	conn.reply(callNotify, uint32(1))

	require.NoError(t, s.Send(NewNotification("foo", "")))
	args := conn.lastCall().Args
	require.Equal(t, "", args[0])
	require.Equal(t, "", args[2])
}
