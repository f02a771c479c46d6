package tinynotify

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoErrorIsZero(t *testing.T) {
	require.EqualValues(t, 0, NoError)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		detail string
		want   string
	}{
		{NoError, "", "No error"},
		{ConnectFailed, "no bus", "Connecting to D-Bus failed: no bus"},
		{SendFailed, "timeout", "Sending message over D-Bus failed: timeout"},
		{InvalidReply, "type mismatch", "Invalid reply received: type mismatch"},
		{NoNotificationID, "ignored", "No notification-id available (not sent yet?)"},
		{FormatError, "2 != 1", "Formatting notification failed: 2 != 1"},
		{ErrorCode(99), "", "Unknown error 99"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.code.Message(tt.detail), tt.code.String())
	}
	require.Equal(t, "ErrorCode(99)", ErrorCode(99).String())
}

func TestErrorMatching(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("sending: %w", newError(SendFailed, cause))

	require.ErrorIs(t, err, SendFailed)
	require.NotErrorIs(t, err, InvalidReply)
	require.ErrorIs(t, err, cause)

	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "connection reset", e.Detail)
}

func TestErrorAlwaysHasDetail(t *testing.T) {
	e := newError(NoNotificationID, nil)
	require.NotEmpty(t, e.Detail)
	require.Nil(t, e.Unwrap())
}
