/*
Package tinynotify is a small client for the desktop notification interface
over D-Bus.
See: https://specifications.freedesktop.org/notification-spec/latest/ and
https://github.com/godbus/dbus

A Session owns the bus connection and the default application name and
icon. A Notification holds what is displayed. Sending a Notification
through a Session stores the id the server allocated for it in the
Notification:

	s := tinynotify.NewSession(tinynotify.WithAppName("foobar"), tinynotify.WithAppIcon("web-browser"))
	defer s.Close()

	n := tinynotify.NewNotification("foo", "bar")
	if err := s.Send(n); err != nil {
		log.Fatal(err)
	}

The id can then be used to atomically replace the notification (Update)
or to hide it before the expiration timeout is reached (CloseNotification).

Every protocol operation records its outcome in the Session: ErrorCode,
ErrorDetail and ErrorMessage report on the last operation, successful
operations reset them.
*/
package tinynotify
