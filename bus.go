package tinynotify

import (
	"context"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	dbusRemoveMatch            = "org.freedesktop.DBus.RemoveMatch"
	dbusAddMatch               = "org.freedesktop.DBus.AddMatch"
	dbusObjectPath             = "/org/freedesktop/Notifications" // the DBUS object path
	dbusNotificationsInterface = "org.freedesktop.Notifications"  // DBUS Interface
	signalNotificationClosed   = "org.freedesktop.Notifications.NotificationClosed"
	signalActionInvoked        = "org.freedesktop.Notifications.ActionInvoked"
	callGetCapabilities        = "org.freedesktop.Notifications.GetCapabilities"
	callCloseNotification      = "org.freedesktop.Notifications.CloseNotification"
	callNotify                 = "org.freedesktop.Notifications.Notify"
	callGetServerInformation   = "org.freedesktop.Notifications.GetServerInformation"

	signalMatchRule   = "type='signal',path='" + dbusObjectPath + "',interface='" + dbusNotificationsInterface + "'"
	channelBufferSize = 10
)

// Conn is the bus client a Session talks through. It is owned by exactly
// one Session.
type Conn interface {
	// Call invokes method on the notification service object and blocks
	// until a reply arrives or ctx is done. It returns the reply body.
	Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error)
	// Signals subscribes to the notification service signals. Repeated
	// calls return the same channel.
	Signals() (<-chan *dbus.Signal, error)
	// Close releases the connection.
	Close() error
}

// Dialer opens a new Conn.
type Dialer func() (Conn, error)

// SessionBusDialer opens a private connection to the session bus.
//
// A private connection leaves any shared connection of the host
// application alone. godbus never terminates the process when the bus
// goes away, errors are reported through the calls instead.
func SessionBusDialer() (Conn, error) {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, err
	}
	if err = conn.Auth(nil); err != nil {
		conn.Close()
		return nil, err
	}
	if err = conn.Hello(); err != nil {
		conn.Close()
		return nil, err
	}
	return NewConn(conn), nil
}

// dbusConn implements Conn on a godbus connection.
type dbusConn struct {
	conn *dbus.Conn
	obj  dbus.BusObject

	mu     sync.Mutex
	signal chan *dbus.Signal
}

// NewConn wraps an established godbus connection. The returned Conn owns
// conn and closes it on Close.
func NewConn(conn *dbus.Conn) Conn {
	return &dbusConn{
		conn: conn,
		obj:  conn.Object(dbusNotificationsInterface, dbusObjectPath),
	}
}

func (c *dbusConn) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	call := c.obj.CallWithContext(ctx, method, 0, args...)
	if call.Err != nil {
		return nil, call.Err
	}
	return call.Body, nil
}

func (c *dbusConn) Signals() (<-chan *dbus.Signal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.signal != nil {
		return c.signal, nil
	}

	// add a listener in dbus for signals to Notification interface.
	call := c.conn.BusObject().Call(dbusAddMatch, 0, signalMatchRule)
	if call.Err != nil {
		return nil, call.Err
	}

	c.signal = make(chan *dbus.Signal, channelBufferSize)
	// register in dbus for signal delivery
	c.conn.Signal(c.signal)
	return c.signal, nil
}

func (c *dbusConn) Close() error {
	c.mu.Lock()
	if c.signal != nil {
		c.conn.BusObject().Call(dbusRemoveMatch, 0, signalMatchRule)
		c.conn.RemoveSignal(c.signal)
		c.signal = nil
	}
	c.mu.Unlock()
	return c.conn.Close()
}
