package tinynotify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ServerInformation is a holder for information returned by
// GetServerInformation call.
type ServerInformation struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// call performs one blocking method call bounded by the session timeout.
func (s *Session) call(method string, args ...interface{}) ([]interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
	defer cancel()
	return s.conn.Call(ctx, method, args...)
}

// ensureConnected connects unless connected; the returned error is
// already recorded.
func (s *Session) ensureConnected() error {
	if s.conn != nil {
		return nil
	}
	return s.Connect()
}

// Send displays n as a new notification. Any id stored in n is dropped
// first, so the server always allocates a new one.
//
// With formatting enabled, args are substituted into the summary and then
// the body, see Notification.SetFormatting.
func (s *Session) Send(n *Notification, args ...interface{}) error {
	n.id = 0
	return s.deliver(n, args)
}

// Update replaces the notification previously displayed for n with its
// current content. If n was never sent, a new notification is created.
func (s *Session) Update(n *Notification, args ...interface{}) error {
	return s.deliver(n, args)
}

// deliver implements dbus call:
//
//	UINT32 org.freedesktop.Notifications.Notify (
//	    STRING app_name,
//	    UINT32 replaces_id,
//	    STRING app_icon,
//	    STRING summary,
//	    STRING body,
//	    ARRAY  actions,
//	    DICT   hints,
//	    INT32  expire_timeout
//	);
//
// If replaces_id is 0, the server allocates a new id. Otherwise the reply
// is the same value as replaces_id.
func (s *Session) deliver(n *Notification, args []interface{}) error {
	if err := s.ensureConnected(); err != nil {
		return err
	}

	appIcon := s.appIcon
	if icon, ok := n.AppIcon(); ok {
		appIcon = icon
	}

	summary, body := n.summary, n.body
	if n.formatting {
		var err error
		summary, body, err = render(n.summary, n.body, args)
		if err != nil {
			return s.setError(newError(FormatError, err))
		}
	}

	hints := make(map[string]dbus.Variant)
	for _, h := range n.hints() {
		hints[h.ID] = h.Variant
	}

	reply, err := s.call(callNotify,
		s.appName,
		n.id,
		appIcon,
		summary,
		body,
		n.wireActions(),
		hints,
		n.expireTimeoutMillis())
	if err != nil {
		s.log.Printf("error calling %v: %v", callNotify, err)
		return s.setError(newError(SendFailed, err))
	}

	var id uint32
	if err := dbus.Store(reply, &id); err != nil {
		s.log.Printf("error getting uint32 ret value: %v", err)
		return s.setError(newError(InvalidReply, err))
	}

	// events for ids n no longer holds must not reach its handlers
	for tracked, owner := range s.tracked {
		if owner == n && tracked != id {
			delete(s.tracked, tracked)
		}
	}
	n.id = id
	if n.wantsEvents() {
		s.tracked[id] = n
	}
	return s.setError(nil)
}

// CloseNotification causes a notification to be forcefully closed and
// removed from the user's view. On success the id stored in n is cleared.
//
// The server emits the NotificationClosed signal for it.
func (s *Session) CloseNotification(n *Notification) error {
	if n.id == 0 {
		return s.setError(newError(NoNotificationID, nil))
	}
	if err := s.ensureConnected(); err != nil {
		return err
	}

	body, err := s.call(callCloseNotification, n.id)
	if err != nil {
		s.log.Printf("error calling %v: %v", callCloseNotification, err)
		return s.setError(newError(SendFailed, err))
	}
	if len(body) != 0 {
		return s.setError(newError(InvalidReply,
			fmt.Errorf("expected no return values, got %d", len(body))))
	}

	// keep waiting for the NotificationClosed signal if someone listens
	if n.onClosed == nil {
		delete(s.tracked, n.id)
	}
	n.id = 0
	return s.setError(nil)
}

// Capabilities gets the capabilities of the notification server.
// Each string describes an optional capability implemented by the server,
// e.g. "actions" or "body-markup".
func (s *Session) Capabilities() ([]string, error) {
	if err := s.ensureConnected(); err != nil {
		return nil, err
	}
	body, err := s.call(callGetCapabilities)
	if err != nil {
		s.log.Printf("error calling %v: %v", callGetCapabilities, err)
		return nil, s.setError(newError(SendFailed, err))
	}
	var ret []string
	if err := dbus.Store(body, &ret); err != nil {
		s.log.Printf("error getting capabilities ret value: %v", err)
		return nil, s.setError(newError(InvalidReply, err))
	}
	return ret, s.setError(nil)
}

// ServerInformation returns the information on the server.
//
//	Name		 Type	  Description
//	name		 STRING	  The product name of the server.
//	vendor		 STRING	  The vendor name. For example, "KDE," "GNOME," "freedesktop.org," or "Microsoft."
//	version		 STRING	  The server's version number.
//	spec_version STRING	  The specification version the server is compliant with.
func (s *Session) ServerInformation() (ServerInformation, error) {
	if err := s.ensureConnected(); err != nil {
		return ServerInformation{}, err
	}
	body, err := s.call(callGetServerInformation)
	if err != nil {
		s.log.Printf("error calling %v: %v", callGetServerInformation, err)
		return ServerInformation{}, s.setError(newError(SendFailed, err))
	}
	ret := ServerInformation{}
	if err := dbus.Store(body, &ret.Name, &ret.Vendor, &ret.Version, &ret.SpecVersion); err != nil {
		s.log.Printf("error reading %v return values: %v", callGetServerInformation, err)
		return ServerInformation{}, s.setError(newError(InvalidReply, err))
	}
	return ret, s.setError(nil)
}
