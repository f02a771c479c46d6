package tinynotify

import (
	"math"
	"time"

	"github.com/godbus/dbus/v5"
)

// Urgency is the priority level advising the server how to present a notification.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

const (
	// ExpireTimeoutSetByNotificationServer leaves the expiration to the server.
	ExpireTimeoutSetByNotificationServer time.Duration = -1 * time.Millisecond
	// ExpireTimeoutNever keeps the notification until it is dismissed.
	ExpireTimeoutNever time.Duration = 0
)

// Hint is a named, typed side-channel attribute of a notification.
type Hint struct {
	ID      string
	Variant dbus.Variant
}

// HintUrgency builds the "urgency" hint (BYTE).
func HintUrgency(u Urgency) Hint {
	return Hint{ID: "urgency", Variant: dbus.MakeVariant(byte(u))}
}

// HintCategory builds the "category" hint (STRING), e.g. "email.arrived".
func HintCategory(category string) Hint {
	return Hint{ID: "category", Variant: dbus.MakeVariant(category)}
}

// ActionHandler is called from Session.DispatchEvent when the user
// invokes an action of a notification.
type ActionHandler func(n *Notification, key string)

// ClosedHandler is called from Session.DispatchEvent when the server
// reports the notification closed.
type ClosedHandler func(n *Notification, reason Reason)

// Action binds a key, displayed with Label, to a handler.
type Action struct {
	Key     string
	Label   string
	Handler ActionHandler
}

// Notification holds the displayable content of one notification and the
// id the server assigned to it.
//
// A Notification holds no connection. It can be sent through any Session,
// but the same Notification must not be sent concurrently.
type Notification struct {
	summary string
	body    string

	// appIcon is used only when appIconSet, an empty value suppresses the
	// session default.
	appIcon    string
	appIconSet bool

	expireTimeout time.Duration

	urgency    Urgency
	urgencySet bool

	category   string
	formatting bool

	actions  []Action
	onClosed ClosedHandler

	id uint32
}

// NewNotification creates a notification. summary must not be empty,
// body may be.
//
// The icon is inherited from the session, the expiration and urgency are
// left to the server.
func NewNotification(summary, body string) *Notification {
	n := &Notification{expireTimeout: ExpireTimeoutSetByNotificationServer}
	n.SetSummary(summary)
	n.body = body
	return n
}

func (n *Notification) Summary() string { return n.summary }

// SetSummary replaces the summary. Panics on an empty summary.
func (n *Notification) SetSummary(summary string) {
	if summary == "" {
		panic("tinynotify: notification summary must not be empty")
	}
	n.summary = summary
}

func (n *Notification) Body() string { return n.body }

// SetBody replaces the body, "" means no body.
func (n *Notification) SetBody(body string) { n.body = body }

// AppIcon returns the icon override and whether one is set.
func (n *Notification) AppIcon() (string, bool) { return n.appIcon, n.appIconSet }

// SetAppIcon overrides the session icon. "" sends no icon at all.
func (n *Notification) SetAppIcon(icon string) {
	n.appIcon = icon
	n.appIconSet = true
}

// InheritAppIcon drops the override and uses the session icon again.
func (n *Notification) InheritAppIcon() {
	n.appIcon = ""
	n.appIconSet = false
}

func (n *Notification) ExpireTimeout() time.Duration { return n.expireTimeout }

// SetExpireTimeout sets how long the notification is shown, see
// ExpireTimeoutSetByNotificationServer and ExpireTimeoutNever.
func (n *Notification) SetExpireTimeout(timeout time.Duration) { n.expireTimeout = timeout }

// expireTimeoutMillis converts the timeout to the wire's INT32
// milliseconds, saturating instead of wrapping around.
func (n *Notification) expireTimeoutMillis() int32 {
	ms := n.expireTimeout.Milliseconds()
	switch {
	case ms > math.MaxInt32:
		return math.MaxInt32
	case ms < math.MinInt32:
		return math.MinInt32
	}
	return int32(ms)
}

// Urgency returns the urgency and whether one is set.
func (n *Notification) Urgency() (Urgency, bool) { return n.urgency, n.urgencySet }

func (n *Notification) SetUrgency(u Urgency) {
	n.urgency = u
	n.urgencySet = true
}

// UnsetUrgency lets the server decide.
func (n *Notification) UnsetUrgency() {
	n.urgency = 0
	n.urgencySet = false
}

func (n *Notification) Category() string { return n.category }

// SetCategory sets the category hint, "" removes it.
func (n *Notification) SetCategory(category string) { n.category = category }

func (n *Notification) Formatting() bool { return n.formatting }

// SetFormatting toggles treating summary and body as fmt templates
// rendered against the arguments given to Send and Update.
func (n *Notification) SetFormatting(enabled bool) { n.formatting = enabled }

// AddAction binds key to handler. Actions are offered to the server in
// the order they were added; an existing key is replaced in place.
func (n *Notification) AddAction(key, label string, handler ActionHandler) {
	for i := range n.actions {
		if n.actions[i].Key == key {
			n.actions[i] = Action{Key: key, Label: label, Handler: handler}
			return
		}
	}
	n.actions = append(n.actions, Action{Key: key, Label: label, Handler: handler})
}

// Actions returns a copy of the bound actions.
func (n *Notification) Actions() []Action {
	return append([]Action(nil), n.actions...)
}

func (n *Notification) ClearActions() { n.actions = nil }

// OnClosed sets the handler for the server closing the notification.
func (n *Notification) OnClosed(handler ClosedHandler) { n.onClosed = handler }

// ID returns the server-assigned id, 0 when not sent.
func (n *Notification) ID() uint32 { return n.id }

func (n *Notification) action(key string) (Action, bool) {
	for _, a := range n.actions {
		if a.Key == key {
			return a, true
		}
	}
	return Action{}, false
}

// wantsEvents reports whether the session should track n for DispatchEvent.
func (n *Notification) wantsEvents() bool {
	return len(n.actions) > 0 || n.onClosed != nil
}

// hints returns the hints in a fixed order: urgency, then category.
func (n *Notification) hints() []Hint {
	var hints []Hint
	if n.urgencySet {
		hints = append(hints, HintUrgency(n.urgency))
	}
	if n.category != "" {
		hints = append(hints, HintCategory(n.category))
	}
	return hints
}

// wireActions flattens the actions into (key, label) pairs.
func (n *Notification) wireActions() []string {
	actions := make([]string, 0, len(n.actions)*2)
	for _, a := range n.actions {
		actions = append(actions, a.Key, a.Label)
	}
	return actions
}

// Reason for the closed notification
type Reason uint32

const (
	// ReasonExpired when a notification expired
	ReasonExpired Reason = 1

	// ReasonDismissedByUser when a notification has been dismissed by a user
	ReasonDismissedByUser Reason = 2

	// ReasonClosedByCall when a notification has been closed by a call to CloseNotification
	ReasonClosedByCall Reason = 3

	// ReasonUnknown when as notification has been closed for an unknown reason
	ReasonUnknown Reason = 4
)

func (r Reason) String() string {
	switch r {
	case ReasonExpired:
		return "Expired"
	case ReasonDismissedByUser:
		return "DismissedByUser"
	case ReasonClosedByCall:
		return "ClosedByCall"
	case ReasonUnknown:
		return "Unknown"
	default:
		return "Other"
	}
}
