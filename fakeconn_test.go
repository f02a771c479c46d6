package tinynotify

import (
	"context"
	"errors"

	"github.com/godbus/dbus/v5"
)

type recordedCall struct {
	Method string
	Args   []interface{}
}

type fakeReply struct {
	body []interface{}
	err  error
}

// fakeConn records outgoing calls and answers them from a script.
type fakeConn struct {
	calls   []recordedCall
	replies map[string][]fakeReply
	signals chan *dbus.Signal
	closed  bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		replies: make(map[string][]fakeReply),
		signals: make(chan *dbus.Signal, channelBufferSize),
	}
}

func (c *fakeConn) reply(method string, body ...interface{}) {
	c.replies[method] = append(c.replies[method], fakeReply{body: body})
}

func (c *fakeConn) fail(method string, err error) {
	c.replies[method] = append(c.replies[method], fakeReply{err: err})
}

func (c *fakeConn) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	c.calls = append(c.calls, recordedCall{Method: method, Args: args})
	queue := c.replies[method]
	if len(queue) == 0 {
		return nil, errors.New("no reply scripted for " + method)
	}
	r := queue[0]
	c.replies[method] = queue[1:]
	return r.body, r.err
}

func (c *fakeConn) Signals() (<-chan *dbus.Signal, error) {
	return c.signals, nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func (c *fakeConn) lastCall() recordedCall {
	return c.calls[len(c.calls)-1]
}

// fakeDialer hands out conn and counts how often it was asked to.
type fakeDialer struct {
	conn  *fakeConn
	err   error
	dials int
}

func (d *fakeDialer) dial() (Conn, error) {
	d.dials++
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

func newTestSession(opts ...Option) (*Session, *fakeConn, *fakeDialer) {
	d := &fakeDialer{conn: newFakeConn()}
	s := NewSession(append([]Option{WithDialer(d.dial)}, opts...)...)
	return s, d.conn, d
}
