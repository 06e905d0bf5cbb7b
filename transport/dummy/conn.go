package dummy

import (
	"bytes"
	"net"
	"time"
)

// Conn is an in-memory net.Conn double: it serves the bytes it was created
// with and captures everything written back.
type Conn struct {
	reader *bytes.Reader
	Out    bytes.Buffer
	closed bool
}

func NewConn(data []byte) *Conn {
	return &Conn{reader: bytes.NewReader(data)}
}

func (c *Conn) Read(b []byte) (int, error) {
	return c.reader.Read(b)
}

func (c *Conn) Write(b []byte) (int, error) {
	return c.Out.Write(b)
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

func (c *Conn) Closed() bool {
	return c.closed
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return nil
}

func (c *Conn) SetDeadline(t time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(t time.Time) error {
	return nil
}
