package transport

import (
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP owns a bound listener and the accept loop over it. The loop is
// periodically interrupted via listener deadlines so Stop() is observed
// without an extra wakeup connection.
type TCP struct {
	l    listener
	wg   *sync.WaitGroup
	stop *atomic.Bool
}

func NewTCP() *TCP {
	tcp := newTCP(nil)
	return &tcp
}

func newTCP(l listener) TCP {
	return TCP{
		l:    l,
		wg:   new(sync.WaitGroup),
		stop: new(atomic.Bool),
	}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	return net.ListenTCP("tcp", tcpaddr)
}

func (t *TCP) Bind(addr string) (err error) {
	t.l, err = bindTCP(addr)
	return err
}

// Addr reports the actually bound address, which matters when binding
// port 0.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Listen accepts until Stop() is observed, dispatching every accepted
// connection onto its own goroutine. The connection is closed when the
// callback returns, whatever the exit path.
func (t *TCP) Listen(interruptPeriod time.Duration, cb func(conn net.Conn)) error {
	for !t.stop.Load() {
		err := t.l.SetDeadline(time.Now().Add(interruptPeriod))
		if err != nil {
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			if operr, ok := err.(*net.OpError); ok && operr.Err.Error() == os.ErrDeadlineExceeded.Error() {
				continue
			}

			if t.stop.Load() {
				return nil
			}

			return err
		}

		t.wg.Add(1)
		go func(conn net.Conn) {
			cb(conn)
			_ = conn.Close()
			t.wg.Done()
		}(conn)
	}

	return nil
}

// Stop asks the accept loop to leave at the next deadline tick.
func (t *TCP) Stop() {
	t.stop.Store(true)
	_ = t.l.SetDeadline(time.Now())
}

// Close releases the port immediately.
func (t *TCP) Close() {
	_ = t.l.Close()
}

// Wait blocks until all in-flight connection handlers return.
func (t *TCP) Wait() {
	t.wg.Wait()
}
