package transport

import (
	"crypto/tls"
	"net"
)

// TLS is TCP with a tls.Listener layered over the bound socket.
type TLS struct {
	config *tls.Config
	TCP
}

func NewTLS(config *tls.Config) *TLS {
	return &TLS{config: config}
}

func (t *TLS) Bind(addr string) error {
	tcp, err := bindTCP(addr)
	if err != nil {
		return err
	}

	l := tls.NewListener(tcp, t.config)
	t.TCP = newTCP(tlsAdapter{tcp, l})

	return nil
}

type tlsAdapter struct {
	*net.TCPListener
	tls net.Listener
}

func (t tlsAdapter) Accept() (net.Conn, error) {
	return t.tls.Accept()
}
