package minum

import (
	"net"
	"strconv"
	"time"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/httpserver"
	"github.com/minum-web/minum/router"
	"github.com/minum-web/minum/transport"
)

// ConnHandler is a raw, socket-level handler. The composed HTTP engine is
// one of these; tests and the redirect responder are others.
type ConnHandler func(net.Conn)

// closeGrace bounds how long Close waits for in-flight handlers. Handlers
// hit their read deadlines shortly after anyway.
const closeGrace = 100 * time.Millisecond

// App assembles the framework: configuration, route tables and listeners.
// Routes are registered before one of the Start variants binds; after that
// the tables are read-only.
type App struct {
	cfg    *config.Config
	router *router.Router
	clock  httpserver.Clock
}

// New returns an App over the given config, or the defaults when nil.
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	return &App{
		cfg:    cfg,
		router: router.New(),
		clock:  time.Now,
	}
}

// Router exposes the route tables for registration.
func (a *App) Router() *router.Router {
	return a.router
}

// Config exposes the live configuration. Mutate it before starting only.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Clock pins the date-header clock, mainly for deterministic tests.
func (a *App) Clock(clock httpserver.Clock) *App {
	a.clock = clock
	return a
}

// Start binds the plain port and serves the composed HTTP engine on it.
func (a *App) Start() (*Server, error) {
	engine := httpserver.New(a.cfg, a.router).Clock(a.clock)
	return a.StartWith(engine.Handle)
}

// StartDispatch is Start with a dispatch-time handler picker installed,
// bypassing the route tables.
func (a *App) StartDispatch(picker httpserver.Picker) (*Server, error) {
	engine := httpserver.New(a.cfg, a.router).Clock(a.clock).Dispatch(picker)
	return a.StartWith(engine.Handle)
}

// StartWith binds the plain port and hands every accepted connection to the
// injected raw handler. This is the seam tests hang off.
func (a *App) StartWith(handler ConnHandler) (*Server, error) {
	tcp := transport.NewTCP()
	if err := tcp.Bind(a.addr(a.cfg.Host.Port)); err != nil {
		return nil, err
	}

	return a.serve(tcp, handler), nil
}

// StartRedirect serves the HTTP-to-HTTPS redirect responder on the plain
// port.
func (a *App) StartRedirect() (*Server, error) {
	return a.StartWith(httpserver.Redirect(a.cfg.Host.Hostname, a.cfg))
}

// StartTLS binds the TLS port and serves the HTTP engine over it. On
// localhost a self-signed certificate is generated; elsewhere certificates
// are obtained via ACME for the given domains.
func (a *App) StartTLS(domains ...string) (*Server, error) {
	tlsConfig, err := a.tlsConfig(domains)
	if err != nil {
		return nil, err
	}

	tls := transport.NewTLS(tlsConfig)
	if err := tls.Bind(a.addr(a.cfg.Host.TLSPort)); err != nil {
		return nil, err
	}

	engine := httpserver.New(a.cfg, a.router).Clock(a.clock)
	return a.serve(tls, engine.Handle), nil
}

func (a *App) addr(port uint16) string {
	return net.JoinHostPort(a.cfg.Host.Hostname, strconv.Itoa(int(port)))
}

func (a *App) serve(tr serverTransport, handler ConnHandler) *Server {
	s := &Server{
		tr:   tr,
		done: make(chan error, 1),
	}

	go func() {
		s.done <- tr.Listen(a.cfg.NET.AcceptLoopInterruptPeriod, func(conn net.Conn) {
			handler(conn)
		})
	}()

	return s
}

type serverTransport interface {
	Listen(interruptPeriod time.Duration, cb func(net.Conn)) error
	Addr() net.Addr
	Stop()
	Close()
	Wait()
}

// Server is one bound, accepting listener. Close interrupts the accept
// loop, releases the port and briefly awaits in-flight handlers. It does not
// close already accepted connections; their handlers end when the peer
// leaves or the read deadline passes.
type Server struct {
	tr   serverTransport
	done chan error
}

// Host reports the bound host.
func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(s.tr.Addr().String())
	return host
}

// Port reports the actually bound port, which matters when configured with
// port 0.
func (s *Server) Port() int {
	_, port, _ := net.SplitHostPort(s.tr.Addr().String())
	n, _ := strconv.Atoi(port)
	return n
}

// Addr reports host:port in dialable form.
func (s *Server) Addr() string {
	return s.tr.Addr().String()
}

func (s *Server) Close() error {
	s.tr.Stop()
	err := <-s.done
	s.tr.Close()
	awaitBriefly(s.tr.Wait, closeGrace)

	return err
}

func awaitBriefly(wait func(), grace time.Duration) {
	drained := make(chan struct{})
	go func() {
		wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(grace):
	}
}
