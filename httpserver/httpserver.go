package httpserver

import (
	"errors"
	"net"
	"strings"
	"time"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/http"
	"github.com/minum-web/minum/http/form"
	"github.com/minum-web/minum/http/headers"
	"github.com/minum-web/minum/http/proto"
	"github.com/minum-web/minum/http/requestline"
	"github.com/minum-web/minum/http/status"
	"github.com/minum-web/minum/internal/multipart"
	"github.com/minum-web/minum/internal/stream"
	"github.com/minum-web/minum/internal/urlencoded"
	"github.com/minum-web/minum/router"
)

// Picker chooses a handler from the request line alone. It is consulted
// after headers and body are read, in place of the router; when nil, the
// router decides.
type Picker func(requestline.RequestLine) http.Handler

// Server is the per-connection HTTP engine: it owns the parse-dispatch-
// serialize loop and the keep-alive lifecycle. It is safe to share across
// connections, as all per-connection state lives on the Handle stack.
type Server struct {
	cfg    *config.Config
	router *router.Router
	picker Picker
	clock  Clock
}

func New(cfg *config.Config, r *router.Router) *Server {
	return &Server{
		cfg:    cfg,
		router: r,
		clock:  time.Now,
	}
}

// Clock pins the date-header clock, mainly for tests.
func (s *Server) Clock(clock Clock) *Server {
	s.clock = clock
	return s
}

// Dispatch installs a dispatch-time handler picker that takes precedence
// over the router.
func (s *Server) Dispatch(picker Picker) *Server {
	s.picker = picker
	return s
}

// Handle runs the request/response loop over one accepted connection until
// the peer leaves, a parse failure occurs, or keep-alive ends. The
// connection is closed on every exit path.
func (s *Server) Handle(conn net.Conn) {
	defer conn.Close()

	reader := stream.New(conn, s.cfg)
	ser := newSerializer(s.clock, s.cfg.NET.KeepAliveTimeout)

	for s.serve(conn, reader, ser) {
	}
}

func (s *Server) serve(conn net.Conn, reader *stream.Reader, ser *serializer) (again bool) {
	_ = conn.SetReadDeadline(time.Now().Add(s.cfg.NET.ReadTimeout))

	line, err := reader.ReadLine()
	if err != nil {
		// a line over the cap is a limit violation and earns a response;
		// EOF, reset or a timed out peer closes silently
		if errors.Is(err, status.ErrLineTooLong) {
			s.respondError(conn, ser, err)
		}

		return false
	}

	reqLine, err := requestline.Extract(line, s.cfg.URI)
	if err != nil {
		s.respondError(conn, ser, err)
		return false
	}

	hdrs, err := headers.ReadFrom(reader, s.cfg.Headers)
	if err != nil {
		s.respondError(conn, ser, err)
		return false
	}

	body, err := s.readBody(reader, hdrs)
	if err != nil {
		s.respondError(conn, ser, err)
		return false
	}

	keepAlive := isKeepAlive(reqLine.Proto, hdrs)

	handler := s.findHandler(reqLine)
	if handler == nil {
		return s.write(conn, ser.Serialize(http.NotFound(), keepAlive)) && keepAlive
	}

	request := http.NewRequest(reqLine, hdrs, body, remoteOf(conn))
	response := s.invoke(handler, request)
	if response == nil {
		s.respondError(conn, ser, status.NewError(status.InternalServerError, "handler failure"))
		return false
	}

	return s.write(conn, ser.Serialize(response, keepAlive)) && keepAlive
}

func (s *Server) findHandler(line requestline.RequestLine) http.Handler {
	if s.picker != nil {
		return s.picker(line)
	}

	return s.router.Find(line)
}

// invoke shields the engine from panicking handlers.
func (s *Server) invoke(handler http.Handler, request *http.Request) (response *http.Response) {
	defer func() {
		if recover() != nil {
			response = nil
		}
	}()

	return handler(request)
}

// HasBody decides whether the headers announce a request body: either a
// chunked transfer encoding, or a content type with a positive content
// length. A content type with no usable framing headers is not a body, and
// neither is an unknown transfer encoding.
func HasBody(h *headers.Headers) bool {
	if h.IsChunked() {
		return true
	}

	if h.ContentType() == "" {
		return false
	}

	length, err := h.ContentLength()
	return err == nil && length > 0
}

func (s *Server) readBody(reader *stream.Reader, hdrs *headers.Headers) (*form.Body, error) {
	if !HasBody(hdrs) {
		return form.Empty(), nil
	}

	var raw []byte

	if hdrs.IsChunked() {
		var err error
		if raw, err = reader.ReadChunked(); err != nil {
			return nil, err
		}
	} else {
		length, err := hdrs.ContentLength()
		if err != nil {
			return nil, err
		}

		if length > s.cfg.Body.MaxSize {
			return nil, status.ErrBodyTooLarge
		}

		if raw, err = reader.Read(length); err != nil {
			return nil, err
		}
	}

	contentType := hdrs.ContentType()
	switch {
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		return urlencoded.Parse(raw)
	case strings.HasPrefix(contentType, "multipart/form-data"):
		boundary := boundaryOf(contentType)
		if boundary == "" {
			return nil, status.ErrBadRequest
		}

		return multipart.Parse(raw, boundary, s.cfg.Headers)
	default:
		return form.Raw(raw), nil
	}
}

// boundaryOf pulls the boundary parameter out of a multipart content-type
// value.
func boundaryOf(contentType string) string {
	for _, param := range strings.Split(contentType, ";") {
		param = strings.TrimSpace(param)

		if value, found := strings.CutPrefix(param, "boundary="); found {
			value = strings.TrimPrefix(value, `"`)
			return strings.TrimSuffix(value, `"`)
		}
	}

	return ""
}

// isKeepAlive implements the asymmetric defaults of the two protocol
// versions: 1.1 stays open unless told to close, 1.0 closes unless asked to
// stay open.
func isKeepAlive(p proto.Proto, h *headers.Headers) bool {
	connection := strings.ToLower(h.Value("connection"))

	switch p {
	case proto.HTTP11:
		return connection != "close"
	case proto.HTTP10:
		return connection == "keep-alive"
	default:
		return false
	}
}

func (s *Server) respondError(conn net.Conn, ser *serializer, err error) {
	var httpErr status.HTTPError
	code := status.BadRequest
	if errors.As(err, &httpErr) {
		code = httpErr.Code
	}

	s.write(conn, ser.Serialize(http.NewResponse().Code(code), false))
}

func (s *Server) write(conn net.Conn, data []byte) bool {
	_, err := conn.Write(data)
	return err == nil
}

func remoteOf(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}

	return ""
}
