package httpserver

import (
	"strconv"
	"time"

	"github.com/minum-web/minum/http"
	"github.com/minum-web/minum/http/status"
)

// Clock produces the moment stamped into the date header. Injected so tests
// can pin it.
type Clock func() time.Time

const dateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// serializer renders responses into a reused buffer. One instance belongs
// to exactly one connection, so no locking.
type serializer struct {
	clock            Clock
	keepAliveTimeout int
	buff             []byte
}

func newSerializer(clock Clock, keepAliveTimeout time.Duration) *serializer {
	return &serializer{
		clock:            clock,
		keepAliveTimeout: int(keepAliveTimeout.Seconds()),
	}
}

// Serialize renders the full wire form of the response. Output always uses
// CRLF line endings regardless of what the peer sent.
func (s *serializer) Serialize(resp *http.Response, keepAlive bool) []byte {
	fields := resp.Reveal()
	s.buff = s.buff[:0]

	s.buff = append(s.buff, "HTTP/1.1 "...)
	s.buff = strconv.AppendInt(s.buff, int64(fields.Code), 10)
	s.sp()
	s.buff = append(s.buff, status.Text(fields.Code)...)
	s.crlf()

	s.header("date", s.clock().UTC().Format(dateFormat))
	s.header("server", "minum")

	if len(fields.ContentType) > 0 {
		s.header("content-type", fields.ContentType)
	}

	s.buff = append(s.buff, "content-length: "...)
	s.buff = strconv.AppendInt(s.buff, int64(len(fields.Body)), 10)
	s.crlf()

	for _, pair := range fields.Headers {
		s.header(pair.Key, pair.Value)
	}

	if keepAlive {
		s.header("connection", "keep-alive")
		s.header("keep-alive", "timeout="+strconv.Itoa(s.keepAliveTimeout))
	}

	s.crlf()
	s.buff = append(s.buff, fields.Body...)

	return s.buff
}

func (s *serializer) header(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, ':', ' ')
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *serializer) crlf() {
	s.buff = append(s.buff, '\r', '\n')
}
