package stream

import (
	"bufio"
	"io"

	"github.com/indigo-web/chunkedbody"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/http/status"
)

// Reader wraps a connection's raw byte stream with line-oriented, bounded
// and chunk-decoding reads. All limits come from the config passed at
// construction; the Reader itself carries no policy.
type Reader struct {
	src     *bufio.Reader
	cfg     *config.Config
	chunked *chunkedbody.Parser
	lineBuf []byte
}

func New(src io.Reader, cfg *config.Config) *Reader {
	return &Reader{
		src:     bufio.NewReaderSize(src, cfg.NET.ReadBufferSize),
		cfg:     cfg,
		chunked: chunkedbody.NewParser(chunkedbody.DefaultSettings()),
	}
}

// ReadLine reads up to the next '\n' and returns the line without its
// terminator, stripping a trailing '\r' if present. Both CRLF and bare LF
// are accepted. Hitting end-of-stream with zero bytes read returns io.EOF;
// a line longer than NET.MaxLineSize fails with status.ErrLineTooLong.
func (r *Reader) ReadLine() (string, error) {
	r.lineBuf = r.lineBuf[:0]

	for {
		char, err := r.src.ReadByte()
		if err != nil {
			if err == io.EOF && len(r.lineBuf) > 0 {
				return string(r.lineBuf), nil
			}

			return "", err
		}

		if char == '\n' {
			line := r.lineBuf
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}

			return string(line), nil
		}

		if len(r.lineBuf) >= r.cfg.NET.MaxLineSize {
			return "", status.ErrLineTooLong
		}

		r.lineBuf = append(r.lineBuf, char)
	}
}

// Read reads exactly n bytes or fails. n greater than Body.MaxSize is
// rejected before a single byte is consumed.
func (r *Reader) Read(n int) ([]byte, error) {
	if n > r.cfg.Body.MaxSize {
		return nil, status.ErrBodyTooLarge
	}

	data := make([]byte, n)
	if _, err := io.ReadFull(r.src, data); err != nil {
		return nil, status.ErrBadRequest
	}

	return data, nil
}

// ReadChunked decodes a chunked transfer encoding off the stream per
// RFC 7230 section 4.1: hex-length-prefixed chunks terminated by a
// zero-length chunk, with optional trailer fields consumed up to the final
// blank line. The decoded payload is binary-safe and capped by Body.MaxSize.
func (r *Reader) ReadChunked() ([]byte, error) {
	var body []byte

	for {
		data, err := r.buffered()
		if err != nil {
			return nil, status.ErrBadChunk
		}

		chunk, extra, err := r.chunked.Parse(data, true)
		if err != nil && err != io.EOF {
			return nil, status.ErrBadChunk
		}

		if len(body)+len(chunk) > r.cfg.Body.MaxSize {
			return nil, status.ErrBodyTooLarge
		}

		// the chunk aliases the bufio window, so it must be copied out
		// before the discard below
		body = append(body, chunk...)

		if _, derr := r.src.Discard(len(data) - len(extra)); derr != nil {
			return nil, status.ErrBadChunk
		}

		if err == io.EOF {
			return body, nil
		}
	}
}

// buffered returns the currently windowed bytes, blocking for at least one
// byte if the buffer is empty.
func (r *Reader) buffered() ([]byte, error) {
	if r.src.Buffered() == 0 {
		if _, err := r.src.Peek(1); err != nil {
			return nil, err
		}
	}

	return r.src.Peek(r.src.Buffered())
}
