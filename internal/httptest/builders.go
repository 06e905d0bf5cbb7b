package httptest

import (
	"bytes"
	"fmt"

	"github.com/dchest/uniuri"
)

// Part is one section of a synthetic multipart body.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Data        []byte
}

// Boundary generates a random boundary token permitted by RFC 2046.
func Boundary() string {
	return uniuri.New()
}

// Multipart frames the parts with the given boundary token exactly the way
// a browser would: every separator preceded by two dashes, CRLF line
// endings, and a terminal dash-dash suffix.
func Multipart(boundary string, parts ...Part) []byte {
	var buff bytes.Buffer

	for _, part := range parts {
		buff.WriteString("--" + boundary + "\r\n")
		if part.ContentType != "" {
			buff.WriteString("Content-Type: " + part.ContentType + "\r\n")
		}

		disposition := fmt.Sprintf("form-data; name=%q", part.Name)
		if part.Filename != "" {
			disposition += fmt.Sprintf("; filename=%q", part.Filename)
		}

		buff.WriteString("Content-Disposition: " + disposition + "\r\n\r\n")
		buff.Write(part.Data)
		buff.WriteString("\r\n")
	}

	buff.WriteString("--" + boundary + "--\r\n")

	return buff.Bytes()
}

// Chunked frames the payload as a chunked transfer encoding, cutting it
// into chunks of at most size bytes.
func Chunked(payload []byte, size int) []byte {
	var buff bytes.Buffer

	for len(payload) > 0 {
		n := size
		if n > len(payload) {
			n = len(payload)
		}

		fmt.Fprintf(&buff, "%x\r\n", n)
		buff.Write(payload[:n])
		buff.WriteString("\r\n")
		payload = payload[n:]
	}

	buff.WriteString("0\r\n\r\n")

	return buff.Bytes()
}
