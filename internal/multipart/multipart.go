package multipart

import (
	"bytes"
	"strings"

	"github.com/indigo-web/utils/uf"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/http/form"
	"github.com/minum-web/minum/http/headers"
	"github.com/minum-web/minum/http/status"
)

var crlf = []byte("\r\n")

// Parse decodes a multipart/form-data body. The boundary is the bare token
// from the content-type header; on the wire every separator is the token
// preceded by two dashes, and the terminal separator is additionally
// followed by two dashes.
//
// The scan is a pure byte-level search, so payloads may contain arbitrary
// binary, including prefixes of the separator itself. The preamble before
// the first separator and the epilogue after the terminal one are discarded.
func Parse(data []byte, boundary string, cfg config.Headers) (*form.Body, error) {
	separator := []byte("--" + boundary)

	cursor := bytes.Index(data, separator)
	if cursor == -1 {
		return nil, status.ErrBadRequest
	}

	cursor += len(separator)
	parts := make(map[string][]byte)
	partHeaders := make(map[string]*headers.Headers)

	for {
		window := data[cursor:]
		if bytes.HasPrefix(window, []byte("--")) {
			// terminal separator, the rest is epilogue
			break
		}

		next := bytes.Index(window, separator)
		if next == -1 {
			return nil, status.ErrBadRequest
		}

		if err := parsePart(window[:next], parts, partHeaders, cfg); err != nil {
			return nil, err
		}

		cursor += next + len(separator)
	}

	return form.New(parts, partHeaders, data), nil
}

// parsePart dissects the bytes between two separators: a CRLF, header lines
// up to a blank line, then the payload terminated by the CRLF that precedes
// the next separator. Parts without a named content-disposition are skipped.
func parsePart(
	segment []byte,
	parts map[string][]byte,
	partHeaders map[string]*headers.Headers,
	cfg config.Headers,
) error {
	rest, found := bytes.CutPrefix(segment, crlf)
	if !found {
		return status.ErrBadRequest
	}

	var block, payload []byte
	if after, headerless := bytes.CutPrefix(rest, crlf); headerless {
		payload = after
	} else {
		boundary := bytes.Index(rest, []byte("\r\n\r\n"))
		if boundary == -1 {
			return status.ErrBadRequest
		}

		block, payload = rest[:boundary], rest[boundary+4:]
	}

	payload = bytes.TrimSuffix(payload, crlf)

	hdrs, err := headers.FromLines(splitLines(block), cfg)
	if err != nil {
		return err
	}

	name, ok := dispositionName(hdrs.Value("content-disposition"))
	if !ok {
		return nil
	}

	parts[name] = payload
	partHeaders[name] = hdrs

	return nil
}

func splitLines(block []byte) []string {
	if len(block) == 0 {
		return nil
	}

	return strings.Split(uf.B2S(block), "\r\n")
}

// dispositionName pulls the name="..." parameter out of a content-disposition
// value such as `form-data; name="text1"; filename="photo.jpg"`.
func dispositionName(disposition string) (string, bool) {
	for _, param := range strings.Split(disposition, ";") {
		param = strings.TrimSpace(param)

		value, found := strings.CutPrefix(param, "name=")
		if !found {
			continue
		}

		value = strings.TrimPrefix(value, `"`)
		value = strings.TrimSuffix(value, `"`)
		if len(value) == 0 {
			return "", false
		}

		return value, true
	}

	return "", false
}
