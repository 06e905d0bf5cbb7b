package statusline

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/minum-web/minum/http/proto"
	"github.com/minum-web/minum/http/status"
)

// Pattern is the shape every status line must match. It is quoted in the
// error whenever a line fails to.
var Pattern = regexp.MustCompile(`^HTTP/(1\.1|1\.0) (\d{3}) (.*)$`)

// StatusLine is the first line of a response, e.g. "HTTP/1.1 200 OK". The
// framework parses these when it acts as a client.
type StatusLine struct {
	Status status.Code
	Proto  proto.Proto
	Raw    string
}

// Extract parses a status line. Unlike request lines, a malformed status
// line is a broken peer rather than routable garbage, so it fails loudly:
// the error echoes both the offending line and the expected pattern. A
// well-shaped line carrying an unknown status integer fails with
// status.ErrNoSuchCode.
func Extract(line string) (StatusLine, error) {
	match := Pattern.FindStringSubmatch(line)
	if match == nil {
		return StatusLine{}, fmt.Errorf("%s must match the status line pattern: %s", line, Pattern)
	}

	integer, err := strconv.Atoi(match[2])
	if err != nil {
		return StatusLine{}, err
	}

	code, err := status.FromInt(integer)
	if err != nil {
		return StatusLine{}, err
	}

	return StatusLine{
		Status: code,
		Proto:  proto.Parse("HTTP/" + match[1]),
		Raw:    line,
	}, nil
}
