package requestline

import (
	"strings"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/http/method"
	"github.com/minum-web/minum/http/proto"
	"github.com/minum-web/minum/http/status"
	"github.com/minum-web/minum/internal/urlencoded"
)

// PathDetails carries the dissected request target. IsolatedPath never
// begins with a slash; requesting "/" yields an empty IsolatedPath.
type PathDetails struct {
	IsolatedPath string
	RawQuery     string
	Query        map[string]string
}

// RequestLine is the first line of a request, e.g. "GET /path HTTP/1.1".
// The zero value is the lenient-parse failure sentinel; see IsEmpty.
type RequestLine struct {
	Method method.Method
	Path   PathDetails
	Proto  proto.Proto
	Raw    string
}

// Key is the comparable identity of a request line: method, isolated path
// and protocol. It is what makes request lines usable as map keys.
type Key struct {
	Method method.Method
	Path   string
	Proto  proto.Proto
}

func (r RequestLine) Key() Key {
	return Key{
		Method: r.Method,
		Path:   r.Path.IsolatedPath,
		Proto:  r.Proto,
	}
}

// IsEmpty reports whether the line is the parse-failure sentinel.
func (r RequestLine) IsEmpty() bool {
	return r.Method == method.Unknown && r.Proto == proto.Unknown
}

// QueryValue returns the query value for the key, or an empty string. It is
// tolerant of a missing query map.
func (r RequestLine) QueryValue(key string) string {
	return r.Path.Query[key]
}

// Extract leniently parses a request line against the shape
// "<METHOD> /<path> HTTP/(1.0|1.1)". Malformed input of any kind yields the
// zero RequestLine rather than an error, so garbage cleanly routes to a 404.
// The only throwing path is a query string with more pairs than
// cfg.MaxQueryKeys, which is rejected as forbidden use.
func Extract(line string, cfg config.URI) (RequestLine, error) {
	tokens := strings.Split(line, " ")
	if len(tokens) != 3 {
		return RequestLine{}, nil
	}

	verb := method.Parse(tokens[0])
	if verb == method.Unknown {
		return RequestLine{}, nil
	}

	target := tokens[1]
	if len(target) == 0 || target[0] != '/' {
		return RequestLine{}, nil
	}

	protocol := proto.Parse(tokens[2])
	if protocol == proto.Unknown {
		return RequestLine{}, nil
	}

	details, err := parseTarget(target[1:], cfg)
	if err != nil {
		return RequestLine{}, err
	}

	return RequestLine{
		Method: verb,
		Path:   details,
		Proto:  protocol,
		Raw:    line,
	}, nil
}

func parseTarget(target string, cfg config.URI) (PathDetails, error) {
	path, rawQuery, _ := strings.Cut(target, "?")

	query, err := ParseQuery(rawQuery, cfg)
	if err != nil {
		return PathDetails{}, err
	}

	return PathDetails{
		IsolatedPath: path,
		RawQuery:     rawQuery,
		Query:        query,
	}, nil
}

// ParseQuery splits a raw query string into a map by '&' and the first '='.
// Tokens without '=' are silently dropped; an empty input yields an empty
// map. More pairs than cfg.MaxQueryKeys is the single rejecting condition.
func ParseQuery(rawQuery string, cfg config.URI) (map[string]string, error) {
	query := make(map[string]string)
	if len(rawQuery) == 0 {
		return query, nil
	}

	pairs := strings.Split(rawQuery, "&")
	if len(pairs) > cfg.MaxQueryKeys {
		return nil, status.ErrTooManyQueryKeys
	}

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}

		key, err := urlencoded.Decode(key)
		if err != nil {
			continue
		}

		value, err = urlencoded.Decode(value)
		if err != nil {
			continue
		}

		query[key] = value
	}

	return query, nil
}
