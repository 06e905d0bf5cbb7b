package headers

import (
	"errors"
	"io"
	"strings"

	"github.com/indigo-web/iter"
	"github.com/indigo-web/utils/strcomp"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/http/status"
)

type Pair struct {
	Key, Value string
}

// Headers is an ordered multi-map of header names onto values. It acts as a
// map but uses linear search instead, which proves to be more efficient on
// the relatively low amount of entries a request carries. Lookups are
// case-insensitive; duplicates are preserved in insertion order.
type Headers struct {
	pairs      []Pair
	valuesBuff []string
}

func New() *Headers {
	return new(Headers)
}

// NewPrealloc returns an instance of Headers with pre-allocated underlying
// storage.
func NewPrealloc(n int) *Headers {
	return &Headers{
		pairs: make([]Pair, 0, n),
	}
}

// NewFromMap returns a new instance with already inserted values from the
// given map. Note: as maps are unordered, the resulting pairs are unordered
// between distinct keys, too.
func NewFromMap(m map[string][]string) *Headers {
	h := NewPrealloc(len(m))

	for key, values := range m {
		for _, value := range values {
			h.Add(key, value)
		}
	}

	return h
}

// Add adds a new pair of key and value.
func (h *Headers) Add(key, value string) *Headers {
	h.pairs = append(h.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return h
}

// Value returns the first value corresponding to the key, otherwise an empty
// string.
func (h *Headers) Value(key string) string {
	return h.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or the
// fallback passed via the second parameter.
func (h *Headers) ValueOr(key, or string) string {
	value, found := h.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns the first value corresponding to the key and a bool indicating
// whether the key exists at all.
func (h *Headers) Get(key string) (string, bool) {
	for _, pair := range h.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Values returns all values by the key in insertion order, or nil if the key
// is not present. Absent key and empty list are thereby distinguishable.
//
// WARNING: calling it twice overrides values returned by the first call.
// Consider copying the returned slice for safe use.
func (h *Headers) Values(key string) []string {
	h.valuesBuff = h.valuesBuff[:0]

	for _, pair := range h.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			h.valuesBuff = append(h.valuesBuff, pair.Value)
		}
	}

	if len(h.valuesBuff) == 0 {
		return nil
	}

	return h.valuesBuff
}

// Has indicates whether there's an entry of the key.
func (h *Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

// Len returns the number of stored pairs, counting duplicates.
func (h *Headers) Len() int {
	return len(h.pairs)
}

// Iter returns an iterator over the pairs.
func (h *Headers) Iter() iter.Iterator[Pair] {
	return iter.Slice(h.pairs)
}

// Clone creates a deep copy which may be stored somewhere safely.
func (h *Headers) Clone() *Headers {
	clone := NewPrealloc(len(h.pairs))
	clone.pairs = append(clone.pairs, h.pairs...)
	return clone
}

// ContentLength returns the integer value of the last content-length entry,
// or 0 if there is none. Negative and non-numeric values are rejected with
// status.ErrBadContentLength.
func (h *Headers) ContentLength() (int, error) {
	values := h.Values("content-length")
	if values == nil {
		return 0, nil
	}

	last := values[len(values)-1]
	length := 0
	if len(last) == 0 {
		return 0, status.ErrBadContentLength
	}

	for _, char := range []byte(last) {
		if char < '0' || char > '9' {
			return 0, status.ErrBadContentLength
		}

		length = length*10 + int(char-'0')
	}

	return length, nil
}

// ContentType returns the first content-type value, or an empty string.
func (h *Headers) ContentType() string {
	return h.Value("content-type")
}

// IsChunked tells whether any transfer-encoding entry contains the chunked
// token.
func (h *Headers) IsChunked() bool {
	for _, value := range h.Values("transfer-encoding") {
		for _, token := range strings.Split(value, ",") {
			if strcomp.EqualFold(strings.TrimSpace(token), "chunked") {
				return true
			}
		}
	}

	return false
}

// LineReader is the minimal surface Headers need to be parsed off a stream.
// *stream.Reader implements it.
type LineReader interface {
	ReadLine() (string, error)
}

// ReadFrom consumes header lines off the reader until the first empty line
// and parses them, enforcing the configured count and space caps.
func ReadFrom(r LineReader, cfg config.Headers) (*Headers, error) {
	h := NewPrealloc(cfg.Number.Default)
	space := 0

	for {
		line, err := r.ReadLine()
		if err != nil {
			// an over-cap header line must surface as an error, not as a
			// silently truncated header set
			if errors.Is(err, io.EOF) {
				return h, nil
			}

			return nil, err
		}

		if len(line) == 0 {
			return h, nil
		}

		if space += len(line); space > cfg.Space.Maximal {
			return nil, status.ErrHeadersTooLarge
		}

		if err = parseLine(h, line); err != nil {
			return nil, err
		}

		if h.Len() > cfg.Number.Maximal {
			return nil, status.ErrTooManyHeaders
		}
	}
}

// FromLines parses an already-read block of header lines, applying the same
// rules as ReadFrom. Used for multipart partition headers.
func FromLines(lines []string, cfg config.Headers) (*Headers, error) {
	h := NewPrealloc(len(lines))
	space := 0

	for _, line := range lines {
		if len(line) == 0 {
			break
		}

		if space += len(line); space > cfg.Space.Maximal {
			return nil, status.ErrHeadersTooLarge
		}

		if err := parseLine(h, line); err != nil {
			return nil, err
		}

		if h.Len() > cfg.Number.Maximal {
			return nil, status.ErrTooManyHeaders
		}
	}

	return h, nil
}

// parseLine splits a raw header line at the first colon. The name is
// lowercased, the value is trimmed of surrounding whitespace.
func parseLine(h *Headers, line string) error {
	colon := strings.IndexByte(line, ':')
	if colon == -1 {
		return status.ErrBadRequest
	}

	key := strings.ToLower(line[:colon])
	value := strings.TrimSpace(line[colon+1:])
	h.Add(key, value)

	return nil
}
