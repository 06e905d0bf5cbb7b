package form

import (
	"github.com/indigo-web/utils/uf"

	"github.com/minum-web/minum/http/headers"
)

// Body is the decoded payload of a request: named parts mapped onto their raw
// bytes, optional per-part headers (multipart only), and the undecoded wire
// bytes. A Body is built once by the decoders and never mutated afterwards.
type Body struct {
	parts       map[string][]byte
	partHeaders map[string]*headers.Headers
	raw         []byte
}

// Empty is the distinguished no-body value.
func Empty() *Body {
	return &Body{}
}

// Raw wraps bytes that didn't match any known content shape.
func Raw(data []byte) *Body {
	return &Body{raw: data}
}

func New(parts map[string][]byte, partHeaders map[string]*headers.Headers, raw []byte) *Body {
	return &Body{
		parts:       parts,
		partHeaders: partHeaders,
		raw:         raw,
	}
}

// Bytes returns the raw bytes of the named part, or nil.
func (b *Body) Bytes(name string) []byte {
	return b.parts[name]
}

// String decodes the named part as UTF-8.
func (b *Body) String(name string) string {
	return uf.B2S(b.parts[name])
}

// PartHeaders returns the headers of the named multipart partition, or nil
// for url-encoded and raw bodies.
func (b *Body) PartHeaders(name string) *headers.Headers {
	return b.partHeaders[name]
}

// Has tells whether a part of that name exists.
func (b *Body) Has(name string) bool {
	_, found := b.parts[name]
	return found
}

// Len returns the number of named parts.
func (b *Body) Len() int {
	return len(b.parts)
}

// Raw returns the undecoded wire bytes of the body.
func (b *Body) Raw() []byte {
	return b.raw
}
