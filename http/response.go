package http

import (
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"

	"github.com/minum-web/minum/http/headers"
	"github.com/minum-web/minum/http/status"
)

// why 7? There's no theory behind this number nor researches. It simply
// covers the ordinary handler without growing.
const preallocRespHeaders = 7

const HTMLContentType = "text/html; charset=UTF-8"

// Fields is the revealed state of a built response, consumed by the
// serializer.
type Fields struct {
	Code        status.Code
	Headers     []headers.Pair
	ContentType string
	Body        []byte
}

// Response is a builder over the outbound message. All modifying methods
// return the same instance for chaining.
type Response struct {
	fields Fields
}

// NewResponse returns a response with status code 200 OK, pre-allocated
// space for extra headers and no content type.
func NewResponse() *Response {
	return &Response{
		fields: Fields{
			Code:    status.OK,
			Headers: make([]headers.Pair, 0, preallocRespHeaders),
		},
	}
}

// Code sets the response status code.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// ContentType sets the content-type header value.
func (r *Response) ContentType(value string) *Response {
	r.fields.ContentType = value
	return r
}

// Header appends an extra header. content-type is routed to its dedicated
// slot instead.
func (r *Response) Header(key, value string) *Response {
	if key == "content-type" {
		return r.ContentType(value)
	}

	r.fields.Headers = append(r.fields.Headers, headers.Pair{Key: key, Value: value})
	return r
}

// String sets the response body to the UTF-8 bytes of the passed string.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response body to the passed slice WITHOUT copying.
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = body
	return r
}

// JSON marshals the value into the body and sets the content type. A value
// that cannot be marshalled degrades to a 500 with an empty body.
func (r *Response) JSON(value any) *Response {
	data, err := json.ConfigCompatibleWithStandardLibrary.Marshal(value)
	if err != nil {
		return r.Code(status.InternalServerError).Bytes(nil)
	}

	return r.ContentType("application/json").Bytes(data)
}

// Reveal exposes the built-up state for serialization.
func (r *Response) Reveal() Fields {
	return r.fields
}

// HTMLOk is the everyday success shorthand: 200 OK carrying the UTF-8 bytes
// of text as html.
func HTMLOk(text string) *Response {
	return NewResponse().ContentType(HTMLContentType).String(text)
}

// NotFound is the canonical miss response.
func NotFound() *Response {
	return NewResponse().Code(status.NotFound)
}

// Redirect points the client elsewhere with a 303.
func Redirect(to string) *Response {
	return NewResponse().Code(status.SeeOther).Header("location", to)
}
