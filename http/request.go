package http

import (
	"github.com/minum-web/minum/http/form"
	"github.com/minum-web/minum/http/headers"
	"github.com/minum-web/minum/http/requestline"
)

// Request is the fully parsed inbound message handed to handlers. It is
// built once per exchange and never mutated afterwards.
type Request struct {
	Line    requestline.RequestLine
	Headers *headers.Headers
	Body    *form.Body
	// Remote is the address of the requesting peer, empty when the request
	// was constructed off-wire (tests).
	Remote string
}

func NewRequest(
	line requestline.RequestLine,
	hdrs *headers.Headers,
	body *form.Body,
	remote string,
) *Request {
	if hdrs == nil {
		hdrs = headers.New()
	}

	if body == nil {
		body = form.Empty()
	}

	return &Request{
		Line:    line,
		Headers: hdrs,
		Body:    body,
		Remote:  remote,
	}
}

// Handler is a pure function from request to response.
type Handler func(*Request) *Response
