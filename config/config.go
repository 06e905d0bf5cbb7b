package config

import (
	"time"
)

type (
	HeadersNumber struct {
		Default, Maximal int
	}

	HeadersSpace struct {
		Default, Maximal int
	}
)

type (
	Host struct {
		// Hostname is the name this host is reachable at on the internet. It is
		// used whenever the system must build a self-referencing URL, e.g. the
		// plain-port redirect responder.
		Hostname string
		// Port is the plain, non-secure listener port.
		Port uint16
		// TLSPort is the secure listener port the redirect responder points at.
		TLSPort uint16
	}

	URI struct {
		// MaxQueryKeys limits how many key=value pairs a query string may carry
		// before the request is rejected outright.
		MaxQueryKeys int
	}

	Headers struct {
		// Number is responsible for the headers storage size.
		// Default value is the initial pre-allocation of the storage.
		// Maximal value is the maximum number of headers allowed in a request.
		Number HeadersNumber
		// Space limits the amount of memory occupied by request headers.
		Space HeadersSpace
	}

	Body struct {
		// MaxSize is the maximal size of a body that will be read. Requests
		// declaring more are rejected before any body byte is consumed.
		MaxSize int
	}

	NET struct {
		// MaxLineSize caps a single line read off the socket (request line,
		// header line, chunk length line).
		MaxLineSize int
		// ReadBufferSize is the size of the buffered reader wrapping each
		// connection.
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. If no
		// data was received in this period of time, the connection is closed.
		ReadTimeout time.Duration
		// KeepAliveTimeout is advertised to clients via the keep-alive response
		// header whenever the connection is kept open.
		KeepAliveTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often the Accept() call is
		// interrupted in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration
	}
)

// Config holds settings used across the framework, mainly restrictions,
// limitations and pre-allocations. Parsers receive it explicitly; there is
// no process-global state.
//
// Always modify defaults (returned via Default()) instead of initializing
// the struct manually, otherwise zero-valued limits will reject everything.
type Config struct {
	Host    Host
	URI     URI
	Headers Headers
	Body    Body
	NET     NET
}

// Default returns a well-balanced default config.
func Default() *Config {
	return &Config{
		Host: Host{
			Hostname: "localhost",
			Port:     8080,
			TLSPort:  8443,
		},
		URI: URI{
			MaxQueryKeys: 50,
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 70,
			},
			Space: HeadersSpace{
				Default: 1 * 1024,
				Maximal: 16 * 1024,
			},
		},
		Body: Body{
			MaxSize: 10_000_000,
		},
		NET: NET{
			MaxLineSize:               1024,
			ReadBufferSize:            2 * 1024,
			ReadTimeout:               3 * time.Second,
			KeepAliveTimeout:          3 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
	}
}
