package httpserver

import (
	"net"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/internal/stream"
)

// Redirect returns a raw connection handler that answers every request on
// the plain port with a 303 pointing at the HTTPS endpoint of the host.
//
// Clients sometimes connect over TCP and immediately hang up; reading the
// first line then yields nothing, in which case nothing is written back.
func Redirect(hostname string, cfg *config.Config) func(net.Conn) {
	location := "https://" + hostname

	return func(conn net.Conn) {
		defer conn.Close()

		line, err := stream.New(conn, cfg).ReadLine()
		if err != nil || len(line) == 0 {
			return
		}

		_, _ = conn.Write([]byte(
			"HTTP/1.1 303 SEE OTHER\r\n" +
				"location: " + location + "\r\n" +
				"\r\n",
		))
	}
}
