package statusline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minum-web/minum/http/proto"
	"github.com/minum-web/minum/http/status"
)

func TestExtract(t *testing.T) {
	t.Run("HappyPath", func(t *testing.T) {
		sl, err := Extract("HTTP/1.1 200 OK")
		require.NoError(t, err)
		require.Equal(t, status.OK, sl.Status)
		require.Equal(t, proto.HTTP11, sl.Proto)
		require.Equal(t, "HTTP/1.1 200 OK", sl.Raw)
	})

	t.Run("MissingStatusDescription", func(t *testing.T) {
		_, err := Extract("HTTP/1.1 200")
		require.EqualError(t, err, `HTTP/1.1 200 must match the status line pattern: ^HTTP/(1\.1|1\.0) (\d{3}) (.*)$`)
	})

	t.Run("MissingStatusCode", func(t *testing.T) {
		_, err := Extract("HTTP/1.1  OK")
		require.EqualError(t, err, `HTTP/1.1  OK must match the status line pattern: ^HTTP/(1\.1|1\.0) (\d{3}) (.*)$`)
	})

	t.Run("MissingHttpVersion", func(t *testing.T) {
		_, err := Extract("HTTP 200 OK")
		require.EqualError(t, err, `HTTP 200 OK must match the status line pattern: ^HTTP/(1\.1|1\.0) (\d{3}) (.*)$`)
	})

	t.Run("InvalidHttpVersion", func(t *testing.T) {
		_, err := Extract("HTTP/1.3 200 OK")
		require.EqualError(t, err, `HTTP/1.3 200 OK must match the status line pattern: ^HTTP/(1\.1|1\.0) (\d{3}) (.*)$`)
	})

	t.Run("InvalidStatusCode", func(t *testing.T) {
		_, err := Extract("HTTP/1.1 199 OK")
		require.ErrorIs(t, err, status.ErrNoSuchCode)
	})

	t.Run("EmptyReasonAllowed", func(t *testing.T) {
		sl, err := Extract("HTTP/1.0 404 ")
		require.NoError(t, err)
		require.Equal(t, status.NotFound, sl.Status)
		require.Equal(t, proto.HTTP10, sl.Proto)
	})
}
