package httpserver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/transport/dummy"
)

func TestRedirect(t *testing.T) {
	handler := Redirect("localhost", config.Default())

	t.Run("HappyPath", func(t *testing.T) {
		conn := dummy.NewConn([]byte("The startline\n"))
		handler(conn)

		result := conn.Out.String()
		require.Contains(t, result, "303 SEE OTHER")
		require.Contains(t, result, "location: https://localhost")
		require.True(t, conn.Closed())
	})

	t.Run("NoStartLine", func(t *testing.T) {
		conn := dummy.NewConn(nil)
		handler(conn)
		require.Empty(t, conn.Out.String())
	})

	t.Run("EmptyStartLine", func(t *testing.T) {
		conn := dummy.NewConn([]byte("\n"))
		handler(conn)
		require.Empty(t, conn.Out.String())
	})
}
