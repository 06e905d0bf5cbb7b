package requestline

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/http/method"
	"github.com/minum-web/minum/http/proto"
	"github.com/minum-web/minum/http/status"
)

var cfg = config.Default().URI

func TestExtract(t *testing.T) {
	t.Run("HappyPath", func(t *testing.T) {
		rl, err := Extract("GET /index.html HTTP/1.1", cfg)
		require.NoError(t, err)
		require.False(t, rl.IsEmpty())
		require.Equal(t, method.GET, rl.Method)
		require.Equal(t, "index.html", rl.Path.IsolatedPath)
		require.Equal(t, proto.HTTP11, rl.Proto)
		require.Equal(t, "GET /index.html HTTP/1.1", rl.Raw)
	})

	t.Run("Post", func(t *testing.T) {
		rl, err := Extract("POST /something HTTP/1.0", cfg)
		require.NoError(t, err)
		require.Equal(t, method.POST, rl.Method)
		require.Equal(t, proto.HTTP10, rl.Proto)
	})

	t.Run("RootPathIsEmpty", func(t *testing.T) {
		rl, err := Extract("GET / HTTP/1.1", cfg)
		require.NoError(t, err)
		require.Equal(t, method.GET, rl.Method)
		require.Equal(t, "", rl.Path.IsolatedPath)
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, bad := range []string{
			"/something HTTP/1.1",
			"GET HTTP/1.1",
			"GET /something",
			"GET /something HTTP/1.2",
			"GET /something HTTP/",
			"GET something HTTP/1.1",
			"",
		} {
			rl, err := Extract(bad, cfg)
			require.NoError(t, err, bad)
			require.True(t, rl.IsEmpty(), bad)
			require.Equal(t, RequestLine{}, rl, bad)
		}
	})

	t.Run("Query", func(t *testing.T) {
		rl, err := Extract("GET /add_two_numbers?a=42&b=44 HTTP/1.1", cfg)
		require.NoError(t, err)
		require.Equal(t, "add_two_numbers", rl.Path.IsolatedPath)
		require.Equal(t, "a=42&b=44", rl.Path.RawQuery)
		require.Equal(t, "42", rl.QueryValue("a"))
		require.Equal(t, "44", rl.QueryValue("b"))
	})

	t.Run("QueryValueOnMissingQuery", func(t *testing.T) {
		rl, err := Extract("GET /plain HTTP/1.1", cfg)
		require.NoError(t, err)
		require.Equal(t, "", rl.QueryValue("a"))
	})
}

func TestParseQuery(t *testing.T) {
	t.Run("NoEqualsSignDropped", func(t *testing.T) {
		query, err := ParseQuery("foo", cfg)
		require.NoError(t, err)
		require.Empty(t, query)
	})

	t.Run("MixedValidity", func(t *testing.T) {
		query, err := ParseQuery("a=1&junk&b=2", cfg)
		require.NoError(t, err)
		require.Equal(t, map[string]string{"a": "1", "b": "2"}, query)
	})

	t.Run("PercentDecoded", func(t *testing.T) {
		query, err := ParseQuery("q=hello%20world", cfg)
		require.NoError(t, err)
		require.Equal(t, "hello world", query["q"])
	})

	t.Run("TooManyPairs", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < cfg.MaxQueryKeys+2; i++ {
			fmt.Fprintf(&sb, "foo%d=bar%d&", i, i)
		}

		_, err := ParseQuery(sb.String(), cfg)
		require.ErrorIs(t, err, status.ErrTooManyQueryKeys)
	})
}

// request lines must be able to key a map via their identity triple.
func TestKeying(t *testing.T) {
	lines := map[Key]string{
		{method.GET, "foo", proto.HTTP11}: "foo",
		{method.GET, "bar", proto.HTTP11}: "bar",
		{method.GET, "baz", proto.HTTP11}: "baz",
	}

	rl, err := Extract("GET /bar HTTP/1.1", cfg)
	require.NoError(t, err)
	require.Equal(t, "bar", lines[rl.Key()])
}

// the empty sentinel is a fixed point: re-extracting anything it serializes
// to (the empty raw value) yields the sentinel again.
func TestEmptyIsFixedPoint(t *testing.T) {
	empty, err := Extract("", cfg)
	require.NoError(t, err)

	again, err := Extract(empty.Raw, cfg)
	require.NoError(t, err)
	require.Equal(t, empty, again)
	require.True(t, again.IsEmpty())
}
