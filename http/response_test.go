package http

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minum-web/minum/http/headers"
	"github.com/minum-web/minum/http/status"
)

func TestResponseBuilder(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		fields := NewResponse().Reveal()
		require.Equal(t, status.OK, fields.Code)
		require.Empty(t, fields.Body)
	})

	t.Run("HTMLOk", func(t *testing.T) {
		fields := HTMLOk("86").Reveal()
		require.Equal(t, status.OK, fields.Code)
		require.Equal(t, "text/html; charset=UTF-8", fields.ContentType)
		require.Equal(t, []byte("86"), fields.Body)
	})

	t.Run("ContentTypeRouted", func(t *testing.T) {
		fields := NewResponse().Header("content-type", "text/plain").Reveal()
		require.Equal(t, "text/plain", fields.ContentType)
		require.Empty(t, fields.Headers)
	})

	t.Run("ExtraHeaders", func(t *testing.T) {
		fields := NewResponse().Header("x-custom", "yes").Reveal()
		require.Equal(t, []headers.Pair{{Key: "x-custom", Value: "yes"}}, fields.Headers)
	})

	t.Run("JSON", func(t *testing.T) {
		fields := NewResponse().JSON(map[string]int{"sum": 86}).Reveal()
		require.Equal(t, "application/json", fields.ContentType)
		require.JSONEq(t, `{"sum":86}`, string(fields.Body))
	})

	t.Run("Redirect", func(t *testing.T) {
		fields := Redirect("https://localhost").Reveal()
		require.Equal(t, status.SeeOther, fields.Code)
		require.Equal(t, []headers.Pair{{Key: "location", Value: "https://localhost"}}, fields.Headers)
	})
}
