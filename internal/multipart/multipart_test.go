package multipart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minum-web/minum/config"
	"github.com/minum-web/minum/http/status"
	"github.com/minum-web/minum/internal/httptest"
)

// the same body shape browsers produce: a text part and a small binary
// "file upload".
func makeTestMultipartData() []byte {
	var buff bytes.Buffer
	buff.WriteString("--i_am_a_boundary\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Disposition: form-data; name=\"text1\"\r\n" +
		"\r\n" +
		"I am a value that is text\r\n" +
		"--i_am_a_boundary\r\n" +
		"Content-Type: application/octet-stream\r\n" +
		"Content-Disposition: form-data; name=\"image_uploads\"; filename=\"photo_preview.jpg\"\r\n" +
		"\r\n")
	buff.Write([]byte{1, 2, 3})
	buff.WriteString("\r\n--i_am_a_boundary--\n")

	return buff.Bytes()
}

func TestParse(t *testing.T) {
	cfg := config.Default().Headers

	t.Run("TextAndBinaryParts", func(t *testing.T) {
		body, err := Parse(makeTestMultipartData(), "i_am_a_boundary", cfg)
		require.NoError(t, err)
		require.Equal(t, "I am a value that is text", body.String("text1"))
		require.Equal(t, []byte{1, 2, 3}, body.Bytes("image_uploads"))
	})

	t.Run("PartitionHeaders", func(t *testing.T) {
		body, err := Parse(makeTestMultipartData(), "i_am_a_boundary", cfg)
		require.NoError(t, err)
		require.Equal(t, []string{"text/plain"}, body.PartHeaders("text1").Values("content-type"))
		require.Equal(t,
			[]string{`form-data; name="text1"`},
			body.PartHeaders("text1").Values("content-disposition"),
		)
	})

	t.Run("PayloadContainingSeparatorPrefix", func(t *testing.T) {
		payload := []byte("--i_am_almost a boundary --i_am but not quite")
		data := httptest.Multipart("i_am_a_boundary", httptest.Part{Name: "tricky", Data: payload})

		body, err := Parse(data, "i_am_a_boundary", cfg)
		require.NoError(t, err)
		require.Equal(t, payload, body.Bytes("tricky"))
	})

	t.Run("UnnamedPartSkipped", func(t *testing.T) {
		data := []byte("--b\r\n" +
			"Content-Type: text/plain\r\n" +
			"\r\n" +
			"orphan\r\n" +
			"--b\r\n" +
			"Content-Disposition: form-data; name=\"kept\"\r\n" +
			"\r\n" +
			"here\r\n" +
			"--b--\r\n")

		body, err := Parse(data, "b", cfg)
		require.NoError(t, err)
		require.Equal(t, 1, body.Len())
		require.Equal(t, "here", body.String("kept"))
	})

	t.Run("NoBoundaryAtAll", func(t *testing.T) {
		_, err := Parse([]byte("complete garbage"), "b", cfg)
		require.ErrorIs(t, err, status.ErrBadRequest)
	})

	t.Run("UnterminatedPart", func(t *testing.T) {
		_, err := Parse([]byte("--b\r\nContent-Disposition: form-data; name=\"x\"\r\n\r\ndata"), "b", cfg)
		require.ErrorIs(t, err, status.ErrBadRequest)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		boundary := httptest.Boundary()
		binary := []byte{0, 1, 2, '-', '-', 3, 0xFF, '\r', '\n', 0x00}
		data := httptest.Multipart(boundary,
			httptest.Part{Name: "text1", ContentType: "text/plain", Data: []byte("I am a value that is text")},
			httptest.Part{Name: "image_uploads", ContentType: "application/octet-stream", Filename: "photo.jpg", Data: binary},
		)

		body, err := Parse(data, boundary, cfg)
		require.NoError(t, err)
		require.Equal(t, 2, body.Len())
		require.Equal(t, "I am a value that is text", body.String("text1"))
		require.Equal(t, binary, body.Bytes("image_uploads"))
		require.Equal(t, data, body.Raw())
	})
}

func TestDispositionName(t *testing.T) {
	name, ok := dispositionName(`form-data; name="text1"; filename="a.jpg"`)
	require.True(t, ok)
	require.Equal(t, "text1", name)

	_, ok = dispositionName(`form-data; filename="a.jpg"`)
	require.False(t, ok)

	_, ok = dispositionName("")
	require.False(t, ok)
}
