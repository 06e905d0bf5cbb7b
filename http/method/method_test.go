package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, m := range List {
		require.Equal(t, m, Parse(m.String()))
	}

	require.Equal(t, Unknown, Parse("CONNECT"))
	require.Equal(t, Unknown, Parse("get"))
	require.Equal(t, Unknown, Parse(""))
}
