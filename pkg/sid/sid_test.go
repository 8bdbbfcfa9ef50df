package sid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNew_IsV7(t *testing.T) {
	id := New()
	require.NotEqual(t, uuid.Nil, id)
	require.Equal(t, uuid.Version(7), id.Version())
}

func TestNew_IsRoughlyTimeOrdered(t *testing.T) {
	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		require.NotEqual(t, prev, next)
		// v7 embeds a millisecond timestamp in the first 48 bits, so
		// ids issued later never sort below ids issued earlier.
		require.LessOrEqual(t, prev.String()[:8], next.String()[:8])
		prev = next
	}
}
