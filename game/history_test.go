package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryLog(t *testing.T) {
	t.Run("keeps call order", func(t *testing.T) {
		h := NewHistoryLog()
		h.Append(1, 2, true)
		h.Append(3, 0, true)
		h.Append(2, 4, false)

		require.Equal(t, 3, h.Len())
		require.Equal(t, []Entry{
			{From: 1, To: 2, Success: true},
			{From: 3, To: 0, Success: true},
			{From: 2, To: 4, Success: false},
		}, h.Entries())
		require.True(t, h.Entries()[1].IsSupply(), "Reinforcements are recorded with to == 0")
		require.False(t, h.Entries()[0].IsSupply())
	})

	t.Run("entries are copies", func(t *testing.T) {
		h := NewHistoryLog()
		h.Append(1, 2, true)
		e := h.Entries()
		e[0].From = 9

		require.Equal(t, 1, h.Entries()[0].From, "Callers should not be able to rewrite history")
	})

	t.Run("prefix clamps", func(t *testing.T) {
		h := NewHistoryLog()
		h.Append(1, 2, true)
		h.Append(2, 3, true)

		require.Len(t, h.Prefix(1), 1)
		require.Len(t, h.Prefix(5), 2)
		require.Empty(t, h.Prefix(-1))
	})
}
