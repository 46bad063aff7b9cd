package relayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeadlineQueue(t *testing.T) {
	q := NewDeadlineQueue()
	base := time.Unix(1000, 0)

	require.True(t, q.Push(&Obligation{TxHash: "C", Deadline: base.Add(3 * time.Second)}))
	require.True(t, q.Push(&Obligation{TxHash: "A", Deadline: base.Add(time.Second)}))
	require.True(t, q.Push(&Obligation{TxHash: "B", Deadline: base.Add(time.Second)}))
	require.False(t, q.Push(&Obligation{TxHash: "A", Deadline: base}))
	require.Equal(t, 3, q.Len())

	next, ok := q.Next()
	require.True(t, ok)
	require.Equal(t, base.Add(time.Second), next)

	require.Empty(t, q.PopDue(base))

	due := q.PopDue(base.Add(2 * time.Second))
	require.Len(t, due, 2)
	require.Equal(t, "A", due[0].TxHash)
	require.Equal(t, "B", due[1].TxHash)
	require.Equal(t, 1, q.Len())

	// popped obligations can be tracked again
	require.True(t, q.Push(&Obligation{TxHash: "A", Deadline: base.Add(5 * time.Second)}))

	require.True(t, q.Remove("C"))
	require.False(t, q.Remove("C"))
	due = q.PopDue(base.Add(time.Hour))
	require.Len(t, due, 1)
	require.Equal(t, "A", due[0].TxHash)

	_, ok = q.Next()
	require.False(t, ok)
}
