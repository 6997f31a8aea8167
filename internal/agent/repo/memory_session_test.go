package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chative-support-desk/server/internal/agent/model"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionStore()

	turns, err := s.Load(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, turns)

	require.NoError(t, s.Append(ctx, "a", model.Turn{Query: "q1", Response: "r1"}))
	require.NoError(t, s.Append(ctx, "a", model.Turn{Query: "q2", Response: "r2"}))
	require.NoError(t, s.Append(ctx, "b", model.Turn{Query: "other", Response: "r"}))

	turns, err = s.Load(ctx, "a")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "q1", turns[0].Query)
	assert.Equal(t, "q2", turns[1].Query)

	// callers get copies
	turns[0].Query = "mutated"
	again, _ := s.Load(ctx, "a")
	assert.Equal(t, "q1", again[0].Query)

	require.NoError(t, s.Reset(ctx, "a"))
	turns, _ = s.Load(ctx, "a")
	assert.Empty(t, turns)
	turns, _ = s.Load(ctx, "b")
	assert.Len(t, turns, 1)
}

func TestMemorySessionStoreConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Append(ctx, id, model.Turn{Query: fmt.Sprint(j), Response: "r"})
			}
		}(fmt.Sprintf("s-%d", i))
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		turns, err := s.Load(ctx, fmt.Sprintf("s-%d", i))
		require.NoError(t, err)
		require.Len(t, turns, 50)
		for j, turn := range turns {
			assert.Equal(t, fmt.Sprint(j), turn.Query)
		}
	}
}
