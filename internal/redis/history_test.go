package redis

import (
	"context"
	"testing"
	"time"

	"gitee.com/taoJie_1/health-chat/model/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStore(t *testing.T) {
	mem := newMemService()
	h := NewHistoryStore(mem, "health-chat:", 3)
	ctx := context.Background()

	_, err := h.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNil)

	require.NoError(t, h.Append(ctx, "s1", time.Minute, common.LlmMessage{Role: "user", Content: "1"}))
	require.NoError(t, h.Append(ctx, "s1", time.Minute,
		common.LlmMessage{Role: "assistant", Content: "2"},
		common.LlmMessage{Role: "user", Content: "3"},
		common.LlmMessage{Role: "assistant", Content: "4"},
	))

	history, err := h.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2", history[0].Content)
	assert.Equal(t, "4", history[2].Content)
	assert.Equal(t, time.Minute, mem.ttl["health-chat:history:s1"])
}

func TestHistoryStoreEmptySetIsHit(t *testing.T) {
	h := NewHistoryStore(newMemService(), "p:", 0)
	ctx := context.Background()

	require.NoError(t, h.Set(ctx, "s1", nil, time.Minute))
	history, err := h.Get(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestHistoryStoreLock(t *testing.T) {
	h := NewHistoryStore(newMemService(), "p:", 0)
	ctx := context.Background()

	ok, err := h.Lock(ctx, "s1", "a", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Lock(ctx, "s1", "b", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, h.Unlock(ctx, "s1"))
	ok, err = h.Lock(ctx, "s1", "b", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}
