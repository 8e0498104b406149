package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memService 内存版Service, 只实现缓存用到的命令
type memService struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newMemService() *memService {
	return &memService{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *memService) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	m.data[key] = toString(value)
	m.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memService) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (m *memService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = toString(value)
	m.ttl[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func toString(v interface{}) string {
	switch v := v.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	}
	panic("unsupported value type")
}

func (m *memService) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *memService) Close() error { return nil }

func TestReplyCacheKey(t *testing.T) {
	c := NewReplyCache(nil, "health-chat:", 60)

	key := c.Key("  What is  BMI? ")
	assert.Equal(t, key, c.Key("what is bmi?"))
	assert.Regexp(t, `^health-chat:reply:[0-9a-f]{56}$`, key)
	assert.NotEqual(t, key, c.Key("what is bmi"))
}

func TestReplyCacheRoundTrip(t *testing.T) {
	mem := newMemService()
	c := NewReplyCache(mem, "health-chat:", 100)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "what is bmi")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "What is BMI", "Body mass index."))
	reply, ok, err := c.Get(ctx, "what is bmi")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Body mass index.", reply)

	ttl := mem.ttl[c.Key("what is bmi")]
	assert.GreaterOrEqual(t, ttl, 100*time.Second)
	assert.Less(t, ttl, 110*time.Second)
}

func TestReplyCacheDisabled(t *testing.T) {
	mem := newMemService()
	ctx := context.Background()

	for _, c := range []*ReplyCache{nil, NewReplyCache(nil, "p:", 60), NewReplyCache(mem, "p:", 0)} {
		assert.False(t, c.Enabled())
		require.NoError(t, c.Set(ctx, "m", "r"))
		_, ok, err := c.Get(ctx, "m")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Empty(t, mem.data)
}

func TestReplyCacheError(t *testing.T) {
	mem := newMemService()
	mem.err = errors.New("connection refused")
	c := NewReplyCache(mem, "p:", 60)

	_, ok, err := c.Get(context.Background(), "m")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(context.Background(), "m", "r"))
}
