package user

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"gitee.com/taoJie_1/health-chat/internal/redis"
	"gitee.com/taoJie_1/health-chat/model/common"
	"gitee.com/taoJie_1/health-chat/model/db"
	"gitee.com/taoJie_1/health-chat/model/enum"
	goredis "github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeLlm struct {
	mu      sync.Mutex
	calls   int
	history []common.LlmMessage
	reply   string
	err     error
}

func (f *fakeLlm) ChatCompletion(ctx context.Context, size enum.LlmSize, systemPrompt enum.SystemPrompt, content string, temperature ...float32) (string, error) {
	return f.ChatCompletionWithHistory(ctx, size, systemPrompt, content, nil, temperature...)
}

func (f *fakeLlm) ChatCompletionWithHistory(ctx context.Context, size enum.LlmSize, systemPrompt enum.SystemPrompt, content string, history []common.LlmMessage, temperature ...float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.history = history
	return f.reply, f.err
}

type fakeLogs struct {
	mu   sync.Mutex
	rows []db.ChatLogs
}

func (f *fakeLogs) Insert(ctx context.Context, log *db.ChatLogs, tx ...*sqlx.Tx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, *log)
	return nil
}

func (f *fakeLogs) GetBySession(ctx context.Context, list *[]db.ChatLogs, sessionId string, limit uint, tx ...*sqlx.Tx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.SessionId == sessionId {
			*list = append(*list, r)
		}
	}
	if uint(len(*list)) > limit {
		*list = (*list)[uint(len(*list))-limit:]
	}
	return nil
}

// kvRedis 只支持字符串命令的内存redis
type kvRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newKvRedis() *kvRedis {
	return &kvRedis{data: map[string]string{}}
}

func (k *kvRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (k *kvRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	k.mu.Lock()
	defer k.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		k.data[key] = string(v)
	case string:
		k.data[key] = v
	}
	return goredis.NewStatusResult("OK", nil)
}

func (k *kvRedis) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		delete(k.data, key)
	}
	return goredis.NewIntResult(int64(len(keys)), nil)
}

func (k *kvRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.data[key]; ok {
		return goredis.NewBoolResult(false, nil)
	}
	k.data[key] = "1"
	return goredis.NewBoolResult(true, nil)
}

func (k *kvRedis) Ping(ctx context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (k *kvRedis) Close() error { return nil }

func TestReplyFromLlm(t *testing.T) {
	llmSvc := &fakeLlm{reply: "Walk daily."}
	logs := &fakeLogs{}
	s := NewChatService(ChatOptions{Llm: llmSvc, Logs: logs, Log: quietLogger()})

	reply, err := s.Reply(context.Background(), "sid-1", &common.ChatRequest{Message: "  heart tips  "})
	require.NoError(t, err)
	assert.Equal(t, "Walk daily.", reply.Reply)
	assert.Equal(t, string(enum.ReplySourceLlm), reply.Source)
	assert.Equal(t, string(enum.ReplyMsgDisclaimer), reply.Disclaimer)

	s.Wait()
	require.Len(t, logs.rows, 1)
	assert.Equal(t, "heart tips", logs.rows[0].Message)
	assert.Equal(t, "sid-1", logs.rows[0].SessionId)
}

func TestReplyGuardSkipsLlm(t *testing.T) {
	llmSvc := &fakeLlm{reply: "should not be used"}
	logs := &fakeLogs{}
	s := NewChatService(ChatOptions{Llm: llmSvc, Logs: logs, Log: quietLogger()})

	for _, msg := range []string{"What dosage of metformin?", "which medicine should I take", "Can you prescribe pills for me"} {
		reply, err := s.Reply(context.Background(), "", &common.ChatRequest{Message: msg})
		require.NoError(t, err)
		assert.Equal(t, string(enum.ReplyMsgSafetyBlock), reply.Reply, msg)
		assert.Equal(t, string(enum.ReplySourceGuard), reply.Source)
	}
	assert.Equal(t, 0, llmSvc.calls)

	s.Wait()
	assert.Len(t, logs.rows, 3)
}

func TestReplyValidation(t *testing.T) {
	s := NewChatService(ChatOptions{Llm: &fakeLlm{reply: "x"}, Validator: &Validator{MaxPromptLength: 10}, Log: quietLogger()})

	_, err := s.Reply(context.Background(), "", &common.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = s.Reply(context.Background(), "", &common.ChatRequest{Message: strings.Repeat("字", 11)})
	assert.ErrorIs(t, err, ErrMessageTooLong)

	_, err = s.Reply(context.Background(), "", &common.ChatRequest{Message: strings.Repeat("字", 10)})
	assert.NoError(t, err)
}

func TestReplyLlmUnavailable(t *testing.T) {
	s := NewChatService(ChatOptions{Log: quietLogger()})
	_, err := s.Reply(context.Background(), "", &common.ChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrLlmUnavailable)

	s = NewChatService(ChatOptions{Llm: &fakeLlm{err: errors.New("timeout")}, Log: quietLogger()})
	_, err = s.Reply(context.Background(), "", &common.ChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrLlmUnavailable)
}

func TestReplyCacheSkipsLlm(t *testing.T) {
	llmSvc := &fakeLlm{reply: "Body mass index."}
	cache := redis.NewReplyCache(newKvRedis(), "health-chat:", 60)
	s := NewChatService(ChatOptions{Llm: llmSvc, Cache: cache, Log: quietLogger()})

	first, err := s.Reply(context.Background(), "", &common.ChatRequest{Message: "What is BMI"})
	require.NoError(t, err)
	assert.Equal(t, string(enum.ReplySourceLlm), first.Source)

	second, err := s.Reply(context.Background(), "", &common.ChatRequest{Message: "what is  bmi"})
	require.NoError(t, err)
	assert.Equal(t, string(enum.ReplySourceCache), second.Source)
	assert.Equal(t, "Body mass index.", second.Reply)
	assert.Equal(t, 1, llmSvc.calls)
}

func TestReplyCarriesHistory(t *testing.T) {
	llmSvc := &fakeLlm{reply: "Sure."}
	rdb := newKvRedis()
	logs := &fakeLogs{rows: []db.ChatLogs{{SessionId: "sid-1", Message: "old q", Reply: "old a"}}}
	s := NewChatService(ChatOptions{
		Llm:   llmSvc,
		Cache: redis.NewReplyCache(rdb, "p:", 60),
		History: NewHistoryService(HistoryOptions{
			Store: redis.NewHistoryStore(rdb, "p:", 4),
			Logs:  logs,
			Max:   4,
			TTL:   60,
			Log:   quietLogger(),
		}),
		Log: quietLogger(),
	})

	// 历史从数据库回源
	_, err := s.Reply(context.Background(), "sid-1", &common.ChatRequest{Message: "and then?"})
	require.NoError(t, err)
	require.Len(t, llmSvc.history, 2)
	assert.Equal(t, "old q", llmSvc.history[0].Content)

	// 第二次从Redis读取, 并包含上一轮问答
	_, err = s.Reply(context.Background(), "sid-1", &common.ChatRequest{Message: "more?"})
	require.NoError(t, err)
	require.Len(t, llmSvc.history, 4)
	assert.Equal(t, "and then?", llmSvc.history[2].Content)
	assert.Equal(t, "Sure.", llmSvc.history[3].Content)

	// 有上下文的提问不写缓存
	_, ok, err := redis.NewReplyCache(rdb, "p:", 60).Get(context.Background(), "more?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsPrescriptionRequest(t *testing.T) {
	cases := map[string]bool{
		"What dosage should I take":       true,
		"how much insulin":                true,
		"Which drug should I use":         true,
		"medication for blood pressure":   true,
		"What is diabetes":                false,
		"Explain my heart risk score":     false,
		"How can I prevent heart disease": false,
	}
	for msg, want := range cases {
		assert.Equal(t, want, IsPrescriptionRequest(msg), msg)
	}
}
