package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitee.com/taoJie_1/health-chat/model/common"
	"gitee.com/taoJie_1/health-chat/model/config"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeOpenAI 记录最后一次请求并返回固定内容
func fakeOpenAI(t *testing.T, status int, content string, last *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if last != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(last))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(url string) Service {
	temp := float32(0.7)
	configs := []config.Llm{{Url: url + "/v1", Model: "gpt-4o-mini", Auth: "sk-test", Size: string(enum.ModelSmall), Timeout: 5, Temperature: &temp, MaxTokens: 500}}
	return NewClient(quietLogger(), NewOpenAIClients(configs), configs)
}

func TestChatCompletion(t *testing.T) {
	var req openai.ChatCompletionRequest
	srv := fakeOpenAI(t, http.StatusOK, "<think>hmm</think>\n Stay hydrated. ", &req)

	answer, err := newTestService(srv.URL).ChatCompletion(context.Background(), enum.ModelSmall, enum.SystemPromptHealthcare, "tips?")
	require.NoError(t, err)
	assert.Equal(t, "Stay hydrated.", answer)

	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, 500, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 0.001)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, string(enum.SystemPromptHealthcare), req.Messages[0].Content)
	assert.Equal(t, "tips?", req.Messages[1].Content)
}

func TestChatCompletionWithHistory(t *testing.T) {
	var req openai.ChatCompletionRequest
	srv := fakeOpenAI(t, http.StatusOK, "ok", &req)

	history := []common.LlmMessage{{Role: openai.ChatMessageRoleUser, Content: "a"}, {Role: openai.ChatMessageRoleAssistant, Content: "b"}}
	_, err := newTestService(srv.URL).ChatCompletionWithHistory(context.Background(), enum.ModelLarge, enum.SystemPromptHealthcare, "c", history, 0.2)
	require.NoError(t, err)

	require.Len(t, req.Messages, 4)
	assert.Equal(t, "b", req.Messages[2].Content)
	assert.InDelta(t, 0.2, req.Temperature, 0.001)
}

func TestChatCompletionErrors(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusInternalServerError, "", nil)
	_, err := newTestService(srv.URL).ChatCompletion(context.Background(), enum.ModelSmall, enum.SystemPromptHealthcare, "x")
	assert.ErrorIs(t, err, ErrUnavailable)

	empty := fakeOpenAI(t, http.StatusOK, "<think>only thinking</think>", nil)
	_, err = newTestService(empty.URL).ChatCompletion(context.Background(), enum.ModelSmall, enum.SystemPromptHealthcare, "x")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestNoConfig(t *testing.T) {
	_, err := NewClient(quietLogger(), nil, nil).ChatCompletion(context.Background(), enum.ModelSmall, enum.SystemPromptHealthcare, "x")
	assert.Error(t, err)
}
