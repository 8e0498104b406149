package initialize

import (
	"bytes"
	"testing"

	"gitee.com/taoJie_1/health-chat/model/config"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	c := &config.Config{}
	handleConfig(c)

	assert.Equal(t, ":8000", c.GinAddr)
	assert.Equal(t, string(enum.SQLITE), c.Database.Type)
	assert.Equal(t, []string{"*"}, c.Cors)
	assert.Equal(t, "health-chat:", c.Redis.KeyPrefix)
	assert.EqualValues(t, 1000, c.Ai.MaxPromptLength)
	assert.Equal(t, "http://127.0.0.1:8000/api/general-chat", c.Widget.ChatEndpoint)
	assert.Equal(t, "http://127.0.0.1:8000", c.Widget.BaseUrl)
	assert.EqualValues(t, 600, c.Widget.DisplayDelayMs)
	assert.Empty(t, c.Llm)
}

func readConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(content)))

	c := &config.Config{}
	require.NoError(t, loadConfig(v, c))
	return c
}

func TestLoadConfigZeroMeansDisabled(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	t.Run("未配置时使用默认值", func(t *testing.T) {
		c := readConfig(t, "gin_addr: \":8000\"\n")
		assert.EqualValues(t, 30, c.Widget.RequestTimeout)
		assert.EqualValues(t, 86400, c.Redis.ReplyCacheTTL)
		assert.EqualValues(t, 600, c.Widget.DisplayDelayMs)
	})

	t.Run("显式0保持为0", func(t *testing.T) {
		c := readConfig(t, "redis:\n  reply_cache_ttl: 0\nwidget:\n  request_timeout: 0\n")
		assert.EqualValues(t, 0, c.Widget.RequestTimeout)
		assert.EqualValues(t, 0, c.Redis.ReplyCacheTTL)
	})

	t.Run("显式值不变", func(t *testing.T) {
		c := readConfig(t, "redis:\n  reply_cache_ttl: 60\nwidget:\n  request_timeout: 5\n")
		assert.EqualValues(t, 5, c.Widget.RequestTimeout)
		assert.EqualValues(t, 60, c.Redis.ReplyCacheTTL)
	})
}

func TestHandleConfigLlmFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	c := &config.Config{}
	handleConfig(c)
	require.Len(t, c.Llm, 1)
	assert.Equal(t, "sk-test", c.Llm[0].Auth)
	assert.Equal(t, string(enum.ModelSmall), c.Llm[0].Size)

	// 配置中的key优先
	c = &config.Config{Llm: []config.Llm{{Auth: "sk-file", Model: "qwen"}}}
	handleConfig(c)
	assert.Equal(t, "sk-file", c.Llm[0].Auth)
	assert.Equal(t, "qwen", c.Llm[0].Model)
	assert.EqualValues(t, 500, c.Llm[0].MaxTokens)
	require.NotNil(t, c.Llm[0].Temperature)
	assert.InDelta(t, 0.7, *c.Llm[0].Temperature, 1e-6)
}

func TestHandleConfigKeepsExplicitEndpoint(t *testing.T) {
	c := &config.Config{GinAddr: "0.0.0.0:9000"}
	c.Widget.ChatEndpoint = "https://example.com/api/general-chat"
	handleConfig(c)
	assert.Equal(t, "https://example.com/api/general-chat", c.Widget.ChatEndpoint)
	assert.Equal(t, "https://example.com", c.Widget.BaseUrl)

	c = &config.Config{GinAddr: "0.0.0.0:9000"}
	handleConfig(c)
	assert.Equal(t, "http://0.0.0.0:9000/api/general-chat", c.Widget.ChatEndpoint)
}

func TestWidgetChanged(t *testing.T) {
	a := config.Widget{DisplayDelayMs: 600}
	b := a
	b.Faq = []config.FaqEntry{{Trigger: "hi", Type: "text", Content: "hello"}}
	assert.False(t, widgetChanged(a, b))

	b.DisplayDelayMs = 100
	assert.True(t, widgetChanged(a, b))
}
