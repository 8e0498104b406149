package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"gitee.com/taoJie_1/health-chat/model/common"
	"gitee.com/taoJie_1/health-chat/model/config"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnavailable = errors.New("LLM服务暂不可用, 请稍后再试")
	ErrEmptyReply  = errors.New("LLM服务返回了空结果")
	ErrNoClient    = errors.New("未找到指定大小的LLM客户端实例")
)

// client 封装了与LLM交互的底层逻辑
type client struct {
	log        *logrus.Logger
	llmClients map[enum.LlmSize]*openai.Client
	llmConfigs []config.Llm
}

type Service interface {
	// 调用LLM进行实时对话
	ChatCompletion(ctx context.Context, size enum.LlmSize, systemPrompt enum.SystemPrompt, content string, temperature ...float32) (string, error)
	// 调用LLM进行实时对话，并支持传入历史消息
	ChatCompletionWithHistory(ctx context.Context, size enum.LlmSize, systemPrompt enum.SystemPrompt, content string, history []common.LlmMessage, temperature ...float32) (string, error)
}

// NewClient 创建一个新的LLM客户端实例，并通过依赖注入初始化
func NewClient(log *logrus.Logger, clients map[enum.LlmSize]*openai.Client, configs []config.Llm) Service {
	return &client{
		log:        log,
		llmClients: clients,
		llmConfigs: configs,
	}
}

// NewOpenAIClients 按配置为每个size创建openai客户端
func NewOpenAIClients(configs []config.Llm) map[enum.LlmSize]*openai.Client {
	clients := make(map[enum.LlmSize]*openai.Client, len(configs))
	for _, cfg := range configs {
		c := openai.DefaultConfig(cfg.Auth)
		if cfg.Url != "" {
			c.BaseURL = cfg.Url
		}
		c.HTTPClient = &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}
		clients[enum.LlmSize(cfg.Size)] = openai.NewClientWithConfig(c)
	}
	return clients
}

// getLlmConfig 是一个内部辅助函数，用于根据大小获取模型配置
func (c *client) getLlmConfig(size enum.LlmSize) *config.Llm {
	for i := range c.llmConfigs {
		if enum.LlmSize(c.llmConfigs[i].Size) == size {
			return &c.llmConfigs[i]
		}
	}
	// 如果没找到指定大小的模型，则默认使用第一个配置的模型
	if len(c.llmConfigs) > 0 {
		return &c.llmConfigs[0]
	}
	return nil
}

// getLlmClient 找不到指定size时退回第一个配置的模型
func (c *client) getLlmClient(size enum.LlmSize) (*openai.Client, *config.Llm, error) {
	llmConfig := c.getLlmConfig(size)
	if llmConfig == nil || llmConfig.Model == "" {
		return nil, nil, errors.New("未找到指定的LLM客户端配置")
	}
	if llmClient, ok := c.llmClients[size]; ok {
		return llmClient, llmConfig, nil
	}
	if llmClient, ok := c.llmClients[enum.LlmSize(llmConfig.Size)]; ok {
		return llmClient, llmConfig, nil
	}
	return nil, nil, ErrNoClient
}

// filterContent 从LLM的原始响应中剥离思考过程标签
func (c *client) filterContent(rawAnswer string) string {
	if parts := strings.SplitN(rawAnswer, "</think>", 2); len(parts) > 1 {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(rawAnswer)
}

func (c *client) ChatCompletion(ctx context.Context, size enum.LlmSize, systemPrompt enum.SystemPrompt, content string, temperature ...float32) (string, error) {
	return c.ChatCompletionWithHistory(ctx, size, systemPrompt, content, nil, temperature...)
}

// systemPrompt: LLM的系统提示词
// content: 用户问题
// history: 之前的对话历史消息列表
func (c *client) ChatCompletionWithHistory(ctx context.Context, size enum.LlmSize, systemPrompt enum.SystemPrompt, content string, history []common.LlmMessage, temperature ...float32) (string, error) {
	llmClient, llmConfig, err := c.getLlmClient(size)
	if err != nil {
		return "", err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: string(systemPrompt),
	})

	// 添加历史消息
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	// 添加当前用户消息
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})

	req := openai.ChatCompletionRequest{
		Model:     llmConfig.Model,
		Messages:  messages,
		MaxTokens: llmConfig.MaxTokens,
	}

	// 优先使用传入的temperature参数，其次是配置文件中的，最后使用LLM默认值
	if len(temperature) > 0 {
		req.Temperature = temperature[0]
	} else if llmConfig.Temperature != nil {
		req.Temperature = *llmConfig.Temperature
	}

	resp, err := llmClient.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		c.log.Errorf("LLM API调用失败: %v", err)
		return "", ErrUnavailable
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	answer := c.filterContent(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyReply
	}
	return answer, nil
}
