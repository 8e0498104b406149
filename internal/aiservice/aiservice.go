package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitee.com/taoJie_1/health-chat/internal/faq"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"github.com/sirupsen/logrus"
)

// SessionHeader 把挂件的会话ID透传给后端, 便于对话记录归档
const SessionHeader = "X-Chat-Session"

type Service interface {
	// Send 把用户消息发给远端聊天接口; 任何失败都会被转换成一条普通的文本回复, 不会向外返回错误
	Send(ctx context.Context, message string) faq.Response
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatReply struct {
	Reply string `json:"reply"`
}

// Client 远端聊天接口的客户端
type Client struct {
	Endpoint   string
	SessionID  string
	HttpClient *http.Client
	Logger     *logrus.Logger
}

// NewClient timeout为0时不设置超时
func NewClient(endpoint string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		Endpoint:   endpoint,
		HttpClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

// WithSession 返回带会话ID的副本, 共用同一个http.Client
func (c *Client) WithSession(sessionID string) *Client {
	cp := *c
	cp.SessionID = sessionID
	return &cp
}

func (c *Client) Send(ctx context.Context, message string) faq.Response {
	reply, err := c.sendRequest(ctx, message)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warnf("[aiservice]请求聊天接口失败: %v", err)
		}
		return faq.Text(string(enum.ReplyMsgConnectionError))
	}

	if reply == "" {
		return faq.Text(string(enum.ReplyMsgEmptyReply))
	}
	return faq.Text(reply)
}

func (c *Client) sendRequest(ctx context.Context, message string) (string, error) {
	jsonData, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("序列化请求体失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.SessionID != "" {
		req.Header.Set(SessionHeader, c.SessionID)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("发送API请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("API请求返回非2xx状态码: %d, 响应: %s", resp.StatusCode, string(bodyBytes))
	}

	var data chatReply
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("解析JSON响应失败: %w", err)
	}
	return data.Reply, nil
}
