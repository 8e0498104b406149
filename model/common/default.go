package common

// LlmMessage 结构体定义了发送给LLM的聊天消息格式
type LlmMessage struct {
	Role    string `json:"role"`    // 消息角色，例如 "user", "assistant", "system"
	Content string `json:"content"` // 消息内容
}

// FaqItem FAQ列表接口的单条数据
type FaqItem struct {
	Trigger string   `json:"trigger"`
	Type    string   `json:"type"`
	Content string   `json:"content,omitempty"`
	Items   []string `json:"items,omitempty"`
	Action  string   `json:"action,omitempty"`
}
