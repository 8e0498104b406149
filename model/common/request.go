package common

// ChatRequest 通用聊天接口请求体, 与挂件的AI适配器约定一致
type ChatRequest struct {
	Message string `json:"message" form:"message"`
}

// ChatReply 通用聊天接口响应体
type ChatReply struct {
	Reply      string `json:"reply"`
	Source     string `json:"source,omitempty"`
	Disclaimer string `json:"disclaimer,omitempty"`
}

// ChatError 通用聊天接口的错误响应
type ChatError struct {
	Error string `json:"error"`
}
