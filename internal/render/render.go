// Package render 把一条回复和发送方转换成宿主可以直接插入的消息元素
package render

import (
	"gitee.com/taoJie_1/health-chat/internal/faq"
	"gitee.com/taoJie_1/health-chat/model/enum"
)

const (
	AvatarLabel = "AI"
	CtaLabel    = "Click to Proceed"
)

type Renderer interface {
	// Render 渲染一条消息; id用于宿主定位并滚动到该元素
	Render(id string, sender enum.Sender, resp faq.Response) string
	// Typing 渲染"正在输入"占位
	Typing() string
}
