package render

import (
	"bytes"
	"html/template"

	"gitee.com/taoJie_1/health-chat/internal/faq"
	"gitee.com/taoJie_1/health-chat/model/enum"
)

// TypingElementID 网页中typing占位的元素id, 同一时间最多一个
const TypingElementID = "typing-indicator"

var htmlTpl = template.Must(template.New("user").Parse(
	`<div id="msg-{{.ID}}" class="chat-msg chat-msg-user"><div class="chat-bubble">{{.Resp.Content}}</div></div>`,
))

func init() {
	template.Must(htmlTpl.New("bot").Parse(
		`<div id="msg-{{.ID}}" class="chat-msg chat-msg-bot"><div class="chat-avatar">` + AvatarLabel + `</div><div class="chat-bubble">` +
			`{{if eq .Resp.Type "navigation"}}<p>{{.Resp.Content}}</p><a class="chat-cta" href="{{.Resp.Action}}">` + CtaLabel + `</a>` +
			`{{else if eq .Resp.Type "list"}}{{with .Resp.Content}}<p>{{.}}</p>{{end}}<ul>{{range .Resp.Items}}<li>{{.}}</li>{{end}}</ul>` +
			`{{else}}{{.Resp.Content}}{{end}}` +
			`</div></div>`,
	))
	template.Must(htmlTpl.New("typing").Parse(
		`<div id="` + TypingElementID + `" class="chat-msg chat-msg-bot chat-typing"><div class="chat-avatar">` + AvatarLabel + `</div>` +
			`<div class="chat-bubble"><span class="dot"></span><span class="dot"></span><span class="dot"></span></div></div>`,
	))
}

// HTML 网页宿主使用的渲染器, 所有内容都会被转义
type HTML struct{}

func NewHTML() *HTML {
	return &HTML{}
}

func (h *HTML) Render(id string, sender enum.Sender, resp faq.Response) string {
	name := "bot"
	if sender == enum.SenderUser {
		name = "user"
	}
	return h.execute(name, struct {
		ID   string
		Resp faq.Response
	}{ID: id, Resp: resp})
}

func (h *HTML) Typing() string {
	return h.execute("typing", nil)
}

func (h *HTML) execute(name string, data interface{}) string {
	var buf bytes.Buffer
	if err := htmlTpl.ExecuteTemplate(&buf, name, data); err != nil {
		// 模板在init时已校验, 这里只会是数据问题
		return template.HTMLEscapeString(err.Error())
	}
	return buf.String()
}
