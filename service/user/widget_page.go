package user

import (
	"html/template"
	"io"
)

var widgetPage = template.Must(template.New("widget").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;background:#f1f5f9;margin:0}
.chat-launcher{position:fixed;right:24px;bottom:24px}
.chat-launcher button{border:0;border-radius:999px;background:#0e7490;color:#fff;padding:12px 18px;cursor:pointer}
.chat-panel{position:fixed;right:24px;bottom:84px;width:360px;max-height:70vh;display:flex;flex-direction:column;background:#fff;border-radius:12px;box-shadow:0 8px 24px rgba(0,0,0,.15)}
.chat-header{background:#0e7490;color:#fff;padding:12px;border-radius:12px 12px 0 0}
.chat-messages{flex:1;overflow-y:auto;padding:12px}
.chat-msg{display:flex;margin:8px 0}
.chat-msg-user{justify-content:flex-end}
.chat-msg-user .chat-bubble{background:#0e7490;color:#fff}
.chat-avatar{width:28px;height:28px;border-radius:50%;background:#ccfbf1;color:#0e7490;font-size:12px;display:flex;align-items:center;justify-content:center;margin-right:6px}
.chat-bubble{max-width:85%;background:#f8fafc;border:1px solid #e2e8f0;border-radius:10px;padding:8px 10px;white-space:pre-wrap}
.chat-cta{display:inline-block;margin-top:6px;background:#14b8a6;color:#fff;padding:4px 10px;border-radius:6px;text-decoration:none}
.chat-suggestions{display:flex;flex-wrap:wrap;gap:6px;padding:0 12px}
.chat-suggestions button{border:1px solid #99f6e4;background:#f0fdfa;color:#0f766e;border-radius:999px;padding:4px 10px;cursor:pointer}
.chat-input{display:flex;gap:6px;padding:12px}
.chat-input input{flex:1;padding:8px;border:1px solid #cbd5e1;border-radius:8px}
.dot{display:inline-block;width:6px;height:6px;margin:0 2px;border-radius:50%;background:#94a3b8}
</style>
</head>
<body>
<form class="chat-launcher" method="post" action="/widget/toggle"><button type="submit">{{if .View.Open}}Close{{else}}Chat with us{{end}}</button></form>
{{if .View.Open}}
<div class="chat-panel">
<div class="chat-header">{{.Title}}</div>
<div class="chat-messages">
{{range .View.Messages}}{{.}}
{{end}}{{.View.Typing}}
</div>
{{if .View.Suggestions}}<div class="chat-suggestions">{{range $i, $s := .View.Suggestions}}<form method="post" action="/widget/suggest/{{$i}}"><button type="submit"{{if not $.View.SendEnabled}} disabled{{end}}>{{$s}}</button></form>{{end}}</div>{{end}}
<form class="chat-input" method="post" action="/widget/send">
<input name="message"{{if .MaxLength}} maxlength="{{.MaxLength}}"{{end}} placeholder="Type your question..." autocomplete="off" autofocus>
<button type="submit"{{if not .View.SendEnabled}} disabled{{end}}>Send</button>
</form>
</div>
{{end}}
</body>
</html>
`))

type widgetPageData struct {
	Title     string
	MaxLength uint
	View      WidgetView
}

// RenderWidgetPage 输出完整的挂件页面, 消息片段由 render.HTML 提前转义
func RenderWidgetPage(w io.Writer, title string, maxLength uint, view WidgetView) error {
	return widgetPage.Execute(w, widgetPageData{Title: title, MaxLength: maxLength, View: view})
}
