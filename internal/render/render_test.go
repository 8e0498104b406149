package render

import (
	"strings"
	"testing"

	"gitee.com/taoJie_1/health-chat/internal/faq"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"github.com/stretchr/testify/assert"
)

func TestHTML_User(t *testing.T) {
	out := NewHTML().Render("1", enum.SenderUser, faq.Text("Is my data <b>secure</b>?"))

	assert.Contains(t, out, `id="msg-1"`)
	assert.Contains(t, out, "chat-msg-user")
	assert.Contains(t, out, "Is my data &lt;b&gt;secure&lt;/b&gt;?")
	assert.NotContains(t, out, AvatarLabel+"</div>")
}

func TestHTML_BotText(t *testing.T) {
	out := NewHTML().Render("2", enum.SenderBot, faq.Text("Hello!"))

	assert.Contains(t, out, "chat-msg-bot")
	assert.Contains(t, out, `<div class="chat-avatar">AI</div>`)
	assert.Contains(t, out, "Hello!")
	assert.NotContains(t, out, "chat-cta")
}

func TestHTML_BotNavigation(t *testing.T) {
	out := NewHTML().Render("3", enum.SenderBot, faq.Response{
		Type:    enum.ResponseNavigation,
		Content: "You can start your health risk assessment below.",
		Action:  "/predict",
	})

	assert.Contains(t, out, "<p>You can start your health risk assessment below.</p>")
	assert.Contains(t, out, `<a class="chat-cta" href="/predict">Click to Proceed</a>`)
}

func TestHTML_NavigationRejectsScriptURL(t *testing.T) {
	out := NewHTML().Render("4", enum.SenderBot, faq.Response{
		Type:   enum.ResponseNavigation,
		Action: "javascript:alert(1)",
	})

	assert.NotContains(t, out, "javascript:")
}

func TestHTML_BotList(t *testing.T) {
	out := NewHTML().Render("5", enum.SenderBot, faq.Response{
		Type:  enum.ResponseList,
		Items: []string{"Stop smoking", "Exercise <daily>"},
	})

	assert.Contains(t, out, "<ul><li>Stop smoking</li><li>Exercise &lt;daily&gt;</li></ul>")
	assert.NotContains(t, out, "<p>")
}

func TestHTML_Typing(t *testing.T) {
	out := NewHTML().Typing()

	assert.Contains(t, out, `id="`+TypingElementID+`"`)
	assert.Equal(t, 3, strings.Count(out, `class="dot"`))
}

func newTestTerminal() *Terminal {
	return NewTerminal(120, "notty")
}

func TestTerminal_User(t *testing.T) {
	out := newTestTerminal().Render("1", enum.SenderUser, faq.Text("Take me to assessment"))

	assert.Contains(t, out, "Take me to assessment")
	assert.NotContains(t, out, AvatarLabel)
	// 用户消息靠右
	line := strings.Split(out, "\n")[0]
	assert.True(t, strings.HasPrefix(line, " "), "用户消息应右对齐: %q", line)
}

func TestTerminal_BotText(t *testing.T) {
	out := newTestTerminal().Render("2", enum.SenderBot, faq.Text("Hello!"))

	assert.Contains(t, out, AvatarLabel)
	assert.Contains(t, out, "Hello!")
}

func TestTerminal_BotNavigation(t *testing.T) {
	out := newTestTerminal().Render("3", enum.SenderBot, faq.Response{
		Type:    enum.ResponseNavigation,
		Content: "Redirecting you to your dashboard.",
		Action:  "/dashboard",
	})

	assert.Contains(t, out, "Redirecting you to your dashboard.")
	assert.Contains(t, out, CtaLabel)
	assert.Contains(t, out, "/dashboard")
}

func TestTerminal_BotList(t *testing.T) {
	out := newTestTerminal().Render("4", enum.SenderBot, faq.Response{
		Type:    enum.ResponseList,
		Content: "Habits:",
		Items:   []string{"Stop smoking", "Limit alcohol"},
	})

	assert.Contains(t, out, "Habits:")
	assert.Contains(t, out, "• Stop smoking")
	assert.Contains(t, out, "• Limit alcohol")
}

func TestTerminal_SetWidth(t *testing.T) {
	r := newTestTerminal()

	r.SetWidth(5)
	assert.Equal(t, 20, r.Width())

	r.SetWidth(80)
	assert.Equal(t, 80, r.Width())
	assert.Contains(t, r.Typing(), "●")
}
