package render

import (
	"strings"

	"gitee.com/taoJie_1/health-chat/internal/faq"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type TerminalStyles struct {
	User   lipgloss.Style
	Bot    lipgloss.Style
	Avatar lipgloss.Style
	Cta    lipgloss.Style
	Typing lipgloss.Style
}

func DefaultTerminalStyles() TerminalStyles {
	return TerminalStyles{
		User: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0E7490")).
			Padding(0, 1),
		Bot: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#334155")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#CBD5E1")).
			Padding(0, 1),
		Avatar: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0E7490")).
			MarginRight(1),
		Cta: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#14B8A6")).
			Padding(0, 1),
		Typing: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Terminal 终端宿主使用的渲染器, 机器人文本按markdown渲染
type Terminal struct {
	width    int
	style    string
	styles   TerminalStyles
	markdown *glamour.TermRenderer
}

// NewTerminal style为glamour的样式名, 为空时自动检测终端背景
func NewTerminal(width int, style string) *Terminal {
	t := &Terminal{style: style, styles: DefaultTerminalStyles()}
	t.SetWidth(width)
	return t
}

// SetWidth 终端尺寸变化时调用
func (t *Terminal) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	t.width = width

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(t.bubbleWidth() - 4)}
	if t.style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(t.style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		r = nil
	}
	t.markdown = r
}

func (t *Terminal) Width() int {
	return t.width
}

// 气泡最多占85%宽度
func (t *Terminal) bubbleWidth() int {
	return t.width * 85 / 100
}

func (t *Terminal) Render(id string, sender enum.Sender, resp faq.Response) string {
	if sender == enum.SenderUser {
		bubble := t.styles.User.MaxWidth(t.bubbleWidth()).Render(resp.Content)
		return lipgloss.PlaceHorizontal(t.width, lipgloss.Right, bubble)
	}

	body := t.styles.Bot.Width(t.bubbleWidth()).Render(t.botBody(resp))
	return lipgloss.JoinHorizontal(lipgloss.Top, t.styles.Avatar.Render(AvatarLabel), body)
}

func (t *Terminal) botBody(resp faq.Response) string {
	switch resp.Type {
	case enum.ResponseNavigation:
		return resp.Content + "\n" + t.styles.Cta.Render(CtaLabel+" → "+resp.Action)
	case enum.ResponseList:
		var b strings.Builder
		if resp.Content != "" {
			b.WriteString(resp.Content)
			b.WriteByte('\n')
		}
		for i, item := range resp.Items {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("• ")
			b.WriteString(item)
		}
		return b.String()
	default:
		return t.renderMarkdown(resp.Content)
	}
}

func (t *Terminal) renderMarkdown(content string) string {
	if t.markdown == nil {
		return content
	}
	out, err := t.markdown.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n ")
}

func (t *Terminal) Typing() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, t.styles.Avatar.Render(AvatarLabel), t.styles.Typing.Render("● ● ●"))
}
