// Package tui 终端版聊天挂件
package tui

import (
	"context"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/health-chat/internal/render"
	"gitee.com/taoJie_1/health-chat/internal/widget"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxSuggestionKeys = 9

type keyMap struct {
	Quit     key.Binding
	Toggle   key.Binding
	Submit   key.Binding
	Navigate key.Binding
	Scroll   key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "退出")),
	Toggle:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "打开/关闭")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "发送")),
	Navigate: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "打开最近的链接")),
	Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown", "up", "down")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#0E7490")).Padding(0, 1)
	launcherStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0E7490"))
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0F766E")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#99F6E4")).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6")).Underline(true)
)

type Options struct {
	Widget    widget.Options // Surface 会被替换
	Renderer  *render.Terminal
	BaseUrl   string // 导航链接前缀, 如 http://localhost:8000
	MaxLength uint   // 输入框字数上限, 0为不限制
}

type Model struct {
	ctx      context.Context
	widget   *widget.Widget
	renderer *render.Terminal
	baseUrl  string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width, height int
	messages      []widget.Message
	typing        bool
	sendEnabled   bool
	open          bool
	suggestions   []string
	location      string
}

// New 创建终端挂件, 返回的Surface需在程序启动后Bind
func New(ctx context.Context, opts Options) (Model, *Surface) {
	surface := &Surface{}
	opts.Widget.Surface = surface

	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewTerminal(80, "")
	}

	input := textinput.New()
	input.Placeholder = "Type your question..."
	input.CharLimit = int(opts.MaxLength)
	input.Prompt = "› "

	return Model{
		ctx:         ctx,
		widget:      widget.New(opts.Widget),
		renderer:    renderer,
		baseUrl:     strings.TrimRight(opts.BaseUrl, "/"),
		input:       input,
		viewport:    viewport.New(80, 20),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:       80,
		height:      24,
		sendEnabled: true,
	}, surface
}

// Run 阻塞运行终端挂件直到用户退出或ctx结束
func Run(ctx context.Context, opts Options) error {
	m, surface := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	surface.Bind(p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("终端挂件运行失败[tu8wq]: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case appendMsg:
		m.messages = append(m.messages, msg.msg)
		m.refresh()
		return m, nil

	case typingMsg:
		m.typing = bool(msg)
		m.refresh()
		if m.typing {
			return m, m.spinner.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if !m.typing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case sendEnabledMsg:
		m.sendEnabled = bool(msg)
		if m.sendEnabled && m.open {
			return m, m.input.Focus()
		}
		m.input.Blur()
		return m, nil

	case clearInputMsg:
		m.input.Reset()
		return m, nil

	case openMsg:
		m.open = bool(msg)
		if m.open {
			m.refresh()
			return m, m.input.Focus()
		}
		m.input.Blur()
		return m, nil

	case suggestionsMsg:
		m.suggestions = []string(msg)
		m.resize(m.width, m.height)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Toggle):
		return m, m.toggleCmd()
	}

	if !m.open {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Submit):
		text := m.input.Value()
		if !m.sendEnabled || strings.TrimSpace(text) == "" {
			return m, nil
		}
		return m, m.submitCmd(text)

	case key.Matches(msg, keys.Navigate):
		if action := m.latestAction(); action != "" {
			m.location = m.baseUrl + action
		}
		return m, nil

	case key.Matches(msg, keys.Scroll):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if i, ok := suggestionIndex(msg); ok {
		if i >= len(m.suggestions) || !m.sendEnabled {
			return m, nil
		}
		return m, m.suggestCmd(i)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// alt+1 ~ alt+9 发送对应的快捷问题
func suggestionIndex(msg tea.KeyMsg) (int, bool) {
	if !msg.Alt || msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '0'+maxSuggestionKeys {
		return 0, false
	}
	return int(r - '1'), true
}

// 挂件的调用都放在Cmd里, Surface经Program.Send把结果送回事件循环
func (m Model) toggleCmd() tea.Cmd {
	w := m.widget
	return func() tea.Msg {
		w.Toggle()
		return nil
	}
}

func (m Model) submitCmd(text string) tea.Cmd {
	w, ctx := m.widget, m.ctx
	return func() tea.Msg {
		w.Submit(ctx, text)
		return nil
	}
}

func (m Model) suggestCmd(i int) tea.Cmd {
	w, ctx := m.widget, m.ctx
	return func() tea.Msg {
		w.Suggest(ctx, i)
		return nil
	}
}

func (m Model) latestAction() string {
	for i := len(m.messages) - 1; i >= 0; i-- {
		msg := m.messages[i]
		if msg.Sender == enum.SenderBot && msg.Response.Type == enum.ResponseNavigation {
			return msg.Response.Action
		}
	}
	return ""
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.renderer.SetWidth(width - 2)
	m.input.Width = width - 4

	// 标题 + 快捷问题 + 输入框 + 帮助
	chrome := 1 + 1 + 1 + 1
	if len(m.suggestions) > 0 {
		chrome += 2
	}
	vpHeight := height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.refresh()
}

func (m *Model) refresh() {
	parts := make([]string, 0, len(m.messages)+1)
	for _, msg := range m.messages {
		parts = append(parts, m.renderer.Render(msg.ID, msg.Sender, msg.Response))
	}
	if m.typing {
		parts = append(parts, m.renderer.Typing()+" "+m.spinner.View())
	}
	m.viewport.SetContent(strings.Join(parts, "\n\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.open {
		return launcherStyle.Render("● Health Assistant") + "  " + helpStyle.Render("ctrl+t 打开聊天 · esc 退出")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Health Assistant"))
	b.WriteByte('\n')
	b.WriteString(m.viewport.View())
	b.WriteByte('\n')

	if len(m.suggestions) > 0 {
		chips := make([]string, 0, len(m.suggestions))
		for i, s := range m.suggestions {
			if i >= maxSuggestionKeys {
				break
			}
			chips = append(chips, chipStyle.Render(fmt.Sprintf("alt+%d %s", i+1, s)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
		b.WriteByte('\n')
	}

	b.WriteString(m.input.View())
	b.WriteByte('\n')

	if m.location != "" {
		b.WriteString(locationStyle.Render("→ " + m.location))
		b.WriteString("  ")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	bindings := []key.Binding{keys.Submit, keys.Navigate, keys.Toggle, keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	if !m.sendEnabled {
		parts = append([]string{"回复中..."}, parts...)
	}
	return strings.Join(parts, " · ")
}

// Location 最近一次通过ctrl+o跳转的地址
func (m Model) Location() string {
	return m.location
}
