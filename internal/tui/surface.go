package tui

import (
	"sync"

	"gitee.com/taoJie_1/health-chat/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

type (
	appendMsg      struct{ msg widget.Message }
	typingMsg      bool
	sendEnabledMsg bool
	clearInputMsg  struct{}
	openMsg        bool
	suggestionsMsg []string
)

// Surface 把挂件对显示面的调用转成bubbletea消息, 交给事件循环处理
// 挂件只在tea.Cmd的协程中调用它, 不能在Update里同步调用, 否则Program.Send会阻塞
type Surface struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// Bind 绑定消息投递函数, 一般是 (*tea.Program).Send
func (s *Surface) Bind(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *Surface) emit(msg tea.Msg) {
	s.mu.RLock()
	send := s.send
	s.mu.RUnlock()

	if send != nil {
		send(msg)
	}
}

func (s *Surface) AppendMessage(msg widget.Message) {
	s.emit(appendMsg{msg: msg})
}

func (s *Surface) ShowTyping() {
	s.emit(typingMsg(true))
}

func (s *Surface) RemoveTyping() {
	s.emit(typingMsg(false))
}

func (s *Surface) SetSendEnabled(enabled bool) {
	s.emit(sendEnabledMsg(enabled))
}

func (s *Surface) ClearInput() {
	s.emit(clearInputMsg{})
}

func (s *Surface) SetOpen(open bool) {
	s.emit(openMsg(open))
}

func (s *Surface) ShowSuggestions(suggestions []string) {
	s.emit(suggestionsMsg(append([]string(nil), suggestions...)))
}
