// Package widget 聊天挂件的控制器: 发送锁, FAQ优先, 未命中再走AI
//
// 挂件本身不关心宿主是终端还是网页, 所有显示都通过 Surface 完成。
package widget

import (
	"context"
	"strings"
	"sync"
	"time"

	"gitee.com/taoJie_1/health-chat/internal/aiservice"
	"gitee.com/taoJie_1/health-chat/internal/faq"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultDisplayDelay = 600 * time.Millisecond

// DefaultSuggestions 首次打开面板时展示的快捷问题
var DefaultSuggestions = []string{
	"I'm feeling anxious",
	"How to prevent diabetes?",
	"Heart health tips",
	"Interpret my results",
}

type State int32

const (
	StateIdle State = iota
	StateSending
)

func (s State) String() string {
	if s == StateSending {
		return "sending"
	}
	return "idle"
}

type Message struct {
	ID       string       `json:"id"`
	Sender   enum.Sender  `json:"sender"`
	Response faq.Response `json:"response"`
	Time     time.Time    `json:"time"`
}

// Surface 宿主提供的显示面, 由挂件在锁外调用
type Surface interface {
	AppendMessage(msg Message)
	ShowTyping()
	RemoveTyping()
	SetSendEnabled(enabled bool)
	ClearInput()
	SetOpen(open bool)
	ShowSuggestions(suggestions []string)
}

type Matcher interface {
	Match(text string) (faq.Response, bool)
}

type Options struct {
	Matcher      Matcher
	AI           aiservice.Service
	Surface      Surface
	Suggestions  []string      // 为空使用 DefaultSuggestions
	DisplayDelay time.Duration // FAQ命中后的展示延迟, 负数表示不延迟
	Logger       *logrus.Logger
}

type Widget struct {
	matcher     Matcher
	ai          aiservice.Service
	surface     Surface
	suggestions []string
	delay       time.Duration
	log         *logrus.Logger

	// uiMu 保证发送按钮的开关顺序与状态变化顺序一致
	uiMu sync.Mutex

	mu                sync.Mutex
	state             State
	open              bool
	suggestionsLoaded bool
	transcript        []Message
}

func New(opts Options) *Widget {
	suggestions := opts.Suggestions
	if len(suggestions) == 0 {
		suggestions = DefaultSuggestions
	}

	delay := opts.DisplayDelay
	if delay == 0 {
		delay = DefaultDisplayDelay
	} else if delay < 0 {
		delay = 0
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Widget{
		matcher:     opts.Matcher,
		ai:          opts.AI,
		surface:     opts.Surface,
		suggestions: append([]string(nil), suggestions...),
		delay:       delay,
		log:         log,
	}
}

// Submit 提交一条用户输入
// 空输入或正在发送时直接忽略并返回false; 否则处理完毕(含失败)后返回true, 发送锁一定会被释放
func (w *Widget) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if !w.acquire() {
		w.log.Debugf("[widget]上一条消息尚未完成, 忽略: %q", text)
		return false
	}
	defer w.release()

	w.surface.ClearInput()
	w.appendMessage(enum.SenderUser, faq.Text(text))

	if resp, ok := w.matcher.Match(text); ok {
		w.log.Debugf("[widget]FAQ命中: %q", text)
		w.wait(ctx)
		w.appendMessage(enum.SenderBot, resp)
		return true
	}

	w.log.Debugf("[widget]FAQ未命中, 转AI: %q", text)
	w.appendMessage(enum.SenderBot, w.askAI(ctx, text))
	return true
}

func (w *Widget) askAI(ctx context.Context, text string) faq.Response {
	w.surface.ShowTyping()
	defer w.surface.RemoveTyping()
	return w.ai.Send(ctx, text)
}

// Suggest 等同于用户输入并提交第i个快捷问题
func (w *Widget) Suggest(ctx context.Context, i int) bool {
	if i < 0 || i >= len(w.suggestions) {
		return false
	}
	return w.Submit(ctx, w.suggestions[i])
}

// Toggle 切换面板开关, 首次打开时加载快捷问题
func (w *Widget) Toggle() bool {
	w.mu.Lock()
	w.open = !w.open
	open := w.open
	load := open && !w.suggestionsLoaded
	if load {
		w.suggestionsLoaded = true
	}
	w.mu.Unlock()

	w.surface.SetOpen(open)
	if load {
		w.surface.ShowSuggestions(w.Suggestions())
	}
	return open
}

func (w *Widget) acquire() bool {
	w.uiMu.Lock()
	defer w.uiMu.Unlock()

	w.mu.Lock()
	if w.state == StateSending {
		w.mu.Unlock()
		return false
	}
	w.state = StateSending
	w.mu.Unlock()

	w.surface.SetSendEnabled(false)
	return true
}

func (w *Widget) release() {
	w.uiMu.Lock()
	defer w.uiMu.Unlock()

	w.mu.Lock()
	w.state = StateIdle
	w.mu.Unlock()

	w.surface.SetSendEnabled(true)
}

func (w *Widget) wait(ctx context.Context) {
	if w.delay <= 0 {
		return
	}
	timer := time.NewTimer(w.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (w *Widget) appendMessage(sender enum.Sender, resp faq.Response) {
	msg := Message{
		ID:       uuid.NewString(),
		Sender:   sender,
		Response: resp,
		Time:     time.Now(),
	}

	w.mu.Lock()
	w.transcript = append(w.transcript, msg)
	w.mu.Unlock()

	w.surface.AppendMessage(msg)
}

func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Widget) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

func (w *Widget) Suggestions() []string {
	return append([]string(nil), w.suggestions...)
}

func (w *Widget) Transcript() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.transcript))
	copy(out, w.transcript)
	return out
}
