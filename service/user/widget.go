package user

import (
	"context"
	"html/template"
	"sync"
	"time"

	"gitee.com/taoJie_1/health-chat/internal/aiservice"
	"gitee.com/taoJie_1/health-chat/internal/render"
	"gitee.com/taoJie_1/health-chat/internal/widget"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionCookie 网页挂件会话cookie名
const SessionCookie = "health_chat_sid"

type IWidgetService interface {
	// Session 取出会话, id为空/未知/已过期时新建
	Session(id string) *WidgetSession
	// Sweep 清理空闲超时的会话, 返回清理数量
	Sweep(now time.Time) int
	Len() int
}

type WidgetOptions struct {
	Matcher      widget.Matcher
	Endpoint     string        // 通用聊天接口地址
	Timeout      time.Duration // 单次AI请求超时, 0为不超时
	DisplayDelay time.Duration
	Suggestions  []string
	TTL          time.Duration  // 会话空闲过期时间
	Signer       *SessionSigner // 为空则不带会话ID, 接口端不保留历史
	Log          *logrus.Logger
}

type WidgetService struct {
	opts     WidgetOptions
	renderer *render.HTML

	mu       sync.RWMutex
	sessions map[string]*WidgetSession
}

func NewWidgetService(opts WidgetOptions) *WidgetService {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	return &WidgetService{
		opts:     opts,
		renderer: render.NewHTML(),
		sessions: make(map[string]*WidgetSession),
	}
}

func (s *WidgetService) Session(id string) *WidgetSession {
	now := time.Now()

	if _, err := uuid.Parse(id); err == nil {
		s.mu.RLock()
		sess, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok && !sess.expired(now, s.opts.TTL) {
			sess.touch(now)
			return sess
		}
	}

	sess := s.newSession(uuid.NewString(), now)
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.opts.Log.Debugf("[widget]新建网页会话: %s", sess.id)
	return sess
}

func (s *WidgetService) newSession(id string, now time.Time) *WidgetSession {
	surface := &htmlSurface{renderer: s.renderer, sendEnabled: true}
	ai := aiservice.NewClient(s.opts.Endpoint, s.opts.Timeout, s.opts.Log)
	if s.opts.Signer != nil {
		ai = ai.WithSession(s.opts.Signer.Sign(id))
	}

	sess := &WidgetSession{
		id:      id,
		surface: surface,
		widget: widget.New(widget.Options{
			Matcher:      s.opts.Matcher,
			AI:           ai,
			Surface:      surface,
			Suggestions:  s.opts.Suggestions,
			DisplayDelay: s.opts.DisplayDelay,
			Logger:       s.opts.Log,
		}),
	}
	sess.touch(now)
	return sess
}

func (s *WidgetService) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.expired(now, s.opts.TTL) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *WidgetService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// WidgetSession 一个浏览器会话对应一个挂件实例
type WidgetSession struct {
	id      string
	widget  *widget.Widget
	surface *htmlSurface

	seenMu   sync.Mutex
	lastSeen time.Time
}

func (w *WidgetSession) ID() string {
	return w.id
}

func (w *WidgetSession) touch(now time.Time) {
	w.seenMu.Lock()
	w.lastSeen = now
	w.seenMu.Unlock()
}

func (w *WidgetSession) expired(now time.Time, ttl time.Duration) bool {
	w.seenMu.Lock()
	defer w.seenMu.Unlock()
	return now.Sub(w.lastSeen) > ttl
}

func (w *WidgetSession) Toggle() bool {
	return w.widget.Toggle()
}

func (w *WidgetSession) Send(ctx context.Context, text string) bool {
	return w.widget.Submit(ctx, text)
}

func (w *WidgetSession) Suggest(ctx context.Context, i int) bool {
	return w.widget.Suggest(ctx, i)
}

func (w *WidgetSession) View() WidgetView {
	view := w.surface.snapshot()
	view.SessionID = w.id
	return view
}

// WidgetView 渲染页面所需的挂件状态快照
type WidgetView struct {
	SessionID   string
	Open        bool
	SendEnabled bool
	Typing      template.HTML // 为空表示没有typing占位
	Messages    []template.HTML
	Suggestions []string
	LastID      string
}

// htmlSurface 把挂件的显示调用转换成已渲染(已转义)的HTML片段
type htmlSurface struct {
	renderer render.Renderer

	mu          sync.Mutex
	messages    []template.HTML
	lastID      string
	typing      bool
	sendEnabled bool
	open        bool
	suggestions []string
}

func (h *htmlSurface) AppendMessage(msg widget.Message) {
	// Renderer输出的内容已经转义
	el := template.HTML(h.renderer.Render(msg.ID, msg.Sender, msg.Response))

	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, el)
	h.lastID = msg.ID
}

func (h *htmlSurface) ShowTyping() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.typing = true
}

func (h *htmlSurface) RemoveTyping() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.typing = false
}

func (h *htmlSurface) SetSendEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sendEnabled = enabled
}

// ClearInput 网页端每次提交都是新的表单, 无需处理
func (h *htmlSurface) ClearInput() {}

func (h *htmlSurface) SetOpen(open bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open = open
}

func (h *htmlSurface) ShowSuggestions(suggestions []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.suggestions = append([]string(nil), suggestions...)
}

func (h *htmlSurface) snapshot() WidgetView {
	h.mu.Lock()
	defer h.mu.Unlock()

	view := WidgetView{
		Open:        h.open,
		SendEnabled: h.sendEnabled,
		Messages:    append([]template.HTML(nil), h.messages...),
		Suggestions: append([]string(nil), h.suggestions...),
		LastID:      h.lastID,
	}
	if h.typing {
		view.Typing = template.HTML(h.renderer.Typing())
	}
	return view
}
