package faq

import (
	"errors"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/health-chat/model/config"
	"gitee.com/taoJie_1/health-chat/model/enum"
)

var (
	ErrInvalidEntry     = errors.New("FAQ条目无效")
	ErrDuplicateTrigger = errors.New("FAQ触发词重复")
	// 后面的触发词包含了前面的触发词, 永远不会被匹配到
	ErrShadowedTrigger = errors.New("FAQ触发词被前面的条目遮蔽")
)

// Response 一条可直接渲染的回复, FAQ和AI服务都产出这个结构
type Response struct {
	Type    enum.ResponseType `json:"type"`
	Content string            `json:"content"`
	Items   []string          `json:"items,omitempty"`  // 仅list
	Action  string            `json:"action,omitempty"` // 仅navigation, 跳转目标
}

func Text(content string) Response {
	return Response{Type: enum.ResponseText, Content: content}
}

// clone 复制Items, 调用方修改返回值不会影响FAQ表
func (r Response) clone() Response {
	if r.Items != nil {
		r.Items = append([]string(nil), r.Items...)
	}
	return r
}

type Entry struct {
	Trigger  string   `json:"trigger"`
	Response Response `json:"response"`
}

// Matcher 按声明顺序保存的FAQ表, 构建后只读
type Matcher struct {
	entries []Entry
}

// New 校验并构建FAQ表
// 匹配规则为"按声明顺序第一个命中", 所以不允许后面的触发词包含前面的触发词
func New(entries []Entry) (*Matcher, error) {
	list := make([]Entry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("第%d条 %q: %w", i+1, e.Trigger, err)
		}
		if _, ok := seen[e.Trigger]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTrigger, e.Trigger)
		}
		for _, prev := range list {
			if strings.Contains(e.Trigger, prev.Trigger) {
				return nil, fmt.Errorf("%w: %q 包含 %q", ErrShadowedTrigger, e.Trigger, prev.Trigger)
			}
		}
		seen[e.Trigger] = struct{}{}

		e.Response.Items = append([]string(nil), e.Response.Items...)
		list = append(list, e)
	}

	return &Matcher{entries: list}, nil
}

func validate(e Entry) error {
	if e.Trigger == "" || e.Trigger != strings.ToLower(strings.TrimSpace(e.Trigger)) {
		return fmt.Errorf("%w: 触发词必须为非空的小写且无首尾空白", ErrInvalidEntry)
	}

	r := e.Response
	switch r.Type {
	case enum.ResponseText:
		if r.Content == "" {
			return fmt.Errorf("%w: text缺少content", ErrInvalidEntry)
		}
	case enum.ResponseNavigation:
		if r.Action == "" {
			return fmt.Errorf("%w: navigation缺少action", ErrInvalidEntry)
		}
	case enum.ResponseList:
		if len(r.Items) == 0 {
			return fmt.Errorf("%w: list缺少items", ErrInvalidEntry)
		}
	default:
		return fmt.Errorf("%w: 未知类型 %q", ErrInvalidEntry, r.Type)
	}

	if r.Type != enum.ResponseNavigation && r.Action != "" {
		return fmt.Errorf("%w: 只有navigation可以设置action", ErrInvalidEntry)
	}
	return nil
}

// Match 对输入做小写和去空白后, 返回第一个被包含的触发词对应的回复
func (m *Matcher) Match(text string) (Response, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	if cleaned == "" {
		return Response{}, false
	}

	for _, e := range m.entries {
		if strings.Contains(cleaned, e.Trigger) {
			return e.Response.clone(), true
		}
	}
	return Response{}, false
}

func (m *Matcher) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = Entry{Trigger: e.Trigger, Response: e.Response.clone()}
	}
	return out
}

func (m *Matcher) Len() int {
	return len(m.entries)
}

// FromConfig 配置中有FAQ则使用配置, 否则使用内置表
func FromConfig(list []config.FaqEntry) (*Matcher, error) {
	if len(list) == 0 {
		return New(Default())
	}

	entries := make([]Entry, 0, len(list))
	for _, v := range list {
		entries = append(entries, Entry{
			Trigger: strings.ToLower(strings.TrimSpace(v.Trigger)),
			Response: Response{
				Type:    enum.ResponseType(v.Type),
				Content: v.Content,
				Items:   v.Items,
				Action:  v.Action,
			},
		})
	}
	return New(entries)
}
