package global

import (
	"sync"
	"time"

	"gitee.com/taoJie_1/health-chat/internal/faq"
	"gitee.com/taoJie_1/health-chat/internal/llm"
	"gitee.com/taoJie_1/health-chat/internal/redis"
	"gitee.com/taoJie_1/health-chat/model/config"
	"github.com/sirupsen/logrus"
)

// 全局变量
// 业务逻辑禁止修改
var (
	Config      *config.Config = new(config.Config) //指针类型, 给与其内存空间
	Log         *logrus.Logger
	Tz          *time.Location
	LlmService  llm.Service   // 未配置或不可用时为nil
	RedisClient redis.Service // 未配置或不可用时为nil
	Faq         *FaqMatcher = &FaqMatcher{}
)

// FaqMatcher 配置热重载时整体替换
type FaqMatcher struct {
	sync.RWMutex
	matcher *faq.Matcher
}

func (f *FaqMatcher) Get() *faq.Matcher {
	f.RLock()
	defer f.RUnlock()
	return f.matcher
}

func (f *FaqMatcher) Set(m *faq.Matcher) {
	f.Lock()
	defer f.Unlock()
	f.matcher = m
}

// Match 未加载时视为未命中
func (f *FaqMatcher) Match(text string) (faq.Response, bool) {
	m := f.Get()
	if m == nil {
		return faq.Response{}, false
	}
	return m.Match(text)
}
