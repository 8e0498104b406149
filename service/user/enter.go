package user

import (
	"time"

	"gitee.com/taoJie_1/health-chat/dao"
	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/internal/redis"
)

type ServiceGroup struct {
	ChatService   IChatService
	WidgetService IWidgetService
	Validator     IValidator
	SessionSigner *SessionSigner
}

func NewServiceGroup() ServiceGroup {
	signer := NewSessionSigner(global.Config.Ai.SessionSecret)
	return ServiceGroup{
		ChatService:   NewChatServiceFromGlobal(),
		WidgetService: NewWidgetServiceFromGlobal(signer),
		Validator:     &Validator{MaxPromptLength: global.Config.Ai.MaxPromptLength},
		SessionSigner: signer,
	}
}

// NewChatServiceFromGlobal 依赖LLM/Redis/数据库, 相关配置热重载后需重新创建
func NewChatServiceFromGlobal() *ChatService {
	cfg := global.Config

	var (
		cache *redis.ReplyCache
		store *redis.HistoryStore
		logs  ChatLogStore
	)
	if global.RedisClient != nil {
		cache = redis.NewReplyCache(global.RedisClient, cfg.Redis.KeyPrefix, cfg.Redis.ReplyCacheTTL)
		store = redis.NewHistoryStore(global.RedisClient, cfg.Redis.KeyPrefix, int(cfg.Ai.MaxHistory))
	}
	if dao.DB != nil {
		logs = &dao.App.ChatLogsDb
	}

	return NewChatService(ChatOptions{
		Llm:   global.LlmService,
		Cache: cache,
		History: NewHistoryService(HistoryOptions{
			Store:      store,
			Logs:       logs,
			Max:        cfg.Ai.MaxHistory,
			TTL:        cfg.Redis.ConversationHistoryTTL,
			LockExpiry: cfg.Redis.HistoryLockExpiry,
			Log:        global.Log,
		}),
		Logs:      logs,
		Validator: &Validator{MaxPromptLength: cfg.Ai.MaxPromptLength},
		Log:       global.Log,
	})
}

// NewWidgetServiceFromGlobal 重新创建会丢失所有网页会话
func NewWidgetServiceFromGlobal(signer *SessionSigner) *WidgetService {
	cfg := global.Config.Widget
	return NewWidgetService(WidgetOptions{
		Matcher:      global.Faq,
		Endpoint:     cfg.ChatEndpoint,
		Timeout:      time.Duration(cfg.RequestTimeout) * time.Second,
		DisplayDelay: time.Duration(cfg.DisplayDelayMs) * time.Millisecond,
		Suggestions:  cfg.Suggestions,
		TTL:          time.Duration(cfg.SessionTTL) * time.Second,
		Signer:       signer,
		Log:          global.Log,
	})
}
