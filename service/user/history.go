package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gitee.com/taoJie_1/health-chat/internal/redis"
	"gitee.com/taoJie_1/health-chat/model/common"
	"gitee.com/taoJie_1/health-chat/model/db"
	"gitee.com/taoJie_1/health-chat/utils"
	"github.com/jmoiron/sqlx"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// ChatLogStore 问答记录的存取, 由 dao.ChatLogsDb 实现
type ChatLogStore interface {
	Insert(ctx context.Context, log *db.ChatLogs, tx ...*sqlx.Tx) error
	GetBySession(ctx context.Context, list *[]db.ChatLogs, sessionId string, limit uint, tx ...*sqlx.Tx) error
}

// HistoryService 定义了会话历史缓存服务的接口
type HistoryService interface {
	// GetOrFetch 先查Redis, 未命中时加锁从数据库回源并写回缓存
	GetOrFetch(ctx context.Context, sessionID string) ([]common.LlmMessage, error)
	// Append 追加消息并刷新TTL
	Append(ctx context.Context, sessionID string, messages ...common.LlmMessage) error
}

type HistoryOptions struct {
	Store      *redis.HistoryStore // 为nil时每次都从数据库读取
	Logs       ChatLogStore
	Max        uint  // 最多带给LLM的消息数
	TTL        int64 // 秒
	LockExpiry int64 // 秒
	Log        *logrus.Logger
}

type historyService struct {
	HistoryOptions
	owner string
}

// NewHistoryService 创建一个新的 HistoryService 实例
func NewHistoryService(opts HistoryOptions) HistoryService {
	owner, _ := os.Hostname()
	if owner == "" {
		owner = "unknown-agent"
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &historyService{HistoryOptions: opts, owner: owner}
}

func (s *historyService) GetOrFetch(ctx context.Context, sessionID string) ([]common.LlmMessage, error) {
	if s.Max == 0 || sessionID == "" {
		return nil, nil
	}
	if s.Store == nil {
		return s.fetch(ctx, sessionID)
	}

	// 1. 尝试从Redis获取聊天记录
	history, err := s.Store.Get(ctx, sessionID)
	if err == nil {
		s.Log.Debugf("会话 %s 历史记录从Redis缓存命中", sessionID)
		return history, nil
	}
	if !errors.Is(err, redis.ErrNil) {
		s.Log.Warnf("从Redis获取会话 %s 历史记录失败: %v, 将从数据库获取", sessionID, err)
		return s.fetch(ctx, sessionID)
	}

	// 2. 使用分布式锁防止缓存击穿
	locked, err := s.Store.Lock(ctx, sessionID, s.owner, time.Duration(s.LockExpiry)*time.Second)
	if err != nil {
		s.Log.Errorf("尝试获取会话 %s 历史记录锁失败: %v", sessionID, err)
		return s.fetch(ctx, sessionID)
	}

	if locked {
		defer func() {
			// 使用后台 context 确保即使原始请求取消，锁释放也能执行
			if err := s.Store.Unlock(context.Background(), sessionID); err != nil {
				s.Log.Warnf("释放会话 %s 历史记录锁失败: %v", sessionID, err)
			}
		}()
		// 双重检查
		if history, err := s.Store.Get(ctx, sessionID); err == nil {
			return history, nil
		}
		return s.fetchAndCache(ctx, sessionID)
	}

	// 未获取到锁, 等待其他请求回源后重试
	select {
	case <-time.After(200 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if history, err := s.Store.Get(ctx, sessionID); err == nil {
		return history, nil
	}

	s.Log.Warnf("等待后会话 %s 缓存仍未命中，直接回源作为降级策略", sessionID)
	return s.fetch(ctx, sessionID)
}

func (s *historyService) Append(ctx context.Context, sessionID string, messages ...common.LlmMessage) error {
	if s.Store == nil || s.Max == 0 || sessionID == "" || len(messages) == 0 {
		return nil
	}
	err := s.Store.Append(ctx, sessionID, utils.GetTTLWithJitter(s.TTL), messages...)
	if err != nil {
		s.Log.Errorf("追加消息到会话 %s 历史记录失败: %v", sessionID, err)
	}
	return err
}

func (s *historyService) fetchAndCache(ctx context.Context, sessionID string) ([]common.LlmMessage, error) {
	history, err := s.fetch(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Set(context.Background(), sessionID, history, utils.GetTTLWithJitter(s.TTL)); err != nil {
		// 只记录错误，不阻塞返回
		s.Log.Errorf("将会话 %s 历史记录存入Redis失败: %v", sessionID, err)
	}
	return history, nil
}

// fetch 每条记录还原成一问一答两条消息
func (s *historyService) fetch(ctx context.Context, sessionID string) ([]common.LlmMessage, error) {
	if s.Logs == nil {
		return nil, nil
	}
	var logs []db.ChatLogs
	if err := s.Logs.GetBySession(ctx, &logs, sessionID, (s.Max+1)/2); err != nil {
		return nil, fmt.Errorf("从数据库获取会话 %s 记录失败: %w", sessionID, err)
	}

	history := make([]common.LlmMessage, 0, len(logs)*2)
	for _, l := range logs {
		history = append(history,
			common.LlmMessage{Role: openai.ChatMessageRoleUser, Content: l.Message},
			common.LlmMessage{Role: openai.ChatMessageRoleAssistant, Content: l.Reply},
		)
	}
	if uint(len(history)) > s.Max {
		history = history[uint(len(history))-s.Max:]
	}
	return history, nil
}
