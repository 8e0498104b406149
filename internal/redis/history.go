package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitee.com/taoJie_1/health-chat/model/common"
)

// HistoryStore 按会话缓存发给LLM的历史消息, 以JSON数组存放
type HistoryStore struct {
	rdb    Service
	prefix string
	max    int
}

// NewHistoryStore max为每个会话保留的最大消息数
func NewHistoryStore(rdb Service, prefix string, max int) *HistoryStore {
	return &HistoryStore{rdb: rdb, prefix: prefix, max: max}
}

func (h *HistoryStore) Key(sessionID string) string {
	return h.prefix + "history:" + sessionID
}

func (h *HistoryStore) LockKey(sessionID string) string {
	return h.prefix + "history:lock:" + sessionID
}

// Get 未命中返回 ErrNil
func (h *HistoryStore) Get(ctx context.Context, sessionID string) ([]common.LlmMessage, error) {
	raw, err := h.rdb.Get(ctx, h.Key(sessionID)).Bytes()
	if err != nil {
		return nil, err
	}
	var history []common.LlmMessage
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("解析会话历史失败: %w", err)
	}
	return history, nil
}

func (h *HistoryStore) Set(ctx context.Context, sessionID string, history []common.LlmMessage, ttl time.Duration) error {
	history = h.trim(history)
	if history == nil {
		history = []common.LlmMessage{}
	}
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("序列化会话历史失败: %w", err)
	}
	return h.rdb.Set(ctx, h.Key(sessionID), raw, ttl).Err()
}

// Append 读-改-写, 同一会话在挂件侧已有发送锁, 不会并发写
func (h *HistoryStore) Append(ctx context.Context, sessionID string, ttl time.Duration, messages ...common.LlmMessage) error {
	history, err := h.Get(ctx, sessionID)
	if err != nil && err != ErrNil {
		return err
	}
	return h.Set(ctx, sessionID, append(history, messages...), ttl)
}

// Lock 防止缓存击穿, 返回是否抢到锁
func (h *HistoryStore) Lock(ctx context.Context, sessionID, owner string, expiry time.Duration) (bool, error) {
	return h.rdb.SetNX(ctx, h.LockKey(sessionID), owner, expiry).Result()
}

func (h *HistoryStore) Unlock(ctx context.Context, sessionID string) error {
	return h.rdb.Del(ctx, h.LockKey(sessionID)).Err()
}

func (h *HistoryStore) trim(history []common.LlmMessage) []common.LlmMessage {
	if h.max > 0 && len(history) > h.max {
		return history[len(history)-h.max:]
	}
	return history
}
