package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/health-chat/utils"
)

// ReplyCache 以规范化后的用户消息为key缓存LLM回复
type ReplyCache struct {
	rdb    Service
	prefix string
	ttl    int64 // 秒
}

func NewReplyCache(rdb Service, prefix string, ttlSeconds int64) *ReplyCache {
	return &ReplyCache{rdb: rdb, prefix: prefix, ttl: ttlSeconds}
}

// Enabled ttl为0时不缓存
func (c *ReplyCache) Enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

// Key 大小写和多余空白不影响命中
func (c *ReplyCache) Key(message string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(message)), " ")
	return c.prefix + "reply:" + utils.Hash(normalized)
}

// Get 未命中时返回 "", false, nil
func (c *ReplyCache) Get(ctx context.Context, message string) (string, bool, error) {
	if !c.Enabled() {
		return "", false, nil
	}
	reply, err := c.rdb.Get(ctx, c.Key(message)).Result()
	if errors.Is(err, ErrNil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("读取回复缓存失败: %w", err)
	}
	return reply, true, nil
}

func (c *ReplyCache) Set(ctx context.Context, message, reply string) error {
	if !c.Enabled() || reply == "" {
		return nil
	}
	if err := c.rdb.Set(ctx, c.Key(message), reply, utils.GetTTLWithJitter(c.ttl)).Err(); err != nil {
		return fmt.Errorf("写入回复缓存失败: %w", err)
	}
	return nil
}
