package initialize

import (
	"context"
	"fmt"
	"time"

	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/internal/llm"
	"gitee.com/taoJie_1/health-chat/internal/redis"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"golang.org/x/sync/errgroup"
)

func (i *Initializer) InitTz() error {
	Location, err := time.LoadLocation(global.Config.Tz)
	if err != nil {
		return fmt.Errorf("时区配置失败[siortuj]: %w", err)
	}
	global.Tz = Location
	return nil
}

// initRedis 初始化Redis客户端, 未配置地址时不启用缓存
func (i *Initializer) initRedis() error {
	if global.Config.Redis.Addr == "" {
		global.RedisClient = nil
		global.Log.Info("未配置Redis, 回复缓存和会话历史缓存不可用")
		return nil
	}

	client, err := redis.NewClient(
		global.Config.Redis.Addr,
		global.Config.Redis.Password,
		int(global.Config.Redis.DB),
	)
	if err != nil {
		global.RedisClient = nil
		global.Log.Warnf("初始化Redis客户端失败: %v", err)
		return fmt.Errorf("初始化Redis客户端失败: %w", err)
	}
	global.RedisClient = client
	global.Log.Info("初始化Redis服务成功")
	return nil
}

// redisClose 关闭Redis客户端连接
func (i *Initializer) redisClose() error {
	if global.RedisClient != nil {
		err := global.RedisClient.Close()
		global.RedisClient = nil
		return err
	}
	return nil
}

func (i *Initializer) initLlm() error {
	if err := i.doInitLlm(); err != nil {
		global.LlmService = nil
		global.Log.Warnf("初始化LLM服务失败, 通用聊天接口将返回503: %v", err)
		return err
	}
	global.Log.Info("初始化LLM服务成功")
	return nil
}

func (i *Initializer) doInitLlm() error {
	if len(global.Config.Llm) == 0 {
		return fmt.Errorf("未配置任何LLM")
	}

	llmClients := llm.NewOpenAIClients(global.Config.Llm)

	g, gCtx := errgroup.WithContext(context.Background())
	// 并发地对所有配置的LLM服务进行连接测试
	for _, cfg := range global.Config.Llm {
		cfg := cfg
		g.Go(func() error {
			size := enum.LlmSize(cfg.Size)
			client := llmClients[size]

			reqCtx, cancel := context.WithTimeout(gCtx, 5*time.Second)
			defer cancel()

			// 通过ListModels接口验证服务是否可用
			if _, err := client.ListModels(reqCtx); err != nil {
				return fmt.Errorf("无法连接到LLM服务 (size: %s, url: %s): %w", size, cfg.Url, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	global.LlmService = llm.NewClient(
		global.Log,
		llmClients,
		global.Config.Llm,
	)
	return nil
}
