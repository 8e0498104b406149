package initialize

import (
	"context"
	"reflect"
	"strings"

	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/model/config"
	"gitee.com/taoJie_1/health-chat/service"
	"gitee.com/taoJie_1/health-chat/service/user"
	"golang.org/x/sync/errgroup"
)

// HandleConfigChange 检测配置变化并并发地重载相关服务
func (i *Initializer) HandleConfigChange(oldConfig, newConfig *config.Config) {
	i.reloadLock.Lock()
	defer i.reloadLock.Unlock()

	global.Config = newConfig

	var restartNeeded []string

	// --- 1. 检查不可热重载的配置 ---
	if !reflect.DeepEqual(oldConfig.Database, newConfig.Database) {
		restartNeeded = append(restartNeeded, "database")
	}
	if oldConfig.GinAddr != newConfig.GinAddr {
		restartNeeded = append(restartNeeded, "gin_addr")
	}
	if oldConfig.GinLogPath != newConfig.GinLogPath || oldConfig.RunLogPath != newConfig.RunLogPath {
		restartNeeded = append(restartNeeded, "log_path")
	}
	if !reflect.DeepEqual(oldConfig.Cors, newConfig.Cors) {
		restartNeeded = append(restartNeeded, "cors")
	}
	if oldConfig.Ai.SessionSecret != newConfig.Ai.SessionSecret {
		restartNeeded = append(restartNeeded, "ai.session_secret")
	}

	// --- 2. 并发执行可热重载的任务 ---
	eg, _ := errgroup.WithContext(context.Background())

	if oldConfig.Tz != newConfig.Tz {
		eg.Go(func() error {
			if err := i.InitTz(); err != nil {
				global.Log.Errorf("热重载时区失败: %v", err)
				return err
			}
			return nil
		})
	}

	redisChanged := !reflect.DeepEqual(oldConfig.Redis, newConfig.Redis)
	if redisChanged {
		eg.Go(func() error {
			if err := i.redisClose(); err != nil {
				global.Log.Warnf("关闭旧Redis客户端失败: %v", err)
			}
			// 失败时已降级为不使用缓存
			_ = i.initRedis()
			return nil
		})
	}

	llmChanged := !reflect.DeepEqual(oldConfig.Llm, newConfig.Llm)
	if llmChanged {
		eg.Go(func() error {
			_ = i.initLlm()
			return nil
		})
	}

	if !reflect.DeepEqual(oldConfig.Widget.Faq, newConfig.Widget.Faq) {
		eg.Go(func() error {
			if err := i.initFaq(); err != nil {
				global.Log.Errorf("热重载FAQ失败, 继续使用旧FAQ: %v", err)
				return err
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		global.Log.Errorf("并发热重载过程中发生错误: %v", err)
	}

	// --- 3. 依赖上述资源的业务服务重建 ---
	aiChanged := !reflect.DeepEqual(oldConfig.Ai, newConfig.Ai)
	if redisChanged || llmChanged || aiChanged {
		service.Service.UserServiceGroup.ChatService = user.NewChatServiceFromGlobal()
		service.Service.UserServiceGroup.Validator = &user.Validator{MaxPromptLength: newConfig.Ai.MaxPromptLength}
		global.Log.Info("通用聊天服务已重建")
	}

	// FAQ表通过global.Faq共享, 其余挂件配置变化需要重建会话存储
	if widgetChanged(oldConfig.Widget, newConfig.Widget) {
		service.Service.UserServiceGroup.WidgetService = user.NewWidgetServiceFromGlobal(service.Service.UserServiceGroup.SessionSigner)
		global.Log.Warn("挂件配置已变更, 现有网页会话已清空")
	}

	// --- 4. 如果有需要重启的变更，发出统一警告 ---
	if len(restartNeeded) > 0 {
		global.Log.Warnf("检测到存在需要 重启服务 才能生效的配置变更: [%s]。", strings.Join(restartNeeded, ", "))
	}

	global.Log.Info("配置变更处理完成")
}

func widgetChanged(a, b config.Widget) bool {
	a.Faq, b.Faq = nil, nil
	return !reflect.DeepEqual(a, b)
}
