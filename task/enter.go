package task

import (
	"gitee.com/taoJie_1/health-chat/service/user"
)

type Manager struct {
	widgetService func() user.IWidgetService
}

// NewManager 创建一个新的任务管理器
// widgetService 每次执行时取当前的会话存储, 配置热重载后会被替换
func NewManager(widgetService func() user.IWidgetService) *Manager {
	return &Manager{
		widgetService: widgetService,
	}
}
