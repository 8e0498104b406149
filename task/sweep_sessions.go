package task

import (
	"time"

	"gitee.com/taoJie_1/health-chat/global"
)

// SweepWidgetSessions 清理空闲过期的网页挂件会话
func (m *Manager) SweepWidgetSessions() error {
	if m.widgetService == nil {
		return nil
	}
	svc := m.widgetService()
	if svc == nil {
		return nil
	}

	if n := svc.Sweep(time.Now()); n > 0 {
		global.Log.Debugf("已清理 %d 个过期挂件会话, 剩余 %d 个", n, svc.Len())
	}
	return nil
}
