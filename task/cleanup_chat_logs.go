package task

import (
	"context"
	"fmt"
	"time"

	"gitee.com/taoJie_1/health-chat/dao"
	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/utils"
	"github.com/jmoiron/sqlx"
)

// CleanUpChatLogs 删除超过保留天数的聊天记录
func (m *Manager) CleanUpChatLogs() error {
	retentionDays := global.Config.Ai.ChatRetentionDays
	if retentionDays == 0 {
		global.Log.Info("聊天记录清理功能已禁用 (chat_retention_days = 0)")
		return nil
	}
	if dao.DB == nil {
		global.Log.Warn("数据库未连接, 跳过聊天记录清理")
		return nil
	}

	cutoff := time.Now().In(global.Tz).AddDate(0, 0, -int(retentionDays))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var n int64
	err := dao.Tx(ctx, func(tx *sqlx.Tx) (err error) {
		n, err = dao.App.ChatLogsDb.DeleteBefore(ctx, cutoff.Unix(), tx)
		return err
	})
	if err != nil {
		return fmt.Errorf("清理聊天记录失败[c8vn2k]: %w", err)
	}
	global.Log.Infof("聊天记录清理完成, 截止 %s, 共删除 %d 条", utils.TimeFormat(cutoff.Unix(), global.Tz), n)
	return nil
}
