package dao

import (
	"context"
	"fmt"

	"gitee.com/taoJie_1/health-chat/model/db"
	"gitee.com/taoJie_1/health-chat/model/enum"
)

var schemas = map[enum.DbType][]string{
	enum.SQLITE: {
		"CREATE TABLE IF NOT EXISTS `" + db.ChatLogs{}.TableName() + "` (" +
			"`id` INTEGER PRIMARY KEY AUTOINCREMENT," +
			"`session_id` VARCHAR(64) NOT NULL DEFAULT ''," +
			"`message` TEXT NOT NULL," +
			"`reply` TEXT NOT NULL," +
			"`source` VARCHAR(16) NOT NULL DEFAULT ''," +
			"`created_at` INTEGER NOT NULL DEFAULT 0," +
			"`updated_at` INTEGER NOT NULL DEFAULT 0)",
		"CREATE INDEX IF NOT EXISTS `idx_chat_logs_created_at` ON `" + db.ChatLogs{}.TableName() + "` (`created_at`)",
		"CREATE INDEX IF NOT EXISTS `idx_chat_logs_session_id` ON `" + db.ChatLogs{}.TableName() + "` (`session_id`)",
	},
	enum.MYSQL: {
		"CREATE TABLE IF NOT EXISTS `" + db.ChatLogs{}.TableName() + "` (" +
			"`id` INT UNSIGNED NOT NULL AUTO_INCREMENT," +
			"`session_id` VARCHAR(64) NOT NULL DEFAULT ''," +
			"`message` TEXT NOT NULL," +
			"`reply` TEXT NOT NULL," +
			"`source` VARCHAR(16) NOT NULL DEFAULT ''," +
			"`created_at` BIGINT NOT NULL DEFAULT 0," +
			"`updated_at` BIGINT NOT NULL DEFAULT 0," +
			"PRIMARY KEY (`id`)," +
			"KEY `idx_chat_logs_created_at` (`created_at`)," +
			"KEY `idx_chat_logs_session_id` (`session_id`)" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	},
}

// InitSchema 建表, 已存在则跳过
func InitSchema(ctx context.Context, dbType enum.DbType) error {
	stmts, ok := schemas[dbType]
	if !ok {
		return fmt.Errorf("不支持的数据库类型[7ydbq1]: %s", dbType)
	}
	for _, stmt := range stmts {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("建表失败: %w", err)
		}
	}
	return nil
}
