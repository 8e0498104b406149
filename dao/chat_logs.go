package dao

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/taoJie_1/health-chat/model/db"
	"github.com/jmoiron/sqlx"
)

type ChatLogsDb struct{}

func (d *ChatLogsDb) execer(tx []*sqlx.Tx) sqlx.ExtContext {
	if len(tx) > 0 && tx[0] != nil {
		return tx[0]
	}
	return DB
}

// BatchInsert 插入问答记录
func (d *ChatLogsDb) BatchInsert(ctx context.Context, logs []db.ChatLogs, tx ...*sqlx.Tx) (int64, error) {
	if len(logs) == 0 {
		return 0, nil
	}
	if DB == nil {
		return 0, errors.New("数据库未初始化[q0dm2v]")
	}

	sqlData := make([]map[string]interface{}, 0, len(logs))
	for _, l := range logs {
		row := map[string]interface{}{
			"session_id": l.SessionId,
			"message":    l.Message,
			"reply":      l.Reply,
			"source":     string(l.Source),
		}
		if l.CreatedAt > 0 {
			row["created_at"] = l.CreatedAt
		}
		if l.UpdatedAt > 0 {
			row["updated_at"] = l.UpdatedAt
		}
		sqlData = append(sqlData, row)
	}

	sql, args, err := utils.getBatchInsertSql(db.ChatLogs{}, sqlData)
	if err != nil {
		return 0, fmt.Errorf("构建批量插入SQL失败: %w", err)
	}

	e := d.execer(tx)
	result, err := e.ExecContext(ctx, e.Rebind(sql), args...)
	if err != nil {
		return 0, fmt.Errorf("批量插入数据失败: %w", err)
	}
	return result.RowsAffected()
}

// Insert 插入一条问答记录
func (d *ChatLogsDb) Insert(ctx context.Context, log *db.ChatLogs, tx ...*sqlx.Tx) error {
	_, err := d.BatchInsert(ctx, []db.ChatLogs{*log}, tx...)
	return err
}

// GetBySession 按时间正序取某会话最近的limit条记录
func (d *ChatLogsDb) GetBySession(ctx context.Context, list *[]db.ChatLogs, sessionId string, limit uint, tx ...*sqlx.Tx) error {
	if DB == nil {
		return errors.New("数据库未初始化[q0dm2v]")
	}
	sql := fmt.Sprintf("SELECT * FROM (SELECT * FROM `%s` WHERE `session_id` = ? ORDER BY `id` DESC LIMIT ?) t ORDER BY `id` ASC", db.ChatLogs{}.TableName())

	e := d.execer(tx)
	return sqlx.SelectContext(ctx, e, list, e.Rebind(sql), sessionId, limit)
}

// DeleteBefore 删除创建时间早于ts(unix秒)的记录
func (d *ChatLogsDb) DeleteBefore(ctx context.Context, ts int64, tx ...*sqlx.Tx) (int64, error) {
	if DB == nil {
		return 0, errors.New("数据库未初始化[q0dm2v]")
	}
	sql := fmt.Sprintf("DELETE FROM `%s` WHERE `created_at` < ?", db.ChatLogs{}.TableName())

	e := d.execer(tx)
	result, err := e.ExecContext(ctx, e.Rebind(sql), ts)
	if err != nil {
		return 0, fmt.Errorf("删除过期记录失败: %w", err)
	}
	return result.RowsAffected()
}
