package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	DB    *sqlx.DB
	App   = new(DbGroup)
	utils = new(dbUtils)
)

type DbGroup struct {
	ChatLogsDb ChatLogsDb
}

// Tx 在事务中执行fn, fn返回错误或panic时回滚
func Tx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	if DB == nil {
		return errors.New("数据库未初始化[q0dm2v]")
	}

	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w; 回滚失败: %v", err, rbErr)
			}
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}
