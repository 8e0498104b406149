package db

import "gitee.com/taoJie_1/health-chat/model/enum"

// ChatLogs 通用聊天接口的问答记录
type ChatLogs struct {
	BaseField
	SessionId string           `db:"session_id" json:"session_id" info:"会话id"`
	Message   string           `db:"message" json:"message" info:"用户消息"`
	Reply     string           `db:"reply" json:"reply" info:"回复"`
	Source    enum.ReplySource `db:"source" json:"source" info:"回复来源"`
}

func (ChatLogs) TableName() string {
	return `chat_logs`
}
