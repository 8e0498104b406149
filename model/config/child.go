package config

type Database struct {
	Type          string `json:"type" mapstructure:"type" yaml:"type"`
	SqlitePath    string `json:"sqlite_path" mapstructure:"sqlite_path" yaml:"sqlite_path"`
	MysqlHost     string `json:"mysql_host" mapstructure:"mysql_host" yaml:"mysql_host"`
	MysqlPort     string `json:"mysql_port" mapstructure:"mysql_port" yaml:"mysql_port"`
	MysqlDbname   string `json:"mysql_dbname" mapstructure:"mysql_dbname" yaml:"mysql_dbname"`
	MysqlUsername string `json:"mysql_username" mapstructure:"mysql_username" yaml:"mysql_username"`
	MysqlPassword string `json:"mysql_password" mapstructure:"mysql_password" yaml:"mysql_password"`
}

type Redis struct {
	Addr          string `json:"addr" mapstructure:"addr" yaml:"addr"`
	Password      string `json:"password" mapstructure:"password" yaml:"password"`
	DB            uint   `json:"db" mapstructure:"db" yaml:"db"`
	KeyPrefix     string `json:"key_prefix" mapstructure:"key_prefix" yaml:"key_prefix"`
	ReplyCacheTTL int64  `json:"reply_cache_ttl" mapstructure:"reply_cache_ttl" yaml:"reply_cache_ttl"` // 秒, 0为不缓存

	ConversationHistoryTTL int64 `json:"conversation_history_ttl" mapstructure:"conversation_history_ttl" yaml:"conversation_history_ttl"` // 秒
	HistoryLockExpiry      int64 `json:"history_lock_expiry" mapstructure:"history_lock_expiry" yaml:"history_lock_expiry"`                // 秒
}

type Llm struct {
	Url         string   `json:"url" mapstructure:"url" yaml:"url"`
	Model       string   `json:"model" mapstructure:"model" yaml:"model"`
	Auth        string   `json:"auth" mapstructure:"auth" yaml:"auth"`
	Size        string   `json:"size" mapstructure:"size" yaml:"size"`
	Timeout     int64    `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	Temperature *float32 `json:"temperature" mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int      `json:"max_tokens" mapstructure:"max_tokens" yaml:"max_tokens"`
}

type Ai struct {
	MaxPromptLength   uint `json:"max_prompt_length" mapstructure:"max_prompt_length" yaml:"max_prompt_length"`
	ChatRetentionDays uint `json:"chat_retention_days" mapstructure:"chat_retention_days" yaml:"chat_retention_days"` // 0为不清理
	MaxHistory        uint `json:"max_history" mapstructure:"max_history" yaml:"max_history"`                         // 带给LLM的历史消息条数, 0为不带

	SessionSecret string `json:"session_secret" mapstructure:"session_secret" yaml:"session_secret"` // 会话签名密钥, 为空则每次启动随机生成
}

// Widget 聊天挂件(终端和网页共用)
type Widget struct {
	ChatEndpoint   string     `json:"chat_endpoint" mapstructure:"chat_endpoint" yaml:"chat_endpoint"`
	BaseUrl        string     `json:"base_url" mapstructure:"base_url" yaml:"base_url"` // 导航类回复拼接的站点地址
	DisplayDelayMs int64      `json:"display_delay_ms" mapstructure:"display_delay_ms" yaml:"display_delay_ms"`
	RequestTimeout int64      `json:"request_timeout" mapstructure:"request_timeout" yaml:"request_timeout"` // 秒, 0为不超时
	SessionTTL     int64      `json:"session_ttl" mapstructure:"session_ttl" yaml:"session_ttl"`             // 秒, 网页会话空闲过期
	Suggestions    []string   `json:"suggestions" mapstructure:"suggestions" yaml:"suggestions"`
	Faq            []FaqEntry `json:"faq" mapstructure:"faq" yaml:"faq"` // 为空则使用内置FAQ
}

type FaqEntry struct {
	Trigger string   `json:"trigger" mapstructure:"trigger" yaml:"trigger"`
	Type    string   `json:"type" mapstructure:"type" yaml:"type"`
	Content string   `json:"content" mapstructure:"content" yaml:"content"`
	Items   []string `json:"items" mapstructure:"items" yaml:"items"`
	Action  string   `json:"action" mapstructure:"action" yaml:"action"`
}
