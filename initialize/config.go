package initialize

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/model/config"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"gitee.com/taoJie_1/health-chat/task"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	Conf string
	Act  string
)

func init() {
	flag.StringVar(&Conf, "c", "", "choose config file.")
	flag.StringVar(&Act, "a", "", `行为,默认为空,即启动服务; "chat": 终端聊天挂件; "clean": 清除过期日志和聊天记录;`)
}

// New 创建一个新的初始化器，并加载配置文件
func New() *Initializer {
	var configPath string
	if gin.Mode() != gin.TestMode {
		flag.Parse()
		if Conf != "" {
			configPath = Conf
		}
	}
	if configPath == "" {
		configPath = `config.yaml`
	}

	// .env 中的密钥只在进程环境中不存在时生效
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println("读取.env失败[e7hq2p]: ", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		panic("读取配置失败[u9ij]: " + configPath + err.Error())
	}

	if err := loadConfig(v, global.Config); err != nil {
		panic("出错[dhfal]: " + err.Error())
	}

	i := &Initializer{debouncer: task.NewDebouncer(time.Second)}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("配置文件变化[djiads]: ", e.Name)
		i.debouncer.Trigger(func() {
			newConfig := new(config.Config)
			if err := loadConfig(v, newConfig); err != nil {
				global.Log.Errorf("解析新配置失败[pq0c3s]: %v", err)
				return
			}
			i.HandleConfigChange(global.Config.DeepCopy(), newConfig)
		})
	})

	return i
}

// setDefaults 注册0值有含义的配置项的默认值, 只在配置文件未写该项时生效
func setDefaults(v *viper.Viper) {
	v.SetDefault("redis.reply_cache_ttl", 86400)
	v.SetDefault("widget.request_timeout", 30)
}

func loadConfig(v *viper.Viper, c *config.Config) error {
	if err := v.Unmarshal(c); err != nil {
		return err
	}
	handleConfig(c)
	return nil
}

// handleConfig 处理和设置配置的默认值
func handleConfig(c *config.Config) {
	if c.ProjectName == "" {
		c.ProjectName = "Health Assistant"
	}
	if c.GinAddr == "" {
		c.GinAddr = ":8000"
	}
	if c.GinLogPath == "" {
		c.GinLogPath = "log/gin.log"
	}
	if c.RunLogPath == "" {
		c.RunLogPath = "log/run.log"
	}
	if c.Tz == "" {
		c.Tz = "Asia/Shanghai"
	}
	if len(c.Cors) == 0 {
		c.Cors = []string{"*"}
	}
	if c.Database.Type == "" {
		c.Database.Type = string(enum.SQLITE)
	}
	if c.Database.SqlitePath == "" {
		c.Database.SqlitePath = "data.db"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "health-chat:"
	}
	if c.Redis.ConversationHistoryTTL == 0 {
		c.Redis.ConversationHistoryTTL = 3600 // 默认1小时
	}
	if c.Redis.HistoryLockExpiry == 0 {
		c.Redis.HistoryLockExpiry = 10
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	for i := range c.Llm {
		if c.Llm[i].Auth == "" {
			c.Llm[i].Auth = apiKey
		}
		if c.Llm[i].Url == "" {
			c.Llm[i].Url = "https://api.openai.com/v1"
		}
		if c.Llm[i].Model == "" {
			c.Llm[i].Model = "gpt-4o-mini"
		}
		if c.Llm[i].Size == "" {
			c.Llm[i].Size = string(enum.ModelSmall)
		}
		if c.Llm[i].Timeout == 0 {
			c.Llm[i].Timeout = 30
		}
		if c.Llm[i].MaxTokens == 0 {
			c.Llm[i].MaxTokens = 500
		}
		if c.Llm[i].Temperature == nil {
			t := float32(0.7)
			c.Llm[i].Temperature = &t
		}
	}
	// 只有环境变量里的key时, 使用默认模型
	if len(c.Llm) == 0 && apiKey != "" {
		t := float32(0.7)
		c.Llm = []config.Llm{{
			Url:         "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Auth:        apiKey,
			Size:        string(enum.ModelSmall),
			Timeout:     30,
			Temperature: &t,
			MaxTokens:   500,
		}}
	}

	if c.Ai.MaxPromptLength == 0 {
		c.Ai.MaxPromptLength = 1000
	}

	if c.Widget.ChatEndpoint == "" {
		host := c.GinAddr
		if strings.HasPrefix(host, ":") {
			host = "127.0.0.1" + host
		}
		c.Widget.ChatEndpoint = "http://" + host + "/api/general-chat"
	}
	if c.Widget.BaseUrl == "" {
		c.Widget.BaseUrl = strings.TrimSuffix(c.Widget.ChatEndpoint, "/api/general-chat")
	}
	if c.Widget.DisplayDelayMs == 0 {
		c.Widget.DisplayDelayMs = 600
	}
	if c.Widget.SessionTTL == 0 {
		c.Widget.SessionTTL = 1800
	}
}
