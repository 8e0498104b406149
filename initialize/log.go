package initialize

import (
	"fmt"
	"io"
	"os"
	"time"

	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// setupLogFile 创建和打开一个每日轮转的日志文件, 例如: gin.log -> gin.log.2025-10-28
func (i *Initializer) setupLogFile(logPath string) (*os.File, error) {
	dateSuffix := time.Now().In(global.Tz).Format("2006-01-02")
	dailyLogPath := fmt.Sprintf("%s.%s", logPath, dateSuffix)

	if err := utils.CreateFile(dailyLogPath); err != nil {
		return nil, fmt.Errorf("创建日志文件 '%s' 失败: %w", dailyLogPath, err)
	}

	file, err := os.OpenFile(dailyLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("打开日志文件 '%s' 失败: %w", dailyLogPath, err)
	}

	i.logFileClosers = append(i.logFileClosers, file)
	return file, nil
}

// CustomJSONFormatter for logrus to set timezone
type CustomJSONFormatter struct {
	logrus.JSONFormatter
}

func (f *CustomJSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if global.Tz != nil {
		entry.Time = entry.Time.In(global.Tz)
	}
	return f.JSONFormatter.Format(entry)
}

// InitLog 初始化logrus日志库
// 终端挂件占用了标准输出, 此时只写文件
func (i *Initializer) InitLog(toStdout bool) error {
	runfile, err := i.setupLogFile(global.Config.RunLogPath)
	if err != nil {
		return fmt.Errorf("初始化运行日志失败: %w", err)
	}

	global.Log = logrus.New()
	global.Log.SetFormatter(&CustomJSONFormatter{
		JSONFormatter: logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "msg",
				logrus.FieldKeyTime:  "time",
			},
		},
	})
	if global.Config.Debug {
		global.Log.SetLevel(logrus.DebugLevel)
	} else {
		global.Log.SetLevel(logrus.InfoLevel)
	}

	if toStdout {
		global.Log.SetOutput(io.MultiWriter(os.Stdout, runfile))
	} else {
		global.Log.SetOutput(runfile)
	}
	return nil
}

// InitLogger 初始化Gin访问日志
func (i *Initializer) InitLogger() {
	ginfile, err := i.setupLogFile(global.Config.GinLogPath)
	if err != nil {
		global.Log.Fatalf("初始化Gin日志失败: %v", err)
	}

	gin.DefaultWriter = io.MultiWriter(os.Stdout, ginfile)
	gin.DefaultErrorWriter = gin.DefaultWriter
	gin.DisableConsoleColor() //将日志写入文件时不需要控制台颜色
}

func (i *Initializer) logClose() {
	for _, c := range i.logFileClosers {
		_ = c.Close()
	}
	i.logFileClosers = nil
}
