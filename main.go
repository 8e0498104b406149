package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/initialize"
	"gitee.com/taoJie_1/health-chat/internal/aiservice"
	"gitee.com/taoJie_1/health-chat/internal/render"
	"gitee.com/taoJie_1/health-chat/internal/tui"
	"gitee.com/taoJie_1/health-chat/internal/widget"
)

func main() {
	startTime := time.Now()
	initSvc := initialize.New()

	if err := initSvc.InitTz(); err != nil {
		panic(fmt.Sprintf("初始化时区失败: %v", err))
	}

	// 终端挂件占用标准输出
	if err := initSvc.InitLog(initialize.Act != "chat"); err != nil {
		panic(fmt.Sprintf("初始化日志失败[fbvk89]: %v", err))
	}

	defer func() {
		if p := recover(); p != nil {
			global.Log.Errorln(p)
		}
	}()

	if initialize.Act == "chat" {
		runChat()
		return
	}

	if err := initSvc.Run(); err != nil {
		global.Log.Fatalf("关键服务初始化失败，程序终止: %v", err)
	}
	defer initSvc.Close()

	if initialize.Act != "" {
		dispatchAction(initialize.Act, initSvc)
		return
	}

	initSvc.InitLogger()
	initialize.Start(initSvc, startTime)
}

// runChat 终端聊天挂件, 通过HTTP调用已启动服务的通用聊天接口
func runChat() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := global.Config.Widget
	if err := initialize.LoadFaq(); err != nil {
		global.Log.Fatalf("加载FAQ失败: %v", err)
	}

	err := tui.Run(ctx, tui.Options{
		Widget: widget.Options{
			Matcher:      global.Faq,
			AI:           aiservice.NewClient(cfg.ChatEndpoint, time.Duration(cfg.RequestTimeout)*time.Second, global.Log),
			Suggestions:  cfg.Suggestions,
			DisplayDelay: time.Duration(cfg.DisplayDelayMs) * time.Millisecond,
			Logger:       global.Log,
		},
		Renderer:  render.NewTerminal(80, ""),
		BaseUrl:   cfg.BaseUrl,
		MaxLength: global.Config.Ai.MaxPromptLength,
	})
	if err != nil {
		global.Log.Errorf("终端挂件退出: %v", err)
		fmt.Println(err)
	}
}

func dispatchAction(action string, initSvc *initialize.Initializer) {
	global.Log.Infof("开始执行后台任务: %s", action)
	taskManager := initSvc.TaskManager()

	var err error
	switch action {
	case "clean":
		if err = taskManager.CleanUpLogs(); err == nil {
			err = taskManager.CleanUpChatLogs()
		}
	default:
		fmt.Println("未知的任务参数, 可选值: chat, clean")
		return
	}

	if err == nil {
		global.Log.Infof("后台任务 '%s' 执行成功", action)
	} else {
		global.Log.Errorf("后台任务 '%s' 执行失败: %v", action, err)
	}
}
