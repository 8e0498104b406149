package initialize

import (
	"context"
	"io"
	"sync"

	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/service"
	"gitee.com/taoJie_1/health-chat/service/user"
	"gitee.com/taoJie_1/health-chat/task"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Initializer 统一管理项目的所有初始化工作
type Initializer struct {
	cron           *cron.Cron
	reloadLock     sync.Mutex
	logFileClosers []io.Closer
	taskManager    *task.Manager
	debouncer      *task.Debouncer
}

// Run 并发执行所有核心服务的初始化
func (i *Initializer) Run() error {
	i.taskManager = task.NewManager(func() user.IWidgetService {
		return service.Service.UserServiceGroup.WidgetService
	})

	eg, _ := errgroup.WithContext(context.Background())

	// 关键任务，失败会终止程序
	eg.Go(i.dbStart)
	eg.Go(i.initFaq)

	// 非关键任务，失败只打印日志，不影响启动
	eg.Go(func() error {
		_ = i.initRedis()
		return nil
	})
	eg.Go(func() error {
		_ = i.initLlm()
		return nil
	})

	return eg.Wait()
}

// TaskManager 后台任务, 供命令行行为使用
func (i *Initializer) TaskManager() *task.Manager {
	return i.taskManager
}

// Close 优雅地关闭和释放所有资源
func (i *Initializer) Close() {
	if i.debouncer != nil {
		i.debouncer.Stop()
	}
	i.timerStop()
	if cs, ok := service.Service.UserServiceGroup.ChatService.(*user.ChatService); ok {
		cs.Wait()
	}
	if err := i.redisClose(); err != nil {
		global.Log.Warnf("关闭Redis客户端失败: %v", err)
	}
	if err := i.dbClose(); err != nil {
		global.Log.Warnf("关闭数据库失败: %v", err)
	}
	i.logClose()
}
