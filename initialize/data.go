package initialize

import (
	"fmt"

	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/internal/faq"
)

// initFaq 加载FAQ表, 校验失败时保留旧表
func (i *Initializer) initFaq() error {
	m, err := faq.FromConfig(global.Config.Widget.Faq)
	if err != nil {
		return fmt.Errorf("FAQ配置无效[f3ncs1]: %w", err)
	}
	global.Faq.Set(m)
	global.Log.Infof("加载FAQ成功, 共 %d 条", m.Len())
	return nil
}

// LoadFaq 只加载FAQ, 供终端挂件使用
func LoadFaq() error {
	return (&Initializer{}).initFaq()
}
