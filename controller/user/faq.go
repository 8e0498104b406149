package user

import (
	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/model/common"
	"github.com/gin-gonic/gin"
)

type FaqApi struct{}

// List 当前生效的FAQ表, 按匹配顺序排列
func (f *FaqApi) List(ctx *gin.Context) {
	m := global.Faq.Get()
	if m == nil {
		common.Success(ctx, []common.FaqItem{})
		return
	}

	entries := m.Entries()
	list := make([]common.FaqItem, 0, len(entries))
	for _, e := range entries {
		list = append(list, common.FaqItem{
			Trigger: e.Trigger,
			Type:    string(e.Response.Type),
			Content: e.Response.Content,
			Items:   e.Response.Items,
			Action:  e.Response.Action,
		})
	}
	common.Success(ctx, list)
}
