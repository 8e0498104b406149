package router

import (
	"net/http"
	"time"

	"gitee.com/taoJie_1/health-chat/controller"
	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/internal/aiservice"
	"gitee.com/taoJie_1/health-chat/model/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func Start(ginServer *gin.Engine) {
	// 挂件只提交短文本
	ginServer.MaxMultipartMemory = 1 << 20

	ginServer.NoRoute(func(ctx *gin.Context) {
		common.FailNotFound(ctx)
	})

	ginServer.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/widget")
	})

	api := ginServer.Group("api", corsHandle())
	{
		api.POST("/general-chat", controller.Api.UserApiGroup.ChatApi.GeneralChat)

		v1 := api.Group("v1")
		v1.GET("/faq", controller.Api.UserApiGroup.FaqApi.List)
	}

	widget := ginServer.Group("widget")
	{
		widget.GET("", controller.Api.UserApiGroup.WidgetApi.Page)
		widget.POST("/toggle", controller.Api.UserApiGroup.WidgetApi.Toggle)
		widget.POST("/send", controller.Api.UserApiGroup.WidgetApi.Send)
		widget.POST("/suggest/:index", controller.Api.UserApiGroup.WidgetApi.Suggest)
	}
}

// corsHandle 跨域配置, cors为空或包含*时允许所有来源
func corsHandle() gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", aiservice.SessionHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	origins := global.Config.Cors
	for _, o := range origins {
		if o == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = origins
	}
	return cors.New(conf)
}
