package user

import (
	"net/http"
	"strconv"

	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/service"
	"gitee.com/taoJie_1/health-chat/service/user"
	"github.com/gin-gonic/gin"
)

type WidgetApi struct{}

// Page 服务端渲染的挂件页面
func (w *WidgetApi) Page(ctx *gin.Context) {
	sess := w.session(ctx)

	ctx.Header("Cache-Control", "no-store")
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(http.StatusOK)
	title := global.Config.ProjectName
	if title == "" {
		title = "Health Assistant"
	}
	if err := user.RenderWidgetPage(ctx.Writer, title, global.Config.Ai.MaxPromptLength, sess.View()); err != nil {
		global.Log.Errorf("[widget]渲染页面失败: %v", err)
	}
}

func (w *WidgetApi) Toggle(ctx *gin.Context) {
	sess := w.session(ctx)
	sess.Toggle()
	w.back(ctx, sess)
}

// Send 表单字段message, 处理完毕后重定向回页面
func (w *WidgetApi) Send(ctx *gin.Context) {
	sess := w.session(ctx)
	sess.Send(ctx.Request.Context(), ctx.PostForm("message"))
	w.back(ctx, sess)
}

func (w *WidgetApi) Suggest(ctx *gin.Context) {
	sess := w.session(ctx)
	if i, err := strconv.Atoi(ctx.Param("index")); err == nil {
		sess.Suggest(ctx.Request.Context(), i)
	}
	w.back(ctx, sess)
}

// session 按cookie取会话, 并刷新cookie
func (w *WidgetApi) session(ctx *gin.Context) *user.WidgetSession {
	id, _ := ctx.Cookie(user.SessionCookie)
	sess := service.Service.UserServiceGroup.WidgetService.Session(id)
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(user.SessionCookie, sess.ID(), int(global.Config.Widget.SessionTTL), "/", "", false, true)
	return sess
}

// back POST-重定向-GET, 定位到最新一条消息
func (w *WidgetApi) back(ctx *gin.Context, sess *user.WidgetSession) {
	target := "/widget"
	if id := sess.View().LastID; id != "" {
		target += "#msg-" + id
	}
	ctx.Redirect(http.StatusSeeOther, target)
}
