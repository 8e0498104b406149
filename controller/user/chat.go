package user

import (
	"errors"
	"net/http"

	"gitee.com/taoJie_1/health-chat/global"
	"gitee.com/taoJie_1/health-chat/internal/aiservice"
	"gitee.com/taoJie_1/health-chat/model/common"
	"gitee.com/taoJie_1/health-chat/service"
	"gitee.com/taoJie_1/health-chat/service/user"
	"github.com/gin-gonic/gin"
)

type ChatApi struct{}

// GeneralChat 通用聊天接口, 挂件的AI适配器调用此接口
func (c *ChatApi) GeneralChat(ctx *gin.Context) {
	var req common.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.ChatFail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	// 只接受本服务签发的会话, 伪造或过期的会话按无历史处理
	var sessionID string
	if token := ctx.GetHeader(aiservice.SessionHeader); token != "" {
		id, ok := service.Service.UserServiceGroup.SessionSigner.Verify(token)
		if !ok {
			global.Log.Debugf("[GeneralChat]会话签名无效, 忽略历史")
		}
		sessionID = id
	}
	reply, err := service.Service.UserServiceGroup.ChatService.Reply(ctx.Request.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmptyMessage), errors.Is(err, user.ErrMessageTooLong):
			common.ChatFail(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrLlmUnavailable):
			global.Log.Errorf("[GeneralChat]LLM错误: %v", err)
			common.ChatFail(ctx, http.StatusServiceUnavailable, user.ErrLlmUnavailable.Error())
		default:
			global.Log.Errorf("[GeneralChat]%v", err)
			common.ChatFail(ctx, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	ctx.JSON(http.StatusOK, reply)
}
