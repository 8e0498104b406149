package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gitee.com/taoJie_1/health-chat/internal/llm"
	"gitee.com/taoJie_1/health-chat/internal/redis"
	"gitee.com/taoJie_1/health-chat/model/common"
	"gitee.com/taoJie_1/health-chat/model/db"
	"gitee.com/taoJie_1/health-chat/model/enum"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

var ErrLlmUnavailable = errors.New("AI service is not available")

type IChatService interface {
	// Reply 处理一条通用聊天消息: 校验, 安全拦截, 缓存, LLM
	Reply(ctx context.Context, sessionID string, req *common.ChatRequest) (common.ChatReply, error)
}

type ChatOptions struct {
	Llm       llm.Service       // 为nil时返回 ErrLlmUnavailable
	Cache     *redis.ReplyCache // 可为nil
	History   HistoryService    // 可为nil
	Logs      ChatLogStore      // 可为nil, 不记录
	Validator IValidator
	Log       *logrus.Logger
}

type ChatService struct {
	ChatOptions
	wg sync.WaitGroup
}

func NewChatService(opts ChatOptions) *ChatService {
	if opts.Validator == nil {
		opts.Validator = &Validator{}
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &ChatService{ChatOptions: opts}
}

func (s *ChatService) Reply(ctx context.Context, sessionID string, req *common.ChatRequest) (common.ChatReply, error) {
	if err := s.Validator.ValidatorChatRequest(req); err != nil {
		return common.ChatReply{}, err
	}
	message := req.Message

	if IsPrescriptionRequest(message) {
		s.Log.Infof("[chat]处方类问题已拦截: %q", message)
		return s.finish(ctx, sessionID, message, string(enum.ReplyMsgSafetyBlock), enum.ReplySourceGuard), nil
	}

	var history []common.LlmMessage
	if s.History != nil {
		h, err := s.History.GetOrFetch(ctx, sessionID)
		if err != nil {
			s.Log.Warnf("[chat]获取会话历史失败, 按新会话处理: %v", err)
		}
		history = h
	}

	// 有上下文的提问不走缓存
	useCache := len(history) == 0 && s.Cache.Enabled()
	if useCache {
		reply, ok, err := s.Cache.Get(ctx, message)
		if err != nil {
			s.Log.Warnf("[chat]%v", err)
		} else if ok {
			return s.finish(ctx, sessionID, message, reply, enum.ReplySourceCache), nil
		}
	}

	if s.Llm == nil {
		return common.ChatReply{}, ErrLlmUnavailable
	}

	reply, err := s.Llm.ChatCompletionWithHistory(ctx, enum.ModelSmall, enum.SystemPromptHealthcare, message, history)
	if err != nil {
		return common.ChatReply{}, fmt.Errorf("%w: %v", ErrLlmUnavailable, err)
	}

	if useCache {
		if err := s.Cache.Set(ctx, message, reply); err != nil {
			s.Log.Warnf("[chat]%v", err)
		}
	}
	return s.finish(ctx, sessionID, message, reply, enum.ReplySourceLlm), nil
}

// finish 更新会话历史并异步落库
func (s *ChatService) finish(ctx context.Context, sessionID, message, reply string, source enum.ReplySource) common.ChatReply {
	if s.History != nil {
		_ = s.History.Append(ctx, sessionID,
			common.LlmMessage{Role: openai.ChatMessageRoleUser, Content: message},
			common.LlmMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
		)
	}

	if s.Logs != nil {
		row := db.ChatLogs{SessionId: sessionID, Message: message, Reply: reply, Source: source}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Logs.Insert(ctx, &row); err != nil {
				s.Log.Warnf("[chat]写入聊天记录失败: %v", err)
			}
		}()
	}

	return common.ChatReply{
		Reply:      reply,
		Source:     string(source),
		Disclaimer: string(enum.ReplyMsgDisclaimer),
	}
}

// Wait 等待异步写库完成
func (s *ChatService) Wait() {
	s.wg.Wait()
}
