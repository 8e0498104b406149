package user

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gitee.com/taoJie_1/health-chat/model/common"
)

var (
	ErrEmptyMessage   = errors.New("message不能为空")
	ErrMessageTooLong = errors.New("message过长")
)

type IValidator interface {
	ValidatorChatRequest(data *common.ChatRequest) error
}

type Validator struct {
	MaxPromptLength uint // 按字符计, 0为不限制
}

// ValidatorChatRequest 会就地去掉message首尾空白
func (v *Validator) ValidatorChatRequest(data *common.ChatRequest) error {
	data.Message = strings.TrimSpace(data.Message)
	if data.Message == "" {
		return ErrEmptyMessage
	}
	if v.MaxPromptLength > 0 && uint(utf8.RuneCountInString(data.Message)) > v.MaxPromptLength {
		return fmt.Errorf("%w: 最多%d个字符", ErrMessageTooLong, v.MaxPromptLength)
	}
	return nil
}
