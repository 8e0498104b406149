package user

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SessionSigner 给网页会话ID签名, 通用聊天接口只接受自己签发的会话
type SessionSigner struct {
	key []byte
}

// NewSessionSigner secret为空时使用随机密钥, 重启后旧签名失效
func NewSessionSigner(secret string) *SessionSigner {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("生成会话密钥失败[s8k2vd]: " + err.Error())
		}
	}
	return &SessionSigner{key: key}
}

func (s *SessionSigner) mac(id string) string {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil))
}

// Sign 返回 "<id>.<签名>"
func (s *SessionSigner) Sign(id string) string {
	return id + "." + s.mac(id)
}

// Verify 签名不对或格式错误时返回 "", false
func (s *SessionSigner) Verify(token string) (string, bool) {
	if s == nil || token == "" {
		return "", false
	}
	i := strings.LastIndexByte(token, '.')
	if i <= 0 {
		return "", false
	}
	id, sig := token[:i], token[i+1:]
	if !hmac.Equal([]byte(sig), []byte(s.mac(id))) {
		return "", false
	}
	return id, true
}
