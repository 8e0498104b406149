package enum

import (
	"strings"
	"testing"
)

// TestHealthcarePromptConsistency 确保系统提示词里要求模型附带的免责声明
// 与代码中的常量一致, 避免只改了一边
func TestHealthcarePromptConsistency(t *testing.T) {
	prompt := string(SystemPromptHealthcare)

	if !strings.Contains(prompt, `"`+string(ReplyMsgDisclaimer)+`"`) {
		t.Errorf("SystemPromptHealthcare应包含免责声明常量: %s", ReplyMsgDisclaimer)
	}

	for _, kw := range []string{"prescri", "dosage", "diagnosis"} {
		if !strings.Contains(strings.ToLower(prompt), kw) {
			t.Errorf("SystemPromptHealthcare应包含安全约束关键字: %s", kw)
		}
	}
}

func TestResponseTypeValid(t *testing.T) {
	for _, typ := range []ResponseType{ResponseText, ResponseNavigation, ResponseList} {
		if !typ.Valid() {
			t.Errorf("%q 应为合法类型", typ)
		}
	}
	if ResponseType("card").Valid() {
		t.Error("未知类型不应合法")
	}
}
