package enum

type DbType string

const (
	MYSQL  DbType = `mysql`
	SQLITE DbType = `sqlite3`
)

type Msg string

const (
	DefaultSuccessMsg Msg = `ok`
	DefaultFailMsg    Msg = `错误`
)

type ResCode int8

const (
	SuccessCode ResCode = 0
	ErrorCode   ResCode = 1
)

// ResponseType 聊天回复的展示类型
type ResponseType string

const (
	ResponseText       ResponseType = "text"
	ResponseNavigation ResponseType = "navigation"
	ResponseList       ResponseType = "list"
)

func (t ResponseType) Valid() bool {
	switch t {
	case ResponseText, ResponseNavigation, ResponseList:
		return true
	}
	return false
}

// Sender 消息发送方
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type ReplyMsg string

const (
	// AI服务不可用时展示给用户的固定文案
	ReplyMsgConnectionError ReplyMsg = "I'm having trouble connecting to the server. Please check your internet or try again later."
	// 接口成功但没有返回reply
	ReplyMsgEmptyReply ReplyMsg = "I'm having trouble thinking right now."
	ReplyMsgDisclaimer ReplyMsg = "This is educational guidance, not medical advice."
	// 用药/处方类问题的安全拦截
	ReplyMsgSafetyBlock ReplyMsg = "⚠️ **Safety Notice**: I cannot provide medication prescriptions, dosages, or drug recommendations.\n\n" +
		"Please consult a licensed healthcare professional or pharmacist for medication guidance.\n\n" +
		"I can help with:\n" +
		"• Explaining your risk scores\n" +
		"• Prevention strategies\n" +
		"• Health education\n" +
		"• Navigation assistance"
)

type SystemPrompt string

const (
	SystemPromptHealthcare SystemPrompt = `You are an AI healthcare assistant integrated into a preventive health risk prediction platform.

Your Guidelines:
1. Focus on disease awareness, prevention, and explanation of risk scores
2. Do NOT provide diagnosis or medication advice
3. Do NOT prescribe medications or suggest dosages
4. Always add disclaimers: "This is educational guidance, not medical advice."
5. Be calm, clinical, structured, and trustworthy
6. Direct users to healthcare professionals for medical decisions
7. If asked about prescriptions, firmly decline and suggest consulting a doctor

Your Tone: Professional, educational, health-focused, never casual or meme-like`
)

type LlmSize string

const (
	ModelSmall  LlmSize = "small"
	ModelMedium LlmSize = "medium"
	ModelLarge  LlmSize = "large"
)

// ReplySource 记录一条回复的来源
type ReplySource string

const (
	ReplySourceLlm   ReplySource = "llm"
	ReplySourceCache ReplySource = "cache"
	ReplySourceGuard ReplySource = "guard"
)

// Action 命令行 -a 参数
type Action string

const (
	ActionServe Action = ""
	ActionChat  Action = "chat"
	ActionClean Action = "clean"
)
