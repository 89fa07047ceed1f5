package constants

// echo context 中使用的 key
const (
	ContextKeyAccount = "account"
	ContextKeyToken   = "token"
)
