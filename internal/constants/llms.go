package constants

const (
	OpenAI = "openai"
	Gemini = "gemini"
)
