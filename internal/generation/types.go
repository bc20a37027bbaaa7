package generation

// chatRequest тело запроса chat completions.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse ответ chat completions; нужна только первая альтернатива.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// apiError тело ошибки сервиса генерации.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Questions результат генерации вопросов.
type Questions struct {
	Items      []string
	IsFallback bool
}

// ResponseData ответ на опрос в том виде, в каком он уходит в промпт сводки.
type ResponseData struct {
	Answers   []string `json:"answers"`
	CreatedAt string   `json:"createdAt"`
}
