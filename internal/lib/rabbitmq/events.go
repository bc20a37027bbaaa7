package rabbitmq

import "time"

// Ключи маршрутизации событий.
const (
	RoutingSurveyCreated     = "survey.created"
	RoutingResponseSubmitted = "response.submitted"
)

// SurveyCreated публикуется после сохранения нового опроса.
type SurveyCreated struct {
	SurveyID   string    `json:"surveyId"`
	UserID     string    `json:"userId"`
	Questions  int       `json:"questions"`
	IsFallback bool      `json:"isFallback"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ResponseSubmitted публикуется после сохранения ответа на опрос.
type ResponseSubmitted struct {
	SurveyID    string    `json:"surveyId"`
	ResponseID  string    `json:"responseId"`
	SubmittedAt time.Time `json:"submittedAt"`
}
