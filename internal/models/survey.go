package models

import "time"

// Survey опрос пользователя. Вопросы фиксируются при создании.
type Survey struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Questions []string    `json:"questions"`
	UserID    string      `json:"userId"`
	Responses []*Response `json:"responses"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Response ответ на опрос: по одному ответу на каждый вопрос.
type Response struct {
	ID        string    `json:"id"`
	SurveyID  string    `json:"surveyId"`
	Answers   []string  `json:"answers"`
	CreatedAt time.Time `json:"createdAt"`
}
