// Package response содержит типы JSON-ответов HTTP-обработчиков:
// признак успеха и тело ошибки с необязательными подробностями.
package response

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator"
)

// Общие тексты ошибок.
const (
	MsgUnauthorized  = "Unauthorized"
	MsgInternal      = "Internal server error"
	MsgInvalidBody   = "Invalid request body"
	MsgTooManyCalls  = "Too many requests"
	MsgSurveyMissing = "Survey not found"
)

var exposeDetails atomic.Bool

// SetExposeDetails включает поле details в ответах с ошибкой.
// Вне production-окружения details содержит цепочку ошибок.
func SetExposeDetails(expose bool) {
	exposeDetails.Store(expose)
}

// Success тело успешного ответа без данных.
type Success struct {
	Success bool `json:"success" example:"true"`
}

// OK возвращает Success.
func OK() Success {
	return Success{Success: true}
}

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error   string `json:"error" example:"Survey not found"`
	Details string `json:"details,omitempty"`
}

// Error возвращает ErrorResponse с сообщением msg.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ErrorWithDetails возвращает ErrorResponse; текст err попадает в details,
// только если это разрешено SetExposeDetails.
func ErrorWithDetails(msg string, err error) ErrorResponse {
	resp := ErrorResponse{Error: msg}
	if err != nil && exposeDetails.Load() {
		resp.Details = err.Error()
	}
	return resp
}

// ValidationError формирует ErrorResponse по ошибкам валидации.
// Если не заполнено обязательное поле, сообщением становится requiredMsg.
func ValidationError(errs validator.ValidationErrors, requiredMsg string) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			return ErrorResponse{Error: requiredMsg}
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	if len(errsMsgs) == 0 {
		return ErrorResponse{Error: requiredMsg}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
