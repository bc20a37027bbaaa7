package storage

import "errors"

var (
	// ErrStorageUnavailable хранилище недоступно: не задан адрес или не удалось подключиться.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrConflict нарушено ограничение уникальности.
	ErrConflict = errors.New("record already exists")
	// ErrAnswerCount число ответов не совпадает с числом вопросов опроса.
	ErrAnswerCount = errors.New("answer count does not match question count")
)
