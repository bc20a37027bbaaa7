// Package password реализует хеширование и проверку паролей пользователей.
//
// Hash создаёт bcrypt-хеш с солью, встроенной в результат, поэтому соль
// не нужно хранить отдельно. Verify сравнивает пароль с сохранённым хешем.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash возвращается, если сохранённый хеш не является bcrypt-хешем.
// Это признак повреждения данных, а не неверного пароля.
var ErrMalformedHash = errors.New("malformed password hash")

// MaxLength предельная длина пароля в байтах, которую принимает bcrypt.
const MaxLength = 72

// ErrTooLong пароль длиннее MaxLength байт.
var ErrTooLong = errors.New("password is too long")

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
//
// Для одного и того же пароля каждый вызов даёт разный результат.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	if len(password) > MaxLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с bcrypt‑хэшем.
//
// Несовпадение пароля возвращает false без ошибки. Ошибка возвращается
// только для некорректного хеша.
func Verify(password, hash string) (bool, error) {
	const op = "password.Verify"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w: %w", op, ErrMalformedHash, err)
	}
}
