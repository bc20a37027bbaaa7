package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/survey-insights/internal/models"
	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

// CreateResponse сохраняет ответ на опрос.
//
// Проверка опроса и вставка выполняются в одной транзакции под блокировкой
// строки опроса: ответ либо сохранён и виден из опроса, либо не сохранён вовсе.
func (s *Storage) CreateResponse(ctx context.Context, response *models.Response) (err error) {
	const op = "storage.CreateResponse"
	db, err := s.db(ctx, op)
	if err != nil {
		return err
	}

	answers, err := json.Marshal(response.Answers)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var questionCount int
	lockQuery := `SELECT jsonb_array_length(questions)
				  FROM surveys
				  WHERE id = $1
				  FOR SHARE`
	if err = tx.QueryRowContext(ctx, lockQuery, response.SurveyID).Scan(&questionCount); err != nil {
		return mapError(op, err)
	}
	if questionCount != len(response.Answers) {
		return fmt.Errorf("%s: %w", op, storage.ErrAnswerCount)
	}

	insertQuery := `INSERT INTO responses (id, survey_id, answers, created_at)
					VALUES ($1, $2, $3, $4)`
	if _, err = tx.ExecContext(ctx, insertQuery,
		response.ID, response.SurveyID, string(answers), response.CreatedAt); err != nil {
		return mapError(op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListResponses возвращает ответы на опрос, новые первыми.
func (s *Storage) ListResponses(ctx context.Context, surveyID string) ([]*models.Response, error) {
	const op = "storage.ListResponses"
	db, err := s.db(ctx, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, answers, created_at
			  FROM responses
			  WHERE survey_id = $1
			  ORDER BY created_at DESC`
	rows, err := db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Response, 0)
	for rows.Next() {
		var (
			id      string
			answers []byte
			created sql.NullTime
		)
		if err = rows.Scan(&id, &answers, &created); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r, err := decodeResponse(id, surveyID, answers, created.Time)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
