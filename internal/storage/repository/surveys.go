package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magabrotheeeer/survey-insights/internal/models"
)

// CreateSurvey сохраняет опрос вместе с вопросами.
func (s *Storage) CreateSurvey(ctx context.Context, survey *models.Survey) error {
	const op = "storage.CreateSurvey"
	db, err := s.db(ctx, op)
	if err != nil {
		return err
	}

	questions, err := json.Marshal(survey.Questions)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO surveys (id, title, questions, user_id, created_at)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err = db.ExecContext(ctx, query,
		survey.ID, survey.Title, string(questions), survey.UserID, survey.CreatedAt); err != nil {
		return mapError(op, err)
	}
	return nil
}

// GetSurvey возвращает опрос без ответов.
func (s *Storage) GetSurvey(ctx context.Context, id string) (*models.Survey, error) {
	const op = "storage.GetSurvey"
	db, err := s.db(ctx, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, title, questions, user_id, created_at
			  FROM surveys
			  WHERE id = $1`
	var (
		sv        models.Survey
		questions []byte
	)
	if err = db.QueryRowContext(ctx, query, id).
		Scan(&sv.ID, &sv.Title, &questions, &sv.UserID, &sv.CreatedAt); err != nil {
		return nil, mapError(op, err)
	}
	if err = json.Unmarshal(questions, &sv.Questions); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sv, nil
}

// GetSurveyWithResponses возвращает опрос и его ответы, новые первыми.
func (s *Storage) GetSurveyWithResponses(ctx context.Context, id string) (*models.Survey, error) {
	sv, err := s.GetSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	sv.Responses, err = s.ListResponses(ctx, id)
	if err != nil {
		return nil, err
	}
	return sv, nil
}

// ListSurveysByUser возвращает опросы пользователя с вложенными ответами.
// Новые опросы идут первыми, ответы внутри опроса тоже.
func (s *Storage) ListSurveysByUser(ctx context.Context, userID string) ([]*models.Survey, error) {
	const op = "storage.ListSurveysByUser"
	db, err := s.db(ctx, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT s.id, s.title, s.questions, s.user_id, s.created_at,
			      r.id, r.answers, r.created_at
			  FROM surveys s
			  LEFT JOIN responses r ON r.survey_id = s.id
			  WHERE s.user_id = $1
			  ORDER BY s.created_at DESC, s.id, r.created_at DESC`
	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Survey, 0)
	var current *models.Survey
	for rows.Next() {
		var (
			sv                 models.Survey
			questions, answers []byte
			respID             sql.NullString
			respCreated        sql.NullTime
		)
		if err = rows.Scan(&sv.ID, &sv.Title, &questions, &sv.UserID, &sv.CreatedAt,
			&respID, &answers, &respCreated); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if current == nil || current.ID != sv.ID {
			if err = json.Unmarshal(questions, &sv.Questions); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			sv.Responses = make([]*models.Response, 0)
			current = &sv
			result = append(result, current)
		}
		if !respID.Valid {
			continue
		}
		resp, err := decodeResponse(respID.String, sv.ID, answers, respCreated.Time)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		current.Responses = append(current.Responses, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func decodeResponse(id, surveyID string, answers []byte, createdAt time.Time) (*models.Response, error) {
	r := &models.Response{
		ID:        id,
		SurveyID:  surveyID,
		CreatedAt: createdAt,
	}
	if err := json.Unmarshal(answers, &r.Answers); err != nil {
		return nil, err
	}
	return r, nil
}
