package submit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

type SurveyServiceMock struct {
	mock.Mock
}

func (m *SurveyServiceMock) Submit(ctx context.Context, surveyID string, answers []string) (string, error) {
	args := m.Called(ctx, surveyID, answers)
	return args.String(0), args.Error(1)
}

func TestSubmitHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		body       string
		setupMock  func(m *SurveyServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "accepted",
			body: `{"surveyId":"s-1","answers":["yes","no"]}`,
			setupMock: func(m *SurveyServiceMock) {
				m.On("Submit", mock.Anything, "s-1", []string{"yes", "no"}).Return("r-1", nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"responseId":"r-1"}`,
		},
		{
			name:       "missing answers",
			body:       `{"surveyId":"s-1"}`,
			setupMock:  func(_ *SurveyServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Survey ID and answers are required"}`,
		},
		{
			name:       "missing survey id",
			body:       `{"answers":["a"]}`,
			setupMock:  func(_ *SurveyServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Survey ID and answers are required"}`,
		},
		{
			name: "answer count mismatch",
			body: `{"surveyId":"s-1","answers":["only one"]}`,
			setupMock: func(m *SurveyServiceMock) {
				m.On("Submit", mock.Anything, "s-1", []string{"only one"}).
					Return("", fmt.Errorf("services.survey.Submit: %w: got 1, want 2", storage.ErrAnswerCount))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Answers count does not match questions count"}`,
		},
		{
			name: "unknown survey",
			body: `{"surveyId":"nope","answers":["a"]}`,
			setupMock: func(m *SurveyServiceMock) {
				m.On("Submit", mock.Anything, "nope", []string{"a"}).Return("", storage.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Survey not found"}`,
		},
		{
			name: "storage failure",
			body: `{"surveyId":"s-1","answers":["a"]}`,
			setupMock: func(m *SurveyServiceMock) {
				m.On("Submit", mock.Anything, "s-1", []string{"a"}).Return("", errors.New("tx aborted"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(SurveyServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/submitSurvey", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
