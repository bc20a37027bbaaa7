// Package generation обращается к OpenAI-совместимому сервису генерации текста:
// предлагает вопросы для опроса и составляет сводку по ответам.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/survey-insights/internal/config"
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
	"github.com/magabrotheeeer/survey-insights/internal/metrics"
	"github.com/magabrotheeeer/survey-insights/internal/models"
)

const (
	questionsMaxTokens = 100
	insightsMaxTokens  = 500
	quotaCode          = "insufficient_quota"
	maxErrorBody       = 64 << 10
)

var (
	// ErrUpstreamTimeout сервис генерации не ответил в отведённое время.
	ErrUpstreamTimeout = errors.New("generation service timed out")
	// ErrUpstreamFailure сервис генерации вернул ошибку или пустой ответ.
	ErrUpstreamFailure = errors.New("generation service failed")
	// ErrQuotaExceeded исчерпана квота ключа API. Оборачивает ErrUpstreamFailure.
	ErrQuotaExceeded = fmt.Errorf("%w: quota exceeded", ErrUpstreamFailure)
)

// FallbackQuestions вопросы на случай, когда сервис генерации недоступен.
var FallbackQuestions = []string{
	"What is your overall satisfaction with our product?",
	"How likely are you to recommend our product to others?",
	"What features do you find most useful?",
	"What improvements would you suggest?",
	"How would you rate our customer support?",
}

// Client клиент сервиса генерации.
type Client struct {
	apiKey         string
	baseURL        string
	questionsModel string
	insightsModel  string
	httpClient     *http.Client
	log            *slog.Logger
	metrics        *metrics.Metrics
}

// NewClient создаёт клиент по настройкам cfg. m может быть nil.
func NewClient(cfg config.Generation, log *slog.Logger, m *metrics.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		questionsModel: cfg.QuestionsModel,
		insightsModel:  cfg.InsightsModel,
		httpClient:     &http.Client{Timeout: timeout},
		log:            log,
		metrics:        m,
	}
}

// GenerateQuestions предлагает вопросы для опроса на тему title.
//
// Не возвращает ошибок: при любом сбое или пустом ответе отдаёт
// FallbackQuestions с IsFallback=true.
func (c *Client) GenerateQuestions(ctx context.Context, title string) Questions {
	const op = "generation.GenerateQuestions"
	log := c.log.With(sl.Op(op))

	prompt := "Generate five engaging questions for a survey based on the topic: " + title
	content, err := c.complete(ctx, c.questionsModel, prompt, questionsMaxTokens)
	if err == nil {
		if items := splitLines(content); len(items) > 0 {
			c.metrics.ObserveGeneration(metrics.KindQuestions, metrics.OutcomeOK)
			return Questions{Items: items}
		}
		err = fmt.Errorf("%w: no questions in reply", ErrUpstreamFailure)
	}

	log.Warn("question generation failed, using fallback", sl.Err(err))
	c.metrics.ObserveGeneration(metrics.KindQuestions, metrics.OutcomeFallback)
	items := make([]string, len(FallbackQuestions))
	copy(items, FallbackQuestions)
	return Questions{Items: items, IsFallback: true}
}

// Summarize составляет markdown-сводку по ответам на опрос.
// Срок ответа задаётся ctx; по его истечении запрос к сервису прерывается.
func (c *Client) Summarize(ctx context.Context, survey *models.Survey, responses []*models.Response) (string, error) {
	const op = "generation.Summarize"

	prompt, err := insightsPrompt(survey, responses)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	content, err := c.complete(ctx, c.insightsModel, prompt, insightsMaxTokens)
	if err != nil {
		c.metrics.ObserveGeneration(metrics.KindInsights, outcome(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if strings.TrimSpace(content) == "" {
		c.metrics.ObserveGeneration(metrics.KindInsights, metrics.OutcomeFailure)
		return "", fmt.Errorf("%s: %w: empty insights", op, ErrUpstreamFailure)
	}
	c.metrics.ObserveGeneration(metrics.KindInsights, metrics.OutcomeOK)
	return content, nil
}

func insightsPrompt(survey *models.Survey, responses []*models.Response) (string, error) {
	data := make([]ResponseData, 0, len(responses))
	for _, r := range responses {
		data = append(data, ResponseData{
			Answers:   r.Answers,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Analyze these survey responses and provide key insights in bullet points:\n")
	fmt.Fprintf(&b, "Title: %s\n", survey.Title)
	fmt.Fprintf(&b, "Questions: %s\n", strings.Join(survey.Questions, "\n"))
	fmt.Fprintf(&b, "Responses: %s\n\n", encoded)
	b.WriteString("Focus on:\n")
	b.WriteString("- Common patterns in responses\n")
	b.WriteString("- Unexpected findings\n")
	b.WriteString("- Potential areas for improvement\n")
	b.WriteString("- Sentiment analysis\n")
	b.WriteString("- Key takeaways\n\n")
	b.WriteString("Format the response in markdown with bold headings for each section.")
	return b.String(), nil
}

func (c *Client) complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:     model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(resp)
	}

	var parsed chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if isTimeout(ctx, err) {
			return "", fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("%w: decode reply: %w", ErrUpstreamFailure, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in reply", ErrUpstreamFailure)
	}
	return parsed.Choices[0].Message.Content, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr apiError
	if json.Unmarshal(raw, &apiErr) == nil {
		if apiErr.Error.Code == quotaCode || apiErr.Error.Type == quotaCode {
			return ErrQuotaExceeded
		}
		if apiErr.Error.Message != "" {
			return fmt.Errorf("%w: %s: %s", ErrUpstreamFailure, resp.Status, apiErr.Error.Message)
		}
	}
	return fmt.Errorf("%w: unexpected status: %s", ErrUpstreamFailure, resp.Status)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func outcome(err error) string {
	if errors.Is(err, ErrUpstreamTimeout) {
		return metrics.OutcomeTimeout
	}
	return metrics.OutcomeFailure
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}
