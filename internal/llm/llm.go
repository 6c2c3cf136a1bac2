// Package llm adapts an OpenAI-compatible backend to the three content
// operations the tutor needs: lessons, quizzes, and free-text answers.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pavelanni/tutor/internal/llm/prompts"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/quiz"
)

// DegradedLessonPrefix marks lesson text substituted for a failed generation.
const DegradedLessonPrefix = "Error generating lesson: "

// DegradedAnswerPrefix marks answer text substituted for a failed generation.
const DegradedAnswerPrefix = "Sorry, I couldn't process your question right now. Error: "

// rawDiagnosticLimit caps how much of an unparsable response is kept in the
// error shown to the user.
const rawDiagnosticLimit = 200

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// New creates a new LLM client. Every call carries an explicit timeout;
// expiry surfaces as the operation's normal failure mode.
func New(baseURL, apiKey, modelName string, timeout time.Duration) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:     openai.NewClientWithConfig(config),
		model:   modelName,
		timeout: timeout,
	}
}

// Ping verifies the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("LLM endpoint unreachable: %w", err)
	}
	return nil
}

// GenerateLesson produces lesson prose for a topic. It never returns an
// error: on failure the returned text is an inline degraded message, still
// displayable, so the user flow is informed rather than blocked.
func (c *Client) GenerateLesson(ctx context.Context, topic string, age int) string {
	prompt, err := prompts.BuildLesson(prompts.Data{Topic: topic, Age: age, Tone: Tone(age)})
	if err != nil {
		slog.Error("lesson prompt build failed", "error", err)
		return DegradedLessonPrefix + err.Error()
	}

	content, err := c.complete(ctx, prompt, 2000)
	if err != nil {
		slog.Error("lesson generation failed", "topic", topic, "error", err)
		return DegradedLessonPrefix + err.Error()
	}
	if strings.TrimSpace(content) == "" {
		slog.Error("lesson generation returned empty content", "topic", topic)
		return DegradedLessonPrefix + "empty response from model"
	}
	return content
}

// AnswerQuestion answers a free-text question about the current lesson.
// Same degraded policy as GenerateLesson.
func (c *Client) AnswerQuestion(ctx context.Context, question, topic string, age int) string {
	prompt, err := prompts.BuildAnswer(prompts.Data{Topic: topic, Age: age, Tone: Tone(age), Question: question})
	if err != nil {
		slog.Error("answer prompt build failed", "error", err)
		return DegradedAnswerPrefix + err.Error()
	}

	content, err := c.complete(ctx, prompt, 500)
	if err != nil {
		slog.Error("question answering failed", "topic", topic, "error", err)
		return DegradedAnswerPrefix + err.Error()
	}
	return content
}

// GenerateQuiz produces the fixed-size question set for a topic. Unlike
// lessons, a quiz cannot be degraded: it is either well-formed or absent,
// so any backend or parse failure comes back as an error and no items.
func (c *Client) GenerateQuiz(ctx context.Context, topic string, age int) ([]model.QuizItem, error) {
	prompt, err := prompts.BuildQuiz(prompts.Data{Topic: topic, Age: age, Tone: Tone(age)})
	if err != nil {
		return nil, fmt.Errorf("build quiz prompt: %w", err)
	}

	raw, err := c.complete(ctx, prompt, 2000)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	items, err := parseQuiz(raw)
	if err != nil {
		slog.Error("quiz parse failed", "topic", topic, "error", err)
		return nil, fmt.Errorf("%w (raw: %s)", err, truncate(raw, rawDiagnosticLimit))
	}
	return items, nil
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// quizResponse is the JSON contract for quiz generation.
type quizResponse struct {
	Questions []model.QuizItem `json:"questions"`
}

func parseQuiz(raw string) ([]model.QuizItem, error) {
	text := stripFences(raw)

	var parsed quizResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("parse quiz JSON: %w", err)
	}
	if err := validateQuiz(parsed.Questions); err != nil {
		return nil, err
	}
	return parsed.Questions, nil
}

func validateQuiz(items []model.QuizItem) error {
	if len(items) != quiz.NumQuestions {
		return fmt.Errorf("expected %d questions, got %d", quiz.NumQuestions, len(items))
	}
	for i, item := range items {
		if strings.TrimSpace(item.Question) == "" {
			return fmt.Errorf("question %d: empty text", i+1)
		}
		if len(item.Options) != quiz.NumOptions {
			return fmt.Errorf("question %d: expected %d options, got %d", i+1, quiz.NumOptions, len(item.Options))
		}
		if item.Correct < 0 || item.Correct >= len(item.Options) {
			return fmt.Errorf("question %d: correct index %d out of range", i+1, item.Correct)
		}
	}
	return nil
}

// stripFences removes an incidental markdown code fence wrapping the JSON
// body. Models wrap structured output this way often enough that the parser
// has to tolerate it.
func stripFences(s string) string {
	s = strings.TrimSpace(s)

	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
	} else {
		return s
	}

	if end := strings.Index(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// IsDegraded reports whether generated content is an inline error message
// substituted for real content.
func IsDegraded(content string) bool {
	return strings.HasPrefix(content, DegradedLessonPrefix) ||
		strings.HasPrefix(content, DegradedAnswerPrefix)
}
