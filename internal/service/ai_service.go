package service

import (
	"bytes"
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/util"
	"elearn_backend/pkg/logger"
	"elearn_backend/pkg/monitoring"
	"elearn_backend/pkg/tracing"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AIService talks to an OpenAI-compatible chat completions endpoint.
type AIService struct {
	config config.AIConfig
	client *http.Client
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		sleep:  sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = "You are a teaching assistant for an online programming school. Answer with JSON only, no Markdown."

// Chat sends one prompt and returns the assistant's reply.
func (s *AIService) Chat(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "ai.chat", attribute.String("ai.model", s.config.Model))
	start := time.Now()
	reply, err := s.chat(ctx, prompt)
	monitoring.ObserveCollaborator("ai", start, err)
	tracing.EndSpan(span, err)
	return reply, err
}

func (s *AIService) chat(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.config.BaseURL, "/")+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", util.MimeJSON)
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("AI returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// StripCodeFence removes a surrounding ``` or ```json block from a model reply.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// ValidateJSON checks raw against schema and joins every violation into one error.
func ValidateJSON(schema *gojsonschema.Schema, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrAIResponseInvalid, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", util.ErrAIResponseInvalid, strings.Join(msgs, "; "))
}

func (s *AIService) backoff(attempt int) time.Duration {
	base := s.config.RetryDelay
	if base <= 0 {
		return 0
	}
	return base<<(attempt-1) + time.Duration(rand.Int64N(int64(base)))
}

// GenerateJSON asks for a JSON document matching schema and decodes it into dst.
// Transport errors, unparsable replies and schema violations are retried with
// exponential backoff plus jitter, up to MaxRetries attempts in total.
func (s *AIService) GenerateJSON(ctx context.Context, prompt string, schema *gojsonschema.Schema, dst interface{}) error {
	attempts := s.config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = s.generateOnce(ctx, prompt, schema, dst)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Log.Warn("AI request failed",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", attempts),
			zap.Error(lastErr))
		if attempt == attempts {
			break
		}
		if err := s.sleep(ctx, s.backoff(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

func (s *AIService) generateOnce(ctx context.Context, prompt string, schema *gojsonschema.Schema, dst interface{}) error {
	reply, err := s.Chat(ctx, prompt)
	if err != nil {
		return err
	}
	raw := []byte(StripCodeFence(reply))
	if !json.Valid(raw) {
		return fmt.Errorf("%w: reply is not JSON", util.ErrAIResponseInvalid)
	}
	if schema != nil {
		if err := ValidateJSON(schema, raw); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", util.ErrAIResponseInvalid, err)
	}
	return nil
}

func mustSchema(doc string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("invalid JSON schema: %v", err))
	}
	return schema
}
