// Package quizflow drives a learner through one quiz: it resolves the attempt
// gate, collects answers, submits them and routes to the matching follow-up panel.
package quizflow

import (
	"bytes"
	"context"
	"elearn_backend/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrGate wraps failures to resolve whether a quiz may be attempted.
	ErrGate = errors.New("quiz gate failed")
	// ErrSubmit wraps failures to score a submission.
	ErrSubmit = errors.New("quiz submission failed")
	// ErrPanel wraps failures of the enhancement, resource and recommendation calls.
	ErrPanel = errors.New("panel request failed")
)

// Session identifies the learner. It is passed to NewClient rather than read
// from process state so several learners can share a process.
type Session struct {
	BaseURL string
	Token   string
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type QuestionReview struct {
	QuestionText   string   `json:"questionText"`
	CorrectAnswers []string `json:"correctAnswers"`
	Explanation    string   `json:"explanation,omitempty"`
}

type Evaluation struct {
	QuizAttempt *model.QuizAttempt `json:"quizAttempt"`
	Message     string             `json:"message"`
	Marks       []bool             `json:"marks"`
	Review      []QuestionReview   `json:"review,omitempty"`
}

// Enhancement is the AI rewrite of a lesson. AI is left raw for the caller to render.
type Enhancement struct {
	Message string          `json:"message"`
	AI      json.RawMessage `json:"ai"`
	Cached  bool            `json:"cached"`
}

type ResourceLink struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type Resources struct {
	Message string `json:"message"`
	AI      struct {
		Title        string         `json:"title"`
		Description  string         `json:"description"`
		YoutubeLinks []ResourceLink `json:"youtubeLinks"`
		CourseLinks  []ResourceLink `json:"courseLinks"`
	} `json:"ai"`
	Cached bool `json:"cached"`
}

type Recommendation struct {
	CourseRecommended *model.Course `json:"courseRecommended"`
}

type AttemptPage struct {
	List       []model.QuizAttempt `json:"list"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"totalPages"`
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client calls the assessment API on behalf of one session.
type Client struct {
	session Session
	http    *http.Client
	log     *zap.Logger

	// mu guards session.Token, which Login replaces.
	mu sync.RWMutex
}

func NewClient(session Session, opts ...Option) *Client {
	c := &Client{
		session: Session{BaseURL: strings.TrimRight(session.BaseURL, "/"), Token: session.Token},
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.session.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.log.Debug("API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

// FetchQuiz runs the attempt gate for quizID.
func (c *Client) FetchQuiz(ctx context.Context, quizID uint) (*model.GateResult, error) {
	var gate model.GateResult
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/quiz/%d", quizID), nil, &gate); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGate, err)
	}
	if err := checkGate(&gate); err != nil {
		return nil, err
	}
	return &gate, nil
}

// Evaluate submits answers as they are; callers normally pass them through Normalize first.
func (c *Client) Evaluate(ctx context.Context, quizID uint, answers []model.UserAnswer) (*Evaluation, error) {
	req := struct {
		QuizID  uint               `json:"quizId"`
		Answers []model.UserAnswer `json:"answers"`
	}{quizID, answers}
	var res Evaluation
	if err := c.do(ctx, http.MethodPost, "/quiz/evaluate", req, &res); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return &res, nil
}

func (c *Client) Attempts(ctx context.Context, page, limit int) (*AttemptPage, error) {
	var out AttemptPage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/quiz/attempts?page=%d&limit=%d", page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Attempt(ctx context.Context, id string) (*Evaluation, error) {
	var out Evaluation
	if err := c.do(ctx, http.MethodGet, "/quiz/attempts/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Enhance(ctx context.Context, lessonID uint) (*Enhancement, error) {
	var out Enhancement
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/course/enhance/%d", lessonID), nil, &out); err != nil {
		return nil, fmt.Errorf("%w: enhancement: %w", ErrPanel, err)
	}
	return &out, nil
}

func (c *Client) Resources(ctx context.Context, lessonID uint) (*Resources, error) {
	var out Resources
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/course/resource/%d", lessonID), nil, &out); err != nil {
		return nil, fmt.Errorf("%w: resources: %w", ErrPanel, err)
	}
	return &out, nil
}

func (c *Client) Recommend(ctx context.Context, courseID uint) (*Recommendation, error) {
	var out Recommendation
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/course/knn_recommendation/%d", courseID), nil, &out); err != nil {
		return nil, fmt.Errorf("%w: recommendation: %w", ErrPanel, err)
	}
	return &out, nil
}

func (c *Client) Enroll(ctx context.Context, courseID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/course/enroll/%d", courseID), nil, nil)
}

// Login exchanges credentials for a token and stores it in the client's session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", req, &out); err != nil {
		return err
	}
	c.mu.Lock()
	c.session.Token = out.Token
	c.mu.Unlock()
	return nil
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Token
}
