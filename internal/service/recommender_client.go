package service

import (
	"bytes"
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/util"
	"elearn_backend/pkg/monitoring"
	"elearn_backend/pkg/tracing"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// KNNRequest is the payload of the recommender's /recommend endpoint.
type KNNRequest struct {
	AgeRange             string  `json:"age_range"`
	EducationLevel       string  `json:"education_level"`
	ProgrammingLevel     string  `json:"programming_level"`
	LearningStyle        string  `json:"learning_style"`
	AvailableTimePerWeek string  `json:"available_time_per_week"`
	CourseDurationPref   string  `json:"course_duration_pref"`
	Domain               string  `json:"domain"`
	IDApp                int     `json:"id_app"`
	Note                 float64 `json:"Note"`
}

type KNNResponse struct {
	FallbackCourse string `json:"fallback_course"`
}

// PredictRequest is the payload of the recommender's /predict endpoint.
type PredictRequest struct {
	Domain               string `json:"domain"`
	CourseName           string `json:"course_name"`
	Level                string `json:"level"`
	Format               string `json:"format"`
	Duration             string `json:"Duration"`
	AgeRange             string `json:"age_range"`
	EducationLevel       string `json:"education_level"`
	ProgrammingLevel     string `json:"programming_level"`
	LearningStyle        string `json:"learning_style"`
	AvailableTimePerWeek string `json:"available_time_per_week"`
	CourseDurationPref   string `json:"course_duration_pref"`
	PreferredTheme       string `json:"preferred_theme"`
}

type PredictResponse struct {
	Prediction float64 `json:"prediction"`
}

type Recommender interface {
	Recommend(ctx context.Context, req KNNRequest) (*KNNResponse, error)
	Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error)
}

// RecommenderClient calls the external ML service over HTTP.
type RecommenderClient struct {
	baseURL string
	client  *http.Client
}

func NewRecommenderClient(cfg config.RecommenderConfig) *RecommenderClient {
	return &RecommenderClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *RecommenderClient) post(ctx context.Context, path string, in, out interface{}) (err error) {
	ctx, span := tracing.StartSpan(ctx, "recommender"+path, attribute.String("recommender.path", path))
	start := time.Now()
	defer func() {
		monitoring.ObserveCollaborator("recommender", start, err)
		tracing.EndSpan(span, err)
	}()

	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", util.MimeJSON)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrRecommenderFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrRecommenderFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d: %s", util.ErrRecommenderFailed, path, resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", util.ErrRecommenderFailed, path, err)
	}
	return nil
}

func (c *RecommenderClient) Recommend(ctx context.Context, req KNNRequest) (*KNNResponse, error) {
	var out KNNResponse
	if err := c.post(ctx, "/recommend", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RecommenderClient) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	var out PredictResponse
	if err := c.post(ctx, "/predict", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
