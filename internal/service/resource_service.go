package service

import (
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/util"
	"elearn_backend/pkg/logger"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ResourceLink struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type LessonResources struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	YoutubeLinks []ResourceLink `json:"youtubeLinks"`
	CourseLinks  []ResourceLink `json:"courseLinks"`
}

type ResourceResult struct {
	Message string           `json:"message"`
	AI      *LessonResources `json:"ai"`
	Cached  bool             `json:"cached"`
}

const resourceLinkSchema = `{
  "type": "object",
  "required": ["title", "link"],
  "properties": {
    "title": {"type": "string"},
    "link": {"type": "string", "pattern": "^https?://"},
    "description": {"type": "string"}
  }
}`

var lessonResourcesSchema = mustSchema(`{
  "type": "object",
  "required": ["title", "description", "youtubeLinks", "courseLinks"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string", "minLength": 1},
    "youtubeLinks": {"type": "array", "items": ` + resourceLinkSchema + `},
    "courseLinks": {"type": "array", "items": ` + resourceLinkSchema + `}
  }
}`)

const resourcePrompt = `For the topic %q, return a JSON object with this format:

{
  "title": "topic title",
  "description": "short summary of the topic",
  "youtubeLinks": [
    {"title": "video title", "link": "video URL", "description": "short explanation of the video"}
  ],
  "courseLinks": [
    {"title": "course name", "link": "course URL", "description": "short explanation of the course"}
  ]
}

Return ONLY valid JSON without Markdown. Every URL must be valid and accessible.`

type ResourceService struct {
	Courses CourseStore
	AI      JSONGenerator
	Cache   Cache
	cfg     config.AIConfig
}

func NewResourceService(courses CourseStore, ai JSONGenerator, cache Cache, cfg config.AIConfig) *ResourceService {
	return &ResourceService{Courses: courses, AI: ai, Cache: cache, cfg: cfg}
}

// GetResources suggests external videos and courses on the lesson's topic.
func (s *ResourceService) GetResources(ctx context.Context, lessonID uint) (*ResourceResult, error) {
	lesson, err := s.Courses.FindLessonByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("lesson:resources:%d", lessonID)
	var cached LessonResources
	hit, err := s.Cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Log.Warn("Resource cache read failed", zap.Uint("lessonId", lessonID), zap.Error(err))
	}
	if hit {
		return &ResourceResult{Message: "Success", AI: &cached, Cached: true}, nil
	}

	var res LessonResources
	if err := s.AI.GenerateJSON(ctx, fmt.Sprintf(resourcePrompt, lesson.Title), lessonResourcesSchema, &res); err != nil {
		return nil, fmt.Errorf("generate resources for lesson %d: %w", lessonID, err)
	}
	if err := s.Cache.SetJSON(ctx, key, &res, s.cfg.CacheTTL); err != nil {
		logger.Log.Warn("Resource cache write failed", zap.Uint("lessonId", lessonID), zap.Error(err))
	}
	return &ResourceResult{Message: "Success", AI: &res}, nil
}
