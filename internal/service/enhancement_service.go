package service

import (
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/util"
	"elearn_backend/pkg/logger"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *gojsonschema.Schema, dst interface{}) error
}

type MaterialSource interface {
	ReadText(ctx context.Context, key string) (string, error)
}

type ContentBlock struct {
	Type  string   `json:"type"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

type Example struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type EnhancedSection struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     []ContentBlock `json:"content"`
	Examples    []Example      `json:"examples"`
}

type EnhancedContent struct {
	MainTitle string            `json:"mainTitle"`
	Sections  []EnhancedSection `json:"sections"`
}

type EnhancementResult struct {
	Message string           `json:"message"`
	AI      *EnhancedContent `json:"ai"`
	Cached  bool             `json:"cached"`
}

var enhancedContentSchema = mustSchema(`{
  "type": "object",
  "required": ["mainTitle", "sections"],
  "properties": {
    "mainTitle": {"type": "string"},
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "content"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "content": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["type"],
              "properties": {
                "type": {"enum": ["paragraph", "list"]},
                "text": {"type": "string"},
                "items": {"type": "array", "items": {"type": "string"}}
              }
            }
          },
          "examples": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`)

const enhancePrompt = `Transform this lesson content into structured JSON for rendering.

Return ONLY valid JSON, no Markdown, using exactly this template:
{
  "mainTitle": "Main Title",
  "sections": [
    {
      "title": "Section Title",
      "description": "1-2 paragraph overview",
      "content": [
        {"type": "paragraph", "text": "For paragraphs"},
        {"type": "list", "items": ["Item 1", "Item 2"]}
      ],
      "examples": [
        {"name": "Example name", "description": "Example description"}
      ]
    }
  ]
}

Content to structure:
%s`

const (
	placeholderTitle = "Main Title"
	fallbackExcerpt  = 500
)

type EnhancementService struct {
	Courses  CourseStore
	Progress ProgressStore
	AI       JSONGenerator
	Material MaterialSource
	Cache    Cache
	cfg      config.AIConfig
}

func NewEnhancementService(courses CourseStore, progress ProgressStore, ai JSONGenerator, material MaterialSource, cache Cache, cfg config.AIConfig) *EnhancementService {
	return &EnhancementService{
		Courses:  courses,
		Progress: progress,
		AI:       ai,
		Material: material,
		Cache:    cache,
		cfg:      cfg,
	}
}

// ChunkText splits text into pieces of at most size characters.
func ChunkText(text string, size int) []string {
	runes := []rune(text)
	if size <= 0 || len(runes) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}

func fallbackSection(index int, chunk string) EnhancedSection {
	excerpt := []rune(chunk)
	text := chunk
	if len(excerpt) > fallbackExcerpt {
		text = string(excerpt[:fallbackExcerpt]) + "..."
	}
	return EnhancedSection{
		Title:       fmt.Sprintf("Section %d (Processing Failed)", index+1),
		Description: "This section could not be processed due to an API error.",
		Content:     []ContentBlock{{Type: "paragraph", Text: text}},
		Examples:    []Example{},
	}
}

// structure runs every chunk through the AI in order. It reports how many chunks succeeded.
func (s *EnhancementService) structure(ctx context.Context, title string, chunks []string) (*EnhancedContent, int, error) {
	out := &EnhancedContent{MainTitle: title, Sections: []EnhancedSection{}}
	ok := 0
	for i, chunk := range chunks {
		var part EnhancedContent
		err := s.AI.GenerateJSON(ctx, fmt.Sprintf(enhancePrompt, chunk), enhancedContentSchema, &part)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ok, ctxErr
		}
		if err != nil {
			logger.Log.Warn("Enhancement chunk failed, using fallback section",
				zap.Int("chunk", i+1),
				zap.Int("chunks", len(chunks)),
				zap.Error(err))
			out.Sections = append(out.Sections, fallbackSection(i, chunk))
			continue
		}
		ok++
		if part.MainTitle != "" && part.MainTitle != placeholderTitle {
			out.MainTitle = part.MainTitle
		}
		out.Sections = append(out.Sections, part.Sections...)
	}
	return out, ok, nil
}

func enhanceCacheKey(lessonID uint) string {
	return fmt.Sprintf("lesson:enhance:%d", lessonID)
}

// Enhance returns the AI restructuring of a lesson's material and records that
// the learner went through it, which unlocks a retry of the lesson quiz.
func (s *EnhancementService) Enhance(ctx context.Context, studentID, lessonID uint) (*EnhancementResult, error) {
	lesson, err := s.Courses.FindLessonByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.Courses.FindByID(lesson.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	message := "Video explained"
	if lesson.Format == model.LessonFormatPDF {
		message = "PDF explained"
	}
	result := &EnhancementResult{Message: message}

	key := enhanceCacheKey(lessonID)
	var cached EnhancedContent
	hit, err := s.Cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Log.Warn("Enhancement cache read failed", zap.Uint("lessonId", lessonID), zap.Error(err))
	}

	if hit {
		result.AI = &cached
		result.Cached = true
	} else {
		text, err := s.Material.ReadText(ctx, lesson.MaterialKey)
		if err != nil {
			return nil, fmt.Errorf("load material of lesson %d: %w", lessonID, err)
		}
		content, succeeded, err := s.structure(ctx, lesson.Title, ChunkText(text, s.cfg.ChunkSize))
		if err != nil {
			return nil, err
		}
		result.AI = content
		// Only cache output the AI actually produced.
		if succeeded > 0 {
			if err := s.Cache.SetJSON(ctx, key, content, s.cfg.CacheTTL); err != nil {
				logger.Log.Warn("Enhancement cache write failed", zap.Uint("lessonId", lessonID), zap.Error(err))
			}
		}
	}

	if err := s.Progress.MarkEnhanced(studentID, lessonID); err != nil {
		return nil, fmt.Errorf("record enhancement: %w", err)
	}
	return result, nil
}
