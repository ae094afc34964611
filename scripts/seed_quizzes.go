// Loads courses, lessons and their quizzes from a YAML file.
// Courses whose title already exists are skipped, so the script can be re-run.
//
// Usage: go run scripts/seed_quizzes.go -file scripts/seed/go_basics.yaml

package main

import (
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/service"
	"elearn_backend/pkg/database"
	"elearn_backend/pkg/logger"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type seedQuestion struct {
	Text           string   `yaml:"text"`
	Options        []string `yaml:"options"`
	CorrectAnswers []string `yaml:"correct"`
	Explanation    string   `yaml:"explanation"`
	Difficulty     int      `yaml:"difficulty"`
}

type seedQuiz struct {
	PassingScore float64        `yaml:"passing_score"`
	Questions    []seedQuestion `yaml:"questions"`
}

type seedLesson struct {
	Title    string    `yaml:"title"`
	Format   string    `yaml:"format"`
	Link     string    `yaml:"link"`
	Material string    `yaml:"material"`
	Quiz     *seedQuiz `yaml:"quiz"`
}

type seedCourse struct {
	Title        string       `yaml:"title"`
	Description  string       `yaml:"description"`
	Category     string       `yaml:"category"`
	Level        string       `yaml:"level"`
	Duration     string       `yaml:"duration"`
	Format       string       `yaml:"format"`
	TeacherEmail string       `yaml:"teacher_email"`
	Lessons      []seedLesson `yaml:"lessons"`
	FinalQuiz    *seedQuiz    `yaml:"final_quiz"`
}

type seedFile struct {
	Courses []seedCourse `yaml:"courses"`
}

func (q *seedQuiz) request(isCourse bool, targetID uint) service.CreateQuizRequest {
	req := service.CreateQuizRequest{IsCourse: isCourse, TargetID: targetID, PassingScore: q.PassingScore}
	for _, qu := range q.Questions {
		difficulty := qu.Difficulty
		if difficulty == 0 {
			difficulty = 1
		}
		req.Questions = append(req.Questions, service.QuestionRequest{
			QuestionText:    qu.Text,
			Options:         qu.Options,
			CorrectAnswers:  qu.CorrectAnswers,
			Explanation:     qu.Explanation,
			DifficultyLevel: difficulty,
		})
	}
	return req
}

type seeder struct {
	users   *repository.UserRepository
	courses *repository.CourseRepository
	quizzes *service.QuizService
	content *service.CourseService
}

func (s *seeder) seedCourse(ctx context.Context, c seedCourse) error {
	if _, err := s.courses.FindByTitle(c.Title); err == nil {
		logger.Log.Info("Course exists, skipping", zap.String("title", c.Title))
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	teacher, err := s.users.FindByEmail(c.TeacherEmail)
	if err != nil {
		return fmt.Errorf("teacher %q: %w", c.TeacherEmail, err)
	}

	course := &model.Course{
		TeacherID:   teacher.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Level:       c.Level,
		Duration:    c.Duration,
		Format:      c.Format,
	}
	for i, l := range c.Lessons {
		format := l.Format
		if format == "" {
			format = model.LessonFormatPDF
		}
		course.Lessons = append(course.Lessons, model.Lesson{Title: l.Title, Format: format, Link: l.Link, Order: i + 1})
	}
	if err := s.courses.Create(course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	for i, l := range c.Lessons {
		lessonID := course.Lessons[i].ID
		if l.Material != "" {
			body := strings.NewReader(l.Material)
			if _, err := s.content.UploadMaterial(ctx, teacher.ID, teacher.Role, lessonID, "material.txt", body, body.Size()); err != nil {
				return fmt.Errorf("lesson %q material: %w", l.Title, err)
			}
		}
		if l.Quiz != nil {
			if _, err := s.quizzes.CreateQuiz(teacher.ID, teacher.Role, l.Quiz.request(false, lessonID)); err != nil {
				return fmt.Errorf("lesson %q quiz: %w", l.Title, err)
			}
		}
	}
	if c.FinalQuiz != nil {
		if _, err := s.quizzes.CreateQuiz(teacher.ID, teacher.Role, c.FinalQuiz.request(true, course.ID)); err != nil {
			return fmt.Errorf("final quiz: %w", err)
		}
	}

	logger.Log.Info("Seeded course", zap.String("title", c.Title), zap.Int("lessons", len(c.Lessons)))
	return nil
}

func main() {
	file := flag.String("file", "scripts/seed/go_basics.yaml", "seed file")
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(logger.Options{Mode: cfg.Server.Mode})
	defer logger.Log.Sync()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	courses := repository.NewCourseRepository(db)
	progress := repository.NewProgressRepository(db)
	s := &seeder{
		users:   repository.NewUserRepository(db),
		courses: courses,
		quizzes: service.NewQuizService(repository.NewQuizRepository(db), courses, repository.NewAttemptRepository(db), progress, cfg.Quiz),
		content: service.NewCourseService(courses, progress, service.NewStorageService(cfg)),
	}

	ctx := context.Background()
	for _, c := range seed.Courses {
		if err := s.seedCourse(ctx, c); err != nil {
			log.Fatalf("Seeding %q failed: %v", c.Title, err)
		}
	}
	log.Println("Seed complete")
}
