package service

import (
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/util"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type fakeRecommender struct {
	mu          sync.Mutex
	fallback    string
	predictions map[string]float64
	knn         []KNNRequest
	err         error
}

func (r *fakeRecommender) Recommend(_ context.Context, req KNNRequest) (*KNNResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.knn = append(r.knn, req)
	if r.err != nil {
		return nil, r.err
	}
	return &KNNResponse{FallbackCourse: r.fallback}, nil
}

func (r *fakeRecommender) Predict(_ context.Context, req PredictRequest) (*PredictResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &PredictResponse{Prediction: r.predictions[req.CourseName]}, nil
}

func newRecommendationService(f *fixture, rec Recommender) *RecommendationService {
	policy := func() config.QuizPolicy { return config.QuizPolicy{MaxAttempts: 2} }
	return NewRecommendationService(f.users, f.courses, f.progress, f.attempts, rec, policy)
}

func failAttempts(f *fixture, quizID uint, n int) {
	for i := 1; i <= n; i++ {
		f.attempts.Create(&model.QuizAttempt{StudentID: student, QuizID: quizID, AttemptNumber: i, Score: 25})
	}
}

func TestRecommendAfterFailure(t *testing.T) {
	f := newFixture()
	f.progress.Create(&model.StudentProgress{StudentID: student, CourseID: 1, Lesson: 1, CompletionStatus: model.StatusInProgress})
	failAttempts(f, 101, 2)
	rec := &fakeRecommender{fallback: "Go Gentle Intro"}
	svc := newRecommendationService(f, rec)

	got, err := svc.RecommendAfterFailure(context.Background(), student, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.CourseRecommended.ID != 2 {
		t.Errorf("recommended course = %d, want 2", got.CourseRecommended.ID)
	}
	sent := rec.knn[0]
	if sent.Domain != "backend" || sent.AgeRange != "18-24" || sent.Note != 25 || sent.IDApp != recommenderAppID {
		t.Errorf("request = %+v", sent)
	}
}

func TestRecommendAfterFailure_FinalQuiz(t *testing.T) {
	f := newFixture()
	f.progress.Create(&model.StudentProgress{StudentID: student, CourseID: 1, Lesson: 3, CompletionStatus: model.StatusFailed})
	failAttempts(f, 200, 2)
	svc := newRecommendationService(f, &fakeRecommender{fallback: "Go Gentle Intro"})

	if _, err := svc.RecommendAfterFailure(context.Background(), student, 1); err != nil {
		t.Fatal(err)
	}
}

func TestRecommendAfterFailure_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fixture, rec *fakeRecommender)
		student uint
		course  uint
		want    error
	}{
		{"unknown course", nil, student, 99, util.ErrCourseNotFound},
		{"unknown user", nil, 404, 1, util.ErrUserNotFound},
		{"not enrolled", nil, student, 1, util.ErrAttemptNotFound},
		{"attempts remaining", func(f *fixture, _ *fakeRecommender) { failAttempts(f, 101, 1) }, student, 1, util.ErrAttemptsRemaining},
		{"already passed", func(f *fixture, _ *fakeRecommender) {
			f.attempts.Create(&model.QuizAttempt{StudentID: student, QuizID: 101, AttemptNumber: 1, Score: 100, Passed: true})
		}, student, 1, util.ErrAlreadyPassed},
		{"empty recommendation", func(f *fixture, rec *fakeRecommender) {
			failAttempts(f, 101, 2)
			rec.fallback = ""
		}, student, 1, util.ErrNoRecommendation},
		{"recommended course missing", func(f *fixture, rec *fakeRecommender) {
			failAttempts(f, 101, 2)
			rec.fallback = "Rust for Go developers"
		}, student, 1, util.ErrRecommendedNotFound},
		{"model down", func(f *fixture, rec *fakeRecommender) {
			failAttempts(f, 101, 2)
			rec.err = util.ErrRecommenderFailed
		}, student, 1, util.ErrRecommenderFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.name != "not enrolled" {
				f.progress.Create(&model.StudentProgress{StudentID: student, CourseID: 1, Lesson: 1, CompletionStatus: model.StatusInProgress})
			}
			rec := &fakeRecommender{fallback: "Go Gentle Intro"}
			if tt.setup != nil {
				tt.setup(f, rec)
			}
			_, err := newRecommendationService(f, rec).RecommendAfterFailure(context.Background(), tt.student, tt.course)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRecommendByProfile(t *testing.T) {
	f := newFixture()
	rec := &fakeRecommender{predictions: map[string]float64{"Go Basics": 0.41, "Go Gentle Intro": 0.87}}
	svc := newRecommendationService(f, rec)

	got, err := svc.RecommendByProfile(context.Background(), student)
	if err != nil {
		t.Fatal(err)
	}
	if got.BestCourse.Title != "Go Gentle Intro" || got.BestPrediction.Prediction != 0.87 {
		t.Errorf("best = %s %.2f", got.BestCourse.Title, got.BestPrediction.Prediction)
	}

	f.users.users[student].FavoriteProgrammingTopic = "embedded"
	if _, err := svc.RecommendByProfile(context.Background(), student); !errors.Is(err, util.ErrNoRecommendation) {
		t.Errorf("err = %v, want ErrNoRecommendation", err)
	}
}

func TestRecommenderClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recommend":
			var req map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req["Note"] != 40.0 {
				http.Error(w, "bad payload", http.StatusBadRequest)
				return
			}
			w.Write([]byte(`{"fallback_course":"Go Gentle Intro"}`))
		case "/predict":
			w.Write([]byte(`{"prediction":0.5}`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewRecommenderClient(config.RecommenderConfig{BaseURL: srv.URL + "/", Timeout: time.Second})
	res, err := c.Recommend(context.Background(), KNNRequest{Note: 40})
	if err != nil || res.FallbackCourse != "Go Gentle Intro" {
		t.Fatalf("Recommend = %+v, %v", res, err)
	}
	p, err := c.Predict(context.Background(), PredictRequest{CourseName: "Go Basics"})
	if err != nil || p.Prediction != 0.5 {
		t.Fatalf("Predict = %+v, %v", p, err)
	}

	bad := NewRecommenderClient(config.RecommenderConfig{BaseURL: srv.URL + "/broken", Timeout: time.Second})
	if _, err := bad.Recommend(context.Background(), KNNRequest{}); !errors.Is(err, util.ErrRecommenderFailed) {
		t.Errorf("err = %v, want ErrRecommenderFailed", err)
	}
}
