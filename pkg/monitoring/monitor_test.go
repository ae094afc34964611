package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/quiz/:quizId", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/api/quiz/:quizId", "418"))
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quiz/7", nil))
	}
	after := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/api/quiz/:quizId", "418"))
	if after-before != 3 {
		t.Errorf("counter delta = %v, want 3", after-before)
	}
}

func TestRecordHelpers(t *testing.T) {
	before := testutil.ToFloat64(QuizAttempts.WithLabelValues("true"))
	RecordAttempt(true)
	if got := testutil.ToFloat64(QuizAttempts.WithLabelValues("true")) - before; got != 1 {
		t.Errorf("QuizAttempts delta = %v, want 1", got)
	}

	beforeGate := testutil.ToFloat64(GateOutcomes.WithLabelValues("normal"))
	RecordGate("normal")
	if got := testutil.ToFloat64(GateOutcomes.WithLabelValues("normal")) - beforeGate; got != 1 {
		t.Errorf("GateOutcomes delta = %v, want 1", got)
	}

	ObserveCollaborator("ai", time.Now(), errors.New("boom"))
	if n := testutil.CollectAndCount(CollaboratorDuration); n == 0 {
		t.Error("CollaboratorDuration has no series")
	}
}

func TestInit_Idempotent(t *testing.T) {
	Init()
	Init()
}
