package quizflow

import (
	"context"
	"elearn_backend/internal/model"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type fakeBackend struct {
	gate    *model.GateResult
	gateErr error

	evalErr   error
	evalGate  chan struct{}
	submitted [][]model.UserAnswer

	enhanceErr error
	mu         sync.Mutex
	calls      map[string]int
}

func (f *fakeBackend) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeBackend) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) FetchQuiz(context.Context, uint) (*model.GateResult, error) {
	f.count("gate")
	return f.gate, f.gateErr
}

func (f *fakeBackend) Evaluate(_ context.Context, quizID uint, answers []model.UserAnswer) (*Evaluation, error) {
	f.count("evaluate")
	if f.evalGate != nil {
		<-f.evalGate
	}
	f.mu.Lock()
	f.submitted = append(f.submitted, answers)
	f.mu.Unlock()
	if f.evalErr != nil {
		return nil, f.evalErr
	}
	return &Evaluation{QuizAttempt: &model.QuizAttempt{QuizID: quizID, Passed: true, Score: 100}}, nil
}

func (f *fakeBackend) Enhance(context.Context, uint) (*Enhancement, error) {
	f.count("enhance")
	if f.enhanceErr != nil {
		return nil, f.enhanceErr
	}
	return &Enhancement{Message: "Lesson enhanced"}, nil
}

func (f *fakeBackend) Resources(context.Context, uint) (*Resources, error) {
	f.count("resources")
	return &Resources{Message: "Resources generated"}, nil
}

func (f *fakeBackend) Recommend(context.Context, uint) (*Recommendation, error) {
	f.count("recommend")
	return &Recommendation{CourseRecommended: &model.Course{Title: "Go Gentle Intro"}}, nil
}

func uintPtr(v uint) *uint { return &v }

func normalGate() *model.GateResult {
	return &model.GateResult{Kind: model.GateNormal, Quiz: twoQuestionQuiz().ForStudent()}
}

func TestRouter_GateStates(t *testing.T) {
	tests := []struct {
		name string
		gate *model.GateResult
		err  error
		want State
	}{
		{"normal", normalGate(), nil, AttemptInProgress},
		{"already passed", &model.GateResult{Kind: model.GateAlreadyPassed, Quiz: twoQuestionQuiz()}, nil, GatedAlreadyPassed},
		{"needs enhancement", &model.GateResult{Kind: model.GateNeedsEnhancement, LessonID: uintPtr(3)}, nil, GatedNeedsEnhancement},
		{"already failed", &model.GateResult{Kind: model.GateAlreadyFailed, CourseID: uintPtr(9)}, nil, GatedAlreadyFailed},
		{"gate error", nil, errors.New("boom"), Failed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(&fakeBackend{gate: tt.gate, gateErr: tt.err}, nil)
			err := r.Load(context.Background(), 7)
			if (err != nil) != (tt.err != nil) {
				t.Fatalf("Load err = %v", err)
			}
			if r.State() != tt.want {
				t.Errorf("state = %s, want %s", r.State(), tt.want)
			}
		})
	}
}

func TestRouter_AlreadyPassedNeverSubmits(t *testing.T) {
	fb := &fakeBackend{gate: &model.GateResult{Kind: model.GateAlreadyPassed, Quiz: twoQuestionQuiz()}}
	r := NewRouter(fb, nil)
	_ = r.Load(context.Background(), 7)

	if err := r.Toggle(1, "A"); !errors.Is(err, ErrNotAttempting) {
		t.Errorf("Toggle err = %v, want ErrNotAttempting", err)
	}
	if _, err := r.Submit(context.Background()); !errors.Is(err, ErrNotAttempting) {
		t.Errorf("Submit err = %v, want ErrNotAttempting", err)
	}
	if n := fb.called("evaluate"); n != 0 {
		t.Errorf("evaluate called %d times", n)
	}
}

func TestRouter_EnhancementPanelsLoadOnce(t *testing.T) {
	fb := &fakeBackend{
		gate:       &model.GateResult{Kind: model.GateNeedsEnhancement, LessonID: uintPtr(3)},
		enhanceErr: errors.New("ai down"),
	}
	r := NewRouter(fb, nil)
	_ = r.Load(context.Background(), 7)
	r.LoadPanels(context.Background())
	r.LoadPanels(context.Background())

	if fb.called("enhance") != 1 || fb.called("resources") != 1 {
		t.Errorf("calls = %v, want one enhance and one resources", fb.calls)
	}
	v := r.View()
	if v.State != GatedNeedsEnhancement {
		t.Errorf("panel failure changed state to %s", v.State)
	}
	if v.EnhancementErr == nil || v.Resources == nil || v.Resources.Message != "Resources generated" {
		t.Errorf("panels = %+v / %+v", v.EnhancementErr, v.Resources)
	}

	// A new Load starts a new lifecycle.
	_ = r.Load(context.Background(), 7)
	if fb.called("enhance") != 2 {
		t.Errorf("enhance calls after reload = %d, want 2", fb.called("enhance"))
	}
}

func TestRouter_AlreadyFailedRecommendsOnce(t *testing.T) {
	fb := &fakeBackend{gate: &model.GateResult{Kind: model.GateAlreadyFailed, CourseID: uintPtr(9)}}
	r := NewRouter(fb, nil)
	_ = r.Load(context.Background(), 7)
	r.LoadPanels(context.Background())

	if n := fb.called("recommend"); n != 1 {
		t.Errorf("recommend calls = %d, want 1", n)
	}
	if v := r.View(); v.Recommendation == nil || v.Recommendation.CourseRecommended.Title != "Go Gentle Intro" {
		t.Errorf("recommendation = %+v", v.Recommendation)
	}
}

func TestRouter_SubmitFlow(t *testing.T) {
	fb := &fakeBackend{gate: normalGate(), evalGate: make(chan struct{})}
	r := NewRouter(fb, nil)
	var transitions []State
	r.OnTransition = func(_, to State) { transitions = append(transitions, to) }
	_ = r.Load(context.Background(), 7)

	_ = r.SetAnswer(0, model.SingleAnswer("B"))
	_ = r.Toggle(1, "A")
	_ = r.Toggle(1, "C")

	done := make(chan error, 1)
	go func() {
		_, err := r.Submit(context.Background())
		done <- err
	}()
	for fb.called("evaluate") == 0 {
		// wait for the first submission to reach the backend
	}
	if _, err := r.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("second Submit err = %v, want ErrSubmitInFlight", err)
	}
	close(fb.evalGate)
	if err := <-done; err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if r.State() != Submitted || fb.called("evaluate") != 1 {
		t.Errorf("state = %s, evaluate calls = %d", r.State(), fb.called("evaluate"))
	}
	got := fb.submitted[0]
	if got[0].Value() != "B" || len(got[1].Selected) != 2 {
		t.Errorf("submitted = %+v", got)
	}
	want := []State{Loading, AttemptInProgress, Submitting, Submitted}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %s, want %s", i, transitions[i], want[i])
		}
	}
}

func TestRouter_SubmitErrorReopensForm(t *testing.T) {
	fb := &fakeBackend{gate: normalGate(), evalErr: errors.New("server exploded")}
	r := NewRouter(fb, nil)
	_ = r.Load(context.Background(), 7)
	_ = r.Toggle(1, "B")

	if _, err := r.Submit(context.Background()); err == nil {
		t.Fatal("Submit succeeded")
	}
	v := r.View()
	if v.State != AttemptInProgress || v.SubmitErr == nil {
		t.Fatalf("view = %s / %v", v.State, v.SubmitErr)
	}
	if !v.Answers[1].Has("B") {
		t.Errorf("answers lost after failed submit: %+v", v.Answers)
	}
	if err := r.Toggle(1, "C"); err != nil {
		t.Errorf("form not editable after failure: %v", err)
	}
}

func TestRouter_ConcurrentSubmitOnlyOneWins(t *testing.T) {
	fb := &fakeBackend{gate: normalGate(), evalGate: make(chan struct{})}
	r := NewRouter(fb, nil)
	_ = r.Load(context.Background(), 7)

	var inFlight int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Submit(context.Background()); errors.Is(err, ErrSubmitInFlight) {
				atomic.AddInt32(&inFlight, 1)
			}
		}()
	}
	for atomic.LoadInt32(&inFlight) < 7 {
	}
	close(fb.evalGate)
	wg.Wait()
	if n := fb.called("evaluate"); n != 1 {
		t.Errorf("evaluate calls = %d, want 1", n)
	}
}

func TestRouter_FirstLoadReportsLoading(t *testing.T) {
	r := NewRouter(&fakeBackend{gate: normalGate()}, nil)
	if r.State() != Idle {
		t.Fatalf("initial state = %s, want idle", r.State())
	}
	var froms []State
	r.OnTransition = func(from, _ State) { froms = append(froms, from) }
	_ = r.Load(context.Background(), 7)
	if len(froms) == 0 || froms[0] != Idle {
		t.Errorf("first transition from = %v, want idle", froms)
	}
}

func TestRouter_UnusableGateFails(t *testing.T) {
	tests := []struct {
		name string
		gate *model.GateResult
	}{
		{"nil result", nil},
		{"normal without quiz", &model.GateResult{Kind: model.GateNormal}},
		{"unknown kind", &model.GateResult{Kind: "mystery"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(&fakeBackend{gate: tt.gate}, nil)
			if err := r.Load(context.Background(), 7); !errors.Is(err, ErrGate) {
				t.Fatalf("Load err = %v, want ErrGate", err)
			}
			if v := r.View(); v.State != Failed || !errors.Is(v.GateErr, ErrGate) {
				t.Errorf("view = %s / %v", v.State, v.GateErr)
			}
		})
	}
}

func TestRouter_GateWithoutTargetRecordsPanelError(t *testing.T) {
	fb := &fakeBackend{gate: &model.GateResult{Kind: model.GateAlreadyFailed}}
	r := NewRouter(fb, nil)
	_ = r.Load(context.Background(), 7)
	v := r.View()
	if v.State != GatedAlreadyFailed || !errors.Is(v.RecommendationErr, ErrPanel) {
		t.Errorf("already failed: state %s, err %v", v.State, v.RecommendationErr)
	}
	if fb.called("recommend") != 0 {
		t.Error("recommendation requested without a course")
	}

	fb = &fakeBackend{gate: &model.GateResult{Kind: model.GateNeedsEnhancement}}
	r = NewRouter(fb, nil)
	_ = r.Load(context.Background(), 7)
	v = r.View()
	if v.State != GatedNeedsEnhancement || !errors.Is(v.EnhancementErr, ErrPanel) || !errors.Is(v.ResourcesErr, ErrPanel) {
		t.Errorf("needs enhancement: state %s, errs %v / %v", v.State, v.EnhancementErr, v.ResourcesErr)
	}
	if fb.called("enhance")+fb.called("resources") != 0 {
		t.Error("panels requested without a lesson")
	}
}
