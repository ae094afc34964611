package quizflow

import (
	"context"
	"elearn_backend/internal/model"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type State int

const (
	// Idle is the state before the first Load.
	Idle State = iota
	Loading
	GatedAlreadyPassed
	GatedNeedsEnhancement
	GatedAlreadyFailed
	AttemptInProgress
	Submitting
	Submitted
	// Failed means the gate could not be resolved.
	Failed
)

var stateNames = [...]string{
	Idle:                  "idle",
	Loading:               "loading",
	GatedAlreadyPassed:    "gated-already-passed",
	GatedNeedsEnhancement: "gated-needs-enhancement",
	GatedAlreadyFailed:    "gated-already-failed",
	AttemptInProgress:     "attempt-in-progress",
	Submitting:            "submitting",
	Submitted:             "submitted",
	Failed:                "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

var (
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrNotAttempting  = errors.New("quiz is not open for answers")
	// ErrSuperseded is returned when Load was called for another quiz while a call was pending.
	ErrSuperseded = errors.New("quiz flow was restarted")
)

// Backend is the part of Client the router needs.
type Backend interface {
	FetchQuiz(ctx context.Context, quizID uint) (*model.GateResult, error)
	Evaluate(ctx context.Context, quizID uint, answers []model.UserAnswer) (*Evaluation, error)
	Enhance(ctx context.Context, lessonID uint) (*Enhancement, error)
	Resources(ctx context.Context, lessonID uint) (*Resources, error)
	Recommend(ctx context.Context, courseID uint) (*Recommendation, error)
}

// View is a consistent snapshot of the router for rendering.
type View struct {
	State     State
	QuizID    uint
	Gate      *model.GateResult
	Answers   []model.UserAnswer
	Result    *Evaluation
	GateErr   error
	SubmitErr error

	Enhancement       *Enhancement
	EnhancementErr    error
	Resources         *Resources
	ResourcesErr      error
	Recommendation    *Recommendation
	RecommendationErr error
}

// lifecycle is everything that belongs to one Load of one quiz id.
type lifecycle struct {
	quizID    uint
	gate      *model.GateResult
	collector *Collector
	result    *Evaluation
	gateErr   error
	submitErr error

	enhanceOnce       sync.Once
	recommendOnce     sync.Once
	enhancement       *Enhancement
	enhancementErr    error
	resources         *Resources
	resourcesErr      error
	recommendation    *Recommendation
	recommendationErr error
}

// Router is the outcome state machine for one learner. Load starts a quiz,
// Submit scores it; gated states fetch their panels lazily, once per Load.
type Router struct {
	backend Backend
	log     *zap.Logger

	// OnTransition, when set, is called after every state change, outside the lock.
	OnTransition func(from, to State)

	mu    sync.Mutex
	state State
	cur   *lifecycle
}

func NewRouter(backend Backend, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{backend: backend, log: log, cur: &lifecycle{}}
}

// setLocked changes state and returns a func that reports the change.
func (r *Router) setLocked(to State) func() {
	from := r.state
	r.state = to
	if from == to {
		return func() {}
	}
	quizID := r.cur.quizID
	hook := r.OnTransition
	return func() {
		r.log.Debug("Quiz flow transition",
			zap.Uint("quizId", quizID),
			zap.Stringer("from", from),
			zap.Stringer("to", to))
		if hook != nil {
			hook(from, to)
		}
	}
}

// checkGate rejects gate results the router cannot act on.
func checkGate(gate *model.GateResult) error {
	if gate == nil {
		return fmt.Errorf("%w: empty gate result", ErrGate)
	}
	switch gate.Kind {
	case model.GateNormal:
		if gate.Quiz == nil {
			return fmt.Errorf("%w: normal gate without quiz", ErrGate)
		}
	case model.GateAlreadyPassed, model.GateNeedsEnhancement, model.GateAlreadyFailed:
	default:
		return fmt.Errorf("%w: unknown gate kind %q", ErrGate, gate.Kind)
	}
	return nil
}

func gatedState(kind model.GateKind) State {
	switch kind {
	case model.GateAlreadyPassed:
		return GatedAlreadyPassed
	case model.GateNeedsEnhancement:
		return GatedNeedsEnhancement
	case model.GateAlreadyFailed:
		return GatedAlreadyFailed
	}
	return AttemptInProgress
}

// Load restarts the machine for quizID and resolves the gate. Entering a gated
// state also loads that state's panels before Load returns. Gate failures move
// to Failed and are returned; panel failures are only recorded in the View.
func (r *Router) Load(ctx context.Context, quizID uint) error {
	lc := &lifecycle{quizID: quizID}
	r.mu.Lock()
	r.cur = lc
	notify := r.setLocked(Loading)
	r.mu.Unlock()
	notify()

	gate, err := r.backend.FetchQuiz(ctx, quizID)

	r.mu.Lock()
	if r.cur != lc {
		r.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		lc.gateErr = err
		notify = r.setLocked(Failed)
		r.mu.Unlock()
		notify()
		r.log.Warn("Quiz gate failed", zap.Uint("quizId", quizID), zap.Error(err))
		return err
	}
	if err := checkGate(gate); err != nil {
		lc.gateErr = err
		notify = r.setLocked(Failed)
		r.mu.Unlock()
		notify()
		r.log.Warn("Quiz gate unusable", zap.Uint("quizId", quizID), zap.Error(err))
		return err
	}
	lc.gate = gate
	next := gatedState(gate.Kind)
	if next == AttemptInProgress {
		lc.collector = NewCollector(gate.Quiz)
	}
	notify = r.setLocked(next)
	r.mu.Unlock()
	notify()

	r.LoadPanels(ctx)
	return nil
}

// LoadPanels fetches the follow-up content of the current gated state. Each
// call is issued at most once per Load however often this runs. When the gate
// named no lesson or course the panels carry an ErrPanel error instead.
func (r *Router) LoadPanels(ctx context.Context) {
	r.mu.Lock()
	lc, state := r.cur, r.state
	r.mu.Unlock()
	if lc.gate == nil {
		return
	}

	switch state {
	case GatedNeedsEnhancement:
		lc.enhanceOnce.Do(func() {
			if lc.gate.LessonID == nil {
				err := fmt.Errorf("%w: gate named no lesson", ErrPanel)
				r.mu.Lock()
				lc.enhancementErr, lc.resourcesErr = err, err
				r.mu.Unlock()
				return
			}
			r.loadEnhancement(ctx, lc, *lc.gate.LessonID)
		})
	case GatedAlreadyFailed:
		lc.recommendOnce.Do(func() {
			if lc.gate.CourseID == nil {
				r.mu.Lock()
				lc.recommendationErr = fmt.Errorf("%w: quiz belongs to no course", ErrPanel)
				r.mu.Unlock()
				return
			}
			r.loadRecommendation(ctx, lc, *lc.gate.CourseID)
		})
	}
}

func (r *Router) loadEnhancement(ctx context.Context, lc *lifecycle, lessonID uint) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res, err := r.backend.Enhance(ctx, lessonID)
		r.mu.Lock()
		lc.enhancement, lc.enhancementErr = res, err
		r.mu.Unlock()
		if err != nil {
			r.log.Warn("Enhancement panel failed", zap.Uint("lessonId", lessonID), zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		res, err := r.backend.Resources(ctx, lessonID)
		r.mu.Lock()
		lc.resources, lc.resourcesErr = res, err
		r.mu.Unlock()
		if err != nil {
			r.log.Warn("Resource panel failed", zap.Uint("lessonId", lessonID), zap.Error(err))
		}
	}()
	wg.Wait()
}

func (r *Router) loadRecommendation(ctx context.Context, lc *lifecycle, courseID uint) {
	res, err := r.backend.Recommend(ctx, courseID)
	r.mu.Lock()
	lc.recommendation, lc.recommendationErr = res, err
	r.mu.Unlock()
	if err != nil {
		r.log.Warn("Recommendation panel failed", zap.Uint("courseId", courseID), zap.Error(err))
	}
}

func (r *Router) collector() (*Collector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != AttemptInProgress {
		return nil, ErrNotAttempting
	}
	return r.cur.collector, nil
}

// SetAnswer replaces the answer to question index while the quiz is open.
func (r *Router) SetAnswer(index int, answer model.UserAnswer) error {
	c, err := r.collector()
	if err != nil {
		return err
	}
	return c.SetAnswer(index, answer)
}

// Toggle flips option on question index while the quiz is open.
func (r *Router) Toggle(index int, option string) error {
	c, err := r.collector()
	if err != nil {
		return err
	}
	return c.Toggle(index, option)
}

// Submit sends the normalized answers. Only one submission may be in flight;
// on failure the quiz reopens with the error kept for display.
func (r *Router) Submit(ctx context.Context) (*Evaluation, error) {
	r.mu.Lock()
	switch r.state {
	case AttemptInProgress:
	case Submitting:
		r.mu.Unlock()
		return nil, ErrSubmitInFlight
	default:
		r.mu.Unlock()
		return nil, ErrNotAttempting
	}
	lc := r.cur
	answers := Normalize(lc.collector.Answers())
	lc.submitErr = nil
	notify := r.setLocked(Submitting)
	r.mu.Unlock()
	notify()

	res, err := r.backend.Evaluate(ctx, lc.quizID, answers)

	r.mu.Lock()
	if r.cur != lc {
		r.mu.Unlock()
		return nil, ErrSuperseded
	}
	if err != nil {
		lc.submitErr = err
		notify = r.setLocked(AttemptInProgress)
		r.mu.Unlock()
		notify()
		return nil, err
	}
	lc.result = res
	notify = r.setLocked(Submitted)
	r.mu.Unlock()
	notify()
	return res, nil
}

func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Router) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	lc := r.cur
	v := View{
		State:             r.state,
		QuizID:            lc.quizID,
		Gate:              lc.gate,
		Result:            lc.result,
		GateErr:           lc.gateErr,
		SubmitErr:         lc.submitErr,
		Enhancement:       lc.enhancement,
		EnhancementErr:    lc.enhancementErr,
		Resources:         lc.resources,
		ResourcesErr:      lc.resourcesErr,
		Recommendation:    lc.recommendation,
		RecommendationErr: lc.recommendationErr,
	}
	if lc.collector != nil {
		v.Answers = lc.collector.Answers()
	}
	return v
}
