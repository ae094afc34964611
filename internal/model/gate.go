package model

type GateKind string

const (
	GateNormal           GateKind = "normal"
	GateAlreadyPassed    GateKind = "already-passed"
	GateNeedsEnhancement GateKind = "needs-enhancement"
	GateAlreadyFailed    GateKind = "already-failed"
)

// GateResult tells a learner whether a quiz can be attempted right now.
// Quiz is set for normal and already-passed, LessonID for needs-enhancement and
// CourseID for already-failed.
// swagger:model GateResult
type GateResult struct {
	Kind     GateKind `json:"kind"`
	Message  string   `json:"message"`
	Quiz     *Quiz    `json:"quiz,omitempty"`
	LessonID *uint    `json:"lessonId,omitempty"`
	CourseID *uint    `json:"courseId,omitempty"`
}

func (r *GateResult) CanAttempt() bool {
	return r.Kind == GateNormal
}

var gateMessages = map[GateKind]string{
	GateNormal:           "Fetch Quiz successfully",
	GateAlreadyPassed:    "You already passed this quiz",
	GateNeedsEnhancement: "You need to enhance the lesson before retrying",
	GateAlreadyFailed:    "You already failed this quiz and cannot retry it",
}

func (k GateKind) Message() string {
	return gateMessages[k]
}
