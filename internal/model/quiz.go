package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	PassingScore float64    `gorm:"not null;default:50" json:"passingScore"`
	Questions    []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID          uint       `gorm:"index;type:bigint unsigned" json:"quizId"`
	Text            string     `gorm:"type:text;not null" json:"questionText"`
	Options         StringList `gorm:"type:json" json:"options"`
	CorrectAnswers  StringList `gorm:"type:json" json:"correctAnswers,omitempty"`
	Explanation     string     `gorm:"type:text" json:"explanation,omitempty"`
	DifficultyLevel int        `gorm:"default:1" json:"difficultyLevel"`
	Order           int        `gorm:"default:0" json:"order"`

	// Set on learner-facing copies, where CorrectAnswers is withheld.
	MultiSelect bool `gorm:"-" json:"multiSelect"`
}

func (Question) TableName() string {
	return "quiz_questions"
}

func (q Question) IsMultiSelect() bool {
	return q.MultiSelect || len(q.CorrectAnswers) > 1
}

// EmptyAnswer is the unanswered sentinel for this question.
func (q Question) EmptyAnswer() UserAnswer {
	if q.IsMultiSelect() {
		return MultiAnswer()
	}
	return SingleAnswer("")
}

// ForStudent returns a copy that is safe to show before an attempt: correct
// answers and explanations are removed and the selection mode is made explicit.
func (q *Quiz) ForStudent() *Quiz {
	out := &Quiz{BaseModel: q.BaseModel, PassingScore: q.PassingScore}
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.MultiSelect = question.IsMultiSelect()
		question.CorrectAnswers = nil
		question.Explanation = ""
		out.Questions[i] = question
	}
	return out
}
