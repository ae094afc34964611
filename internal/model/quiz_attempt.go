package model

// QuizAttempt is one scored submission. Rows are never updated; a retry
// creates a new row with the next attempt number.
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	QuizID        uint        `gorm:"uniqueIndex:idx_attempt_student_quiz_no;type:bigint unsigned" json:"quiz"`
	StudentID     uint        `gorm:"uniqueIndex:idx_attempt_student_quiz_no;index;type:bigint unsigned" json:"student"`
	AttemptNumber int         `gorm:"uniqueIndex:idx_attempt_student_quiz_no;default:1" json:"attemptNumber"`
	Answers       AnswerSheet `gorm:"type:json" json:"answers"`
	Score         float64     `json:"score"`
	Passed        bool        `gorm:"default:false" json:"passed"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
