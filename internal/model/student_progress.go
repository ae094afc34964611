package model

type CompletionStatus string

const (
	StatusInProgress CompletionStatus = "in-progress"
	StatusCompleted  CompletionStatus = "completed"
	StatusFailed     CompletionStatus = "failed"
)

// StudentProgress tracks a learner through one course. Its existence is the
// enrollment record.
// swagger:model StudentProgress
type StudentProgress struct {
	BaseModel
	StudentID        uint             `gorm:"uniqueIndex:idx_progress_student_course;type:bigint unsigned" json:"student"`
	CourseID         uint             `gorm:"uniqueIndex:idx_progress_student_course;index;type:bigint unsigned" json:"course"`
	Course           *Course          `gorm:"foreignKey:CourseID" json:"courseDetail,omitempty"`
	Lesson           int              `gorm:"default:1" json:"lesson"` // 1-based; len(lessons)+1 means final quiz
	CompletionStatus CompletionStatus `gorm:"size:20;default:'in-progress'" json:"completionStatus"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

// LessonEnhancement records that a learner went through the AI enhancement of a lesson.
type LessonEnhancement struct {
	BaseModel
	StudentID uint `gorm:"uniqueIndex:idx_enhancement_student_lesson;type:bigint unsigned" json:"student"`
	LessonID  uint `gorm:"uniqueIndex:idx_enhancement_student_lesson;type:bigint unsigned" json:"lesson"`
}

func (LessonEnhancement) TableName() string {
	return "lesson_enhancements"
}
