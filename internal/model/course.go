package model

const (
	LessonFormatVideo = "video"
	LessonFormatPDF   = "pdf"
)

// swagger:model Course
type Course struct {
	BaseModel
	TeacherID   uint     `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Title       string   `gorm:"size:120;not null;index" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Category    string   `gorm:"size:64;index;default:'Autre'" json:"category"`
	Level       string   `gorm:"size:32" json:"level"`
	Duration    string   `gorm:"size:64" json:"duration"`
	Format      string   `gorm:"size:16" json:"format"`
	Lessons     []Lesson `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
	FinalQuizID *uint    `gorm:"uniqueIndex;type:bigint unsigned" json:"quizFinal,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// LessonAt returns the lesson at a 1-based position, or nil past the last lesson.
func (c *Course) LessonAt(position int) *Lesson {
	if position < 1 || position > len(c.Lessons) {
		return nil
	}
	return &c.Lessons[position-1]
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID    uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title       string `gorm:"size:120;not null" json:"title"`
	Format      string `gorm:"size:16;default:'video'" json:"format"`
	Link        string `gorm:"size:255" json:"link,omitempty"`
	MaterialKey string `gorm:"size:255" json:"materialKey,omitempty"`
	Order       int    `gorm:"default:0" json:"order"`
	QuizID      *uint  `gorm:"uniqueIndex;type:bigint unsigned" json:"quiz,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
