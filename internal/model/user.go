package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	LearningProfile
}

func (User) TableName() string {
	return "users"
}

// LearningProfile is the questionnaire a learner fills in at signup. The
// recommender consumes it as-is.
// swagger:model LearningProfile
type LearningProfile struct {
	AgeGroup                 string `gorm:"size:64" json:"ageGroup"`
	EducationLevel           string `gorm:"size:64" json:"educationLevel"`
	ProgrammingExperience    string `gorm:"size:64" json:"programmingExperience"`
	FavoriteProgrammingTopic string `gorm:"size:64" json:"favoriteProgrammingTopic"`
	LearningStyle            string `gorm:"size:64" json:"learningStyle"`
	WeeklyAvailability       string `gorm:"size:64" json:"weeklyAvailability"`
	PreferredCourseDuration  string `gorm:"size:64" json:"preferredCourseDuration"`
	LearningAutonomy         string `gorm:"size:64" json:"learningAutonomy"`
}
