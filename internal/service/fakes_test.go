package service

import (
	"context"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"
)

type fakeQuizzes struct {
	quizzes map[uint]*model.Quiz
	courses *fakeCourses
	nextID  uint
}

func (f *fakeQuizzes) FindByID(id uint) (*model.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (f *fakeQuizzes) create(q *model.Quiz) {
	f.nextID++
	q.ID = 1000 + f.nextID
	f.quizzes[q.ID] = q
}

func (f *fakeQuizzes) CreateForCourse(q *model.Quiz, courseID uint) error {
	c, ok := f.courses.courses[courseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.create(q)
	id := q.ID
	c.FinalQuizID = &id
	return nil
}

func (f *fakeQuizzes) CreateForLesson(q *model.Quiz, lessonID uint) error {
	l, ok := f.courses.lessons[lessonID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.create(q)
	id := q.ID
	l.QuizID = &id
	return nil
}

type fakeCourses struct {
	courses map[uint]*model.Course
	lessons map[uint]*model.Lesson
}

func (f *fakeCourses) FindByID(id uint) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	out.Lessons = nil
	for _, l := range f.lessons {
		if l.CourseID == id {
			out.Lessons = append(out.Lessons, *l)
		}
	}
	sort.Slice(out.Lessons, func(i, j int) bool { return out.Lessons[i].Order < out.Lessons[j].Order })
	return &out, nil
}

func (f *fakeCourses) FindByTitle(title string) (*model.Course, error) {
	for _, c := range f.courses {
		if c.Title == title {
			return f.FindByID(c.ID)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourses) FindByFinalQuiz(quizID uint) (*model.Course, error) {
	for _, c := range f.courses {
		if c.FinalQuizID != nil && *c.FinalQuizID == quizID {
			return f.FindByID(c.ID)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourses) FindLessonByID(id uint) (*model.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *l
	return &out, nil
}

func (f *fakeCourses) FindLessonByQuiz(quizID uint) (*model.Lesson, error) {
	for _, l := range f.lessons {
		if l.QuizID != nil && *l.QuizID == quizID {
			out := *l
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourses) ListByCategory(category string, limit int) ([]model.Course, error) {
	var out []model.Course
	ids := make([]int, 0, len(f.courses))
	for id := range f.courses {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for _, id := range ids {
		c := f.courses[uint(id)]
		if category == "" || c.Category == category {
			out = append(out, *c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCourses) List(filter repository.CourseFilter, page, limit int) ([]model.Course, int64, error) {
	all, _ := f.ListByCategory(filter.Category, len(f.courses)+1)
	var matched []model.Course
	for _, c := range all {
		if filter.Title != "" && !strings.Contains(c.Title, filter.Title) {
			continue
		}
		matched = append(matched, c)
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func (f *fakeCourses) SetLessonMaterial(lessonID uint, key string) error {
	l, ok := f.lessons[lessonID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.MaterialKey = key
	return nil
}

type fakeAttempts struct {
	mu   sync.Mutex
	rows []*model.QuizAttempt
	err  error
}

func (f *fakeAttempts) Create(a *model.QuizAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, r := range f.rows {
		if r.StudentID == a.StudentID && r.QuizID == a.QuizID && r.AttemptNumber == a.AttemptNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	cp := *a
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeAttempts) Latest(studentID, quizID uint) (*model.QuizAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *model.QuizAttempt
	for _, r := range f.rows {
		if r.StudentID == studentID && r.QuizID == quizID && (latest == nil || r.AttemptNumber > latest.AttemptNumber) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeAttempts) FindByID(id string) (*model.QuizAttempt, error) {
	for _, r := range f.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttempts) ListByStudent(studentID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	var out []model.QuizAttempt
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].StudentID == studentID {
			out = append(out, *f.rows[i])
		}
	}
	total := int64(len(out))
	start := (page - 1) * limit
	if start > len(out) {
		start = len(out)
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeAttempts) ListByQuiz(quizID uint) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, r := range f.rows {
		if r.QuizID == quizID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type progressKey struct{ student, course uint }
type enhanceKey struct{ student, lesson uint }

type fakeProgress struct {
	rows     map[progressKey]*model.StudentProgress
	enhanced map[enhanceKey]bool
	courses  *fakeCourses
}

func newFakeProgress(courses *fakeCourses) *fakeProgress {
	return &fakeProgress{
		rows:     map[progressKey]*model.StudentProgress{},
		enhanced: map[enhanceKey]bool{},
		courses:  courses,
	}
}

func (f *fakeProgress) Find(studentID, courseID uint) (*model.StudentProgress, error) {
	p, ok := f.rows[progressKey{studentID, courseID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProgress) Create(p *model.StudentProgress) error {
	k := progressKey{p.StudentID, p.CourseID}
	if _, ok := f.rows[k]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *p
	f.rows[k] = &cp
	return nil
}

func (f *fakeProgress) Save(p *model.StudentProgress) error {
	cp := *p
	f.rows[progressKey{p.StudentID, p.CourseID}] = &cp
	return nil
}

func (f *fakeProgress) ListByStudent(studentID uint) ([]model.StudentProgress, error) {
	var out []model.StudentProgress
	for k, p := range f.rows {
		if k.student != studentID {
			continue
		}
		cp := *p
		if f.courses != nil {
			cp.Course, _ = f.courses.FindByID(p.CourseID)
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}

func (f *fakeProgress) HasEnhanced(studentID, lessonID uint) (bool, error) {
	return f.enhanced[enhanceKey{studentID, lessonID}], nil
}

func (f *fakeProgress) MarkEnhanced(studentID, lessonID uint) error {
	f.enhanced[enhanceKey{studentID, lessonID}] = true
	return nil
}

type fakeUsers struct {
	users map[uint]*model.User
}

func (f *fakeUsers) Create(u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = uint(len(f.users) + 1)
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) UpdateLearningProfile(userID uint, profile model.LearningProfile) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LearningProfile = profile
	return nil
}

type memCache struct {
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dst interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.data[key] = raw
	return nil
}

// scriptedAI answers GenerateJSON calls from a queue of raw replies or errors.
type scriptedAI struct {
	mu      sync.Mutex
	replies []interface{} // string or error
	prompts []string
}

func (a *scriptedAI) GenerateJSON(_ context.Context, prompt string, schema *gojsonschema.Schema, dst interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prompts = append(a.prompts, prompt)
	if len(a.replies) == 0 {
		return io.ErrUnexpectedEOF
	}
	next := a.replies[0]
	a.replies = a.replies[1:]
	if err, ok := next.(error); ok {
		return err
	}
	raw := []byte(next.(string))
	if err := ValidateJSON(schema, raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

type memMaterial map[string]string

func (m memMaterial) ReadText(_ context.Context, key string) (string, error) {
	text, ok := m[key]
	if !ok {
		return "", io.EOF
	}
	return text, nil
}

type memUploader struct {
	objects map[string]string
}

func (u *memUploader) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.objects[key] = string(b)
	return "/uploads/" + key, nil
}

func uintPtr(v uint) *uint { return &v }

// fixture is a course (id 1, teacher 50) with two lessons. Lesson 11 owns quiz 101,
// lesson 12 owns quiz 102 and the course's final quiz is 200.
type fixture struct {
	quizzes  *fakeQuizzes
	courses  *fakeCourses
	attempts *fakeAttempts
	progress *fakeProgress
	users    *fakeUsers
}

func newFixture() *fixture {
	courses := &fakeCourses{
		courses: map[uint]*model.Course{
			1: {BaseModel: model.BaseModel{ID: 1}, TeacherID: 50, Title: "Go Basics", Category: "backend", FinalQuizID: uintPtr(200)},
			2: {BaseModel: model.BaseModel{ID: 2}, TeacherID: 51, Title: "Go Gentle Intro", Category: "backend"},
		},
		lessons: map[uint]*model.Lesson{
			11: {BaseModel: model.BaseModel{ID: 11}, CourseID: 1, Title: "Variables", Order: 1, QuizID: uintPtr(101), MaterialKey: "lessons/11.txt", Format: model.LessonFormatPDF},
			12: {BaseModel: model.BaseModel{ID: 12}, CourseID: 1, Title: "Functions", Order: 2, QuizID: uintPtr(102)},
		},
	}
	quiz := func(id uint) *model.Quiz {
		return &model.Quiz{
			BaseModel:    model.BaseModel{ID: id},
			PassingScore: 50,
			Questions: []model.Question{
				{Text: "Keyword for constants?", Options: model.StringList{"const", "let", "val"}, CorrectAnswers: model.StringList{"const"}},
				{Text: "Reference types?", Options: model.StringList{"map", "int", "slice"}, CorrectAnswers: model.StringList{"map", "slice"}},
			},
		}
	}
	quizzes := &fakeQuizzes{
		quizzes: map[uint]*model.Quiz{101: quiz(101), 102: quiz(102), 200: quiz(200), 300: quiz(300)},
		courses: courses,
	}
	return &fixture{
		quizzes:  quizzes,
		courses:  courses,
		attempts: &fakeAttempts{},
		progress: newFakeProgress(courses),
		users: &fakeUsers{users: map[uint]*model.User{
			7:  {BaseModel: model.BaseModel{ID: 7}, Name: "Sam", Email: "sam@example.com", Role: model.Student, LearningProfile: model.LearningProfile{FavoriteProgrammingTopic: "backend", AgeGroup: "18-24"}},
			50: {BaseModel: model.BaseModel{ID: 50}, Name: "Teach", Email: "teach@example.com", Role: model.Teacher},
		}},
	}
}
