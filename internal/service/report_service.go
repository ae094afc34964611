package service

import (
	"bytes"
	"elearn_backend/internal/model"
	"elearn_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const attemptsSheet = "Attempts"

var attemptsHeader = []interface{}{"Attempt ID", "Student ID", "Student", "Email", "Attempt", "Score", "Passed", "Submitted At", "Answers"}

type ReportService struct {
	Quiz     *QuizService
	Users    UserStore
	Attempts AttemptStore
}

func NewReportService(quiz *QuizService, users UserStore, attempts AttemptStore) *ReportService {
	return &ReportService{Quiz: quiz, Users: users, Attempts: attempts}
}

// ExportAttempts renders every attempt on a quiz as an xlsx workbook. Only the
// teacher of the owning course, or an admin, may export.
func (s *ReportService) ExportAttempts(userID uint, role model.UserRole, quizID uint) ([]byte, error) {
	if _, err := s.Quiz.loadQuiz(quizID); err != nil {
		return nil, err
	}
	owner, err := s.Quiz.findOwner(quizID)
	if err != nil {
		return nil, err
	}
	if role != model.Admin && (owner.Course == nil || owner.Course.TeacherID != userID) {
		return nil, util.ErrPermissionDenied
	}

	attempts, err := s.Attempts.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	users := make(map[uint]*model.User)
	for _, a := range attempts {
		if _, ok := users[a.StudentID]; ok {
			continue
		}
		u, err := s.Users.FindByID(a.StudentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err != nil {
			u = &model.User{}
		}
		users[a.StudentID] = u
	}

	return buildAttemptsWorkbook(attempts, users)
}

func buildAttemptsWorkbook(attempts []model.QuizAttempt, users map[uint]*model.User) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attemptsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(attemptsSheet, "A1", &attemptsHeader); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(attemptsSheet, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, a := range attempts {
		answers, err := json.Marshal(a.Answers)
		if err != nil {
			return nil, err
		}
		u := users[a.StudentID]
		name, email := "", ""
		if u != nil {
			name, email = u.Name, u.Email
		}
		row := []interface{}{
			a.ID,
			a.StudentID,
			name,
			email,
			a.AttemptNumber,
			a.Score,
			a.Passed,
			a.CreatedAt.Format(util.TimeFormat),
			string(answers),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(attemptsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(attemptsSheet, "A", "A", 38); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(attemptsSheet, "I", "I", 60); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
