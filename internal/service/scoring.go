package service

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/util"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

type ScoreResult struct {
	Correct int
	Total   int
	Score   float64
	Passed  bool
	Marks   []bool
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func foldSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if f := fold(v); f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}

// IsCorrect grades one answer. Single answers must match any correct option;
// multi answers must select exactly the correct options.
func IsCorrect(q model.Question, answer model.UserAnswer) (bool, error) {
	correct := foldSet(q.CorrectAnswers)

	if !q.IsMultiSelect() {
		if answer.Multi {
			return false, fmt.Errorf("%w: question %q takes a single option", util.ErrAnswerShape, q.Text)
		}
		_, ok := correct[fold(answer.Value())]
		return ok, nil
	}

	selected := foldSet(answer.Selected)
	if !answer.Multi {
		selected = foldSet([]string{answer.Value()})
	}
	if len(selected) != len(correct) {
		return false, nil
	}
	for s := range selected {
		if _, ok := correct[s]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// Score grades a full answer sheet. The sheet must line up with the quiz questions.
func Score(quiz *model.Quiz, answers model.AnswerSheet) (ScoreResult, error) {
	if len(answers) != len(quiz.Questions) {
		return ScoreResult{}, fmt.Errorf("%w: got %d, want %d", util.ErrAnswerCountMismatch, len(answers), len(quiz.Questions))
	}

	res := ScoreResult{Total: len(quiz.Questions), Marks: make([]bool, len(quiz.Questions))}
	for i, q := range quiz.Questions {
		ok, err := IsCorrect(q, answers[i])
		if err != nil {
			return ScoreResult{}, err
		}
		res.Marks[i] = ok
		if ok {
			res.Correct++
		}
	}

	if res.Total > 0 {
		res.Score = float64(res.Correct) / float64(res.Total) * 100
	}
	res.Passed = res.Score >= quiz.PassingScore
	return res, nil
}
