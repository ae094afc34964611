package quizflow

import (
	"elearn_backend/internal/model"
	"fmt"
	"sync"
)

// Collector holds one answer per question, index-aligned with the quiz.
type Collector struct {
	mu      sync.Mutex
	answers []model.UserAnswer
}

// NewCollector starts every question unanswered: an empty set for multi-select
// questions, an empty string otherwise.
func NewCollector(quiz *model.Quiz) *Collector {
	c := &Collector{answers: make([]model.UserAnswer, len(quiz.Questions))}
	for i, q := range quiz.Questions {
		c.answers[i] = q.EmptyAnswer()
	}
	return c
}

func (c *Collector) Len() int {
	return len(c.answers)
}

// SetAnswer replaces the answer at index.
func (c *Collector) SetAnswer(index int, answer model.UserAnswer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.answers) {
		return fmt.Errorf("question index %d out of range [0,%d)", index, len(c.answers))
	}
	c.answers[index] = answer
	return nil
}

// Toggle selects option on a multi-select question, or deselects it when already
// selected. On a single-select question it selects option.
func (c *Collector) Toggle(index int, option string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.answers) {
		return fmt.Errorf("question index %d out of range [0,%d)", index, len(c.answers))
	}
	c.answers[index] = c.answers[index].Toggle(option)
	return nil
}

// Answers returns a copy of the current answers.
func (c *Collector) Answers() []model.UserAnswer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.UserAnswer, len(c.answers))
	for i, a := range c.answers {
		out[i] = model.UserAnswer{Multi: a.Multi, Selected: append([]string(nil), a.Selected...)}
	}
	return out
}

// Normalize prepares answers for submission: multi answers lose their empty-string
// placeholders, single answers pass through.
func Normalize(answers []model.UserAnswer) []model.UserAnswer {
	out := make([]model.UserAnswer, len(answers))
	for i, a := range answers {
		out[i] = a.Normalized()
	}
	return out
}
