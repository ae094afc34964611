package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
)

var errInvalidAnswer = errors.New("answer must be a string or an array of strings")

// UserAnswer is a learner's response to one question. Single-select questions
// carry one option string, multi-select questions a set of option strings.
// The zero value of either form ("" or an empty set) means unanswered.
// swagger:model UserAnswer
type UserAnswer struct {
	Multi    bool
	Selected []string
}

func SingleAnswer(option string) UserAnswer {
	return UserAnswer{Selected: []string{option}}
}

func MultiAnswer(options ...string) UserAnswer {
	if options == nil {
		options = []string{}
	}
	return UserAnswer{Multi: true, Selected: options}
}

// Value returns the selected option of a single answer ("" when unanswered).
func (a UserAnswer) Value() string {
	if a.Multi || len(a.Selected) == 0 {
		return ""
	}
	return a.Selected[0]
}

func (a UserAnswer) IsEmpty() bool {
	for _, s := range a.Selected {
		if s != "" {
			return false
		}
	}
	return true
}

func (a UserAnswer) Has(option string) bool {
	for _, s := range a.Selected {
		if s == option {
			return true
		}
	}
	return false
}

// Toggle adds option to a multi answer when absent and removes it when present.
// Single answers are replaced by option.
func (a UserAnswer) Toggle(option string) UserAnswer {
	if !a.Multi {
		return SingleAnswer(option)
	}
	out := make([]string, 0, len(a.Selected)+1)
	removed := false
	for _, s := range a.Selected {
		if s == option {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed {
		out = append(out, option)
	}
	return MultiAnswer(out...)
}

// Normalized drops empty-string placeholders from a multi answer.
func (a UserAnswer) Normalized() UserAnswer {
	if !a.Multi {
		return SingleAnswer(a.Value())
	}
	out := make([]string, 0, len(a.Selected))
	for _, s := range a.Selected {
		if s != "" {
			out = append(out, s)
		}
	}
	return MultiAnswer(out...)
}

func (a UserAnswer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		if a.Selected == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Selected)
	}
	return json.Marshal(a.Value())
}

func (a *UserAnswer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = SingleAnswer("")
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = SingleAnswer(s)
		return nil
	case len(data) > 0 && data[0] == '[':
		var ss []string
		if err := json.Unmarshal(data, &ss); err != nil {
			return errInvalidAnswer
		}
		*a = MultiAnswer(ss...)
		return nil
	}
	return errInvalidAnswer
}

// AnswerSheet is the ordered list of answers of one attempt, index-aligned with
// the quiz questions. Persisted as a JSON column.
type AnswerSheet []UserAnswer

func (s AnswerSheet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]UserAnswer(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *AnswerSheet) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Normalized returns a copy with every multi answer normalized.
func (s AnswerSheet) Normalized() AnswerSheet {
	out := make(AnswerSheet, len(s))
	for i, a := range s {
		out[i] = a.Normalized()
	}
	return out
}
