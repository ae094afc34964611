package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswerSheet_DecodesMixedPayload(t *testing.T) {
	var sheet AnswerSheet
	if err := json.Unmarshal([]byte(`["B", ["A","C"], null, []]`), &sheet); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(sheet) != 4 {
		t.Fatalf("len = %d, want 4", len(sheet))
	}
	if sheet[0].Multi || sheet[0].Value() != "B" {
		t.Errorf("sheet[0] = %+v, want single B", sheet[0])
	}
	if !sheet[1].Multi || !reflect.DeepEqual(sheet[1].Selected, []string{"A", "C"}) {
		t.Errorf("sheet[1] = %+v, want multi [A C]", sheet[1])
	}
	if sheet[2].Multi || !sheet[2].IsEmpty() {
		t.Errorf("sheet[2] = %+v, want empty single", sheet[2])
	}
	if !sheet[3].Multi || !sheet[3].IsEmpty() {
		t.Errorf("sheet[3] = %+v, want empty multi", sheet[3])
	}
}

func TestUserAnswer_RejectsNonStringPayload(t *testing.T) {
	for _, raw := range []string{`1`, `{"a":1}`, `[1,2]`, `true`} {
		var a UserAnswer
		if err := json.Unmarshal([]byte(raw), &a); err == nil {
			t.Errorf("Unmarshal(%s) expected error", raw)
		}
	}
}

func TestUserAnswer_MarshalKeepsShape(t *testing.T) {
	b, err := json.Marshal(AnswerSheet{SingleAnswer(""), MultiAnswer(), MultiAnswer("A")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(b), `["",[],["A"]]`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestUserAnswer_ToggleTwiceRestores(t *testing.T) {
	start := MultiAnswer("A", "C")
	for _, opt := range []string{"A", "B", "C", "D"} {
		got := start.Toggle(opt).Toggle(opt)
		if len(got.Selected) != len(start.Selected) {
			t.Fatalf("toggle %q twice: %v, want %v", opt, got.Selected, start.Selected)
		}
		for _, s := range start.Selected {
			if !got.Has(s) {
				t.Errorf("toggle %q twice lost %q", opt, s)
			}
		}
	}
}

func TestUserAnswer_Normalized(t *testing.T) {
	got := MultiAnswer("", "A", "", "C").Normalized()
	if !reflect.DeepEqual(got.Selected, []string{"A", "C"}) {
		t.Errorf("Normalized() = %v, want [A C]", got.Selected)
	}
	single := SingleAnswer("B").Normalized()
	if single.Multi || single.Value() != "B" {
		t.Errorf("single Normalized() = %+v", single)
	}
}

func TestQuestion_EmptyAnswerFollowsCardinality(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantMul bool
	}{
		{"one-correct", Question{CorrectAnswers: StringList{"A"}}, false},
		{"two-correct", Question{CorrectAnswers: StringList{"A", "B"}}, true},
		{"stripped-multi", Question{MultiSelect: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.q.EmptyAnswer()
			if a.Multi != tt.wantMul || !a.IsEmpty() {
				t.Errorf("EmptyAnswer() = %+v, want multi=%v empty", a, tt.wantMul)
			}
		})
	}
}

func TestQuiz_ForStudentHidesAnswers(t *testing.T) {
	q := &Quiz{PassingScore: 60, Questions: []Question{
		{Text: "q1", Options: StringList{"A", "B"}, CorrectAnswers: StringList{"B"}, Explanation: "because"},
		{Text: "q2", Options: StringList{"A", "B", "C"}, CorrectAnswers: StringList{"A", "C"}},
	}}
	out := q.ForStudent()
	for i, question := range out.Questions {
		if len(question.CorrectAnswers) != 0 || question.Explanation != "" {
			t.Errorf("question %d still exposes answers: %+v", i, question)
		}
	}
	if out.Questions[0].MultiSelect || !out.Questions[1].MultiSelect {
		t.Errorf("MultiSelect flags = %v/%v, want false/true", out.Questions[0].MultiSelect, out.Questions[1].MultiSelect)
	}
	if len(q.Questions[1].CorrectAnswers) != 2 {
		t.Error("ForStudent() mutated the source quiz")
	}
}
