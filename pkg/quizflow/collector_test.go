package quizflow

import (
	"elearn_backend/internal/model"
	"encoding/json"
	"reflect"
	"testing"
)

func twoQuestionQuiz() *model.Quiz {
	return &model.Quiz{
		BaseModel: model.BaseModel{ID: 7},
		Questions: []model.Question{
			{Text: "Which keyword declares a constant?", Options: model.StringList{"A", "B", "C"}},
			{Text: "Which are reference types?", Options: model.StringList{"A", "B", "C"}, MultiSelect: true},
		},
	}
}

func TestNewCollector_Sentinels(t *testing.T) {
	c := NewCollector(twoQuestionQuiz())
	got := c.Answers()
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if got[0].Multi || got[0].Value() != "" {
		t.Errorf("single sentinel = %+v, want empty string", got[0])
	}
	if !got[1].Multi || len(got[1].Selected) != 0 {
		t.Errorf("multi sentinel = %+v, want empty set", got[1])
	}
}

func TestCollector_ToggleTwiceRemoves(t *testing.T) {
	c := NewCollector(twoQuestionQuiz())
	for _, opt := range []string{"A", "C", "A"} {
		if err := c.Toggle(1, opt); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Answers()[1].Selected; !reflect.DeepEqual(got, []string{"C"}) {
		t.Errorf("selected = %v, want [C]", got)
	}
}

func TestCollector_IndexOutOfRange(t *testing.T) {
	c := NewCollector(twoQuestionQuiz())
	if err := c.SetAnswer(2, model.SingleAnswer("A")); err == nil {
		t.Error("SetAnswer(2) succeeded")
	}
	if err := c.Toggle(-1, "A"); err == nil {
		t.Error("Toggle(-1) succeeded")
	}
}

func TestCollector_AnswersIsACopy(t *testing.T) {
	c := NewCollector(twoQuestionQuiz())
	_ = c.Toggle(1, "B")
	snap := c.Answers()
	snap[1].Selected[0] = "Z"
	if got := c.Answers()[1].Selected[0]; got != "B" {
		t.Errorf("collector changed through snapshot: %q", got)
	}
}

func TestNormalize(t *testing.T) {
	in := []model.UserAnswer{
		model.SingleAnswer(""),
		model.MultiAnswer("", "A", ""),
		model.MultiAnswer(""),
	}
	got := Normalize(in)
	if got[0].Multi || got[0].Value() != "" {
		t.Errorf("single = %+v", got[0])
	}
	if !reflect.DeepEqual(got[1].Selected, []string{"A"}) {
		t.Errorf("multi = %v, want [A]", got[1].Selected)
	}
	if !got[2].Multi || len(got[2].Selected) != 0 {
		t.Errorf("placeholder-only multi = %+v, want empty set", got[2])
	}
}

func TestCollector_SubmissionPayload(t *testing.T) {
	c := NewCollector(twoQuestionQuiz())
	_ = c.SetAnswer(0, model.SingleAnswer("B"))
	_ = c.Toggle(1, "A")
	_ = c.Toggle(1, "C")

	raw, err := json.Marshal(Normalize(c.Answers()))
	if err != nil {
		t.Fatal(err)
	}
	if want := `["B",["A","C"]]`; string(raw) != want {
		t.Errorf("payload = %s, want %s", raw, want)
	}
}
