package survey

import (
	"github.com/goccy/go-json"

	"github.com/gradlink/gradlink-cli/model"
)

// Value is the tagged answer union: text for short/long text and single
// choice, a selection list for multi choice, an integer for rating. The kind
// tag decides which field is live; the others stay at their zero value.
type Value struct {
	Kind     model.QuestionKind
	Text     string
	Selected []string
	Rating   int
}

func TextValue(kind model.QuestionKind, text string) Value {
	return Value{Kind: kind, Text: text}
}

func RatingValue(n int) Value {
	return Value{Kind: model.KindRating, Rating: n}
}

func ListValue(selected []string) Value {
	return Value{Kind: model.KindMultiChoice, Selected: selected}
}

// MarshalJSON emits the raw payload shape: list for multi choice, number for
// rating, string otherwise.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case model.KindMultiChoice:
		if v.Selected == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.Selected)
	case model.KindRating:
		return json.Marshal(v.Rating)
	default:
		return json.Marshal(v.Text)
	}
}

// Answers holds the in-progress answer per question identifier. It carries no
// validation; it is reset wholesale whenever the question list changes.
type Answers struct {
	byID  map[string]Value
	order []string
}

// NewAnswers initializes one neutral answer per normalized question:
// an empty selection for multi choice, an empty string or zero rating for
// everything else.
func NewAnswers(questions []model.Question) *Answers {
	a := &Answers{byID: make(map[string]Value, len(questions))}
	for _, q := range questions {
		switch q.Type {
		case model.KindMultiChoice:
			a.byID[q.ID] = ListValue([]string{})
		case model.KindRating:
			a.byID[q.ID] = RatingValue(0)
		default:
			a.byID[q.ID] = TextValue(q.Type, "")
		}
		a.order = append(a.order, q.ID)
	}
	return a
}

func (a *Answers) Get(questionID string) Value {
	return a.byID[questionID]
}

// Set replaces the value stored for a question.
func (a *Answers) Set(questionID string, v Value) {
	a.byID[questionID] = v
}

func (a *Answers) SetText(questionID, text string) {
	v := a.byID[questionID]
	v.Text = text
	a.byID[questionID] = v
}

func (a *Answers) SetRating(questionID string, n int) {
	v := a.byID[questionID]
	v.Rating = n
	a.byID[questionID] = v
}

// Toggle adds the option to a multi-choice selection if absent, removes it if
// present. The rest of the selection is left untouched.
func (a *Answers) Toggle(questionID, option string) {
	v := a.byID[questionID]
	for i, sel := range v.Selected {
		if sel == option {
			v.Selected = append(v.Selected[:i:i], v.Selected[i+1:]...)
			a.byID[questionID] = v
			return
		}
	}
	v.Selected = append(v.Selected, option)
	a.byID[questionID] = v
}
