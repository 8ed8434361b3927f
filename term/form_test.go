package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gradlink/gradlink-cli/model"
	"github.com/gradlink/gradlink-cli/survey"
)

func fill(t *testing.T, questions []model.Question, input string) *survey.Answers {
	t.Helper()
	answers := survey.NewAnswers(questions)
	form := NewForm(strings.NewReader(input), &bytes.Buffer{})
	if err := form.Fill(questions, answers); err != nil {
		t.Fatalf("fill: %v", err)
	}
	return answers
}

func TestFill_AllKinds(t *testing.T) {
	questions := survey.Normalize([]model.Question{
		{ID: "q1", Text: "Employer", Type: "short_text", Order: 1, Required: true},
		{ID: "q2", Text: "Role", Type: "long_text", Order: 2},
		{ID: "q3", Text: "Status", Type: "multiple_choice", Order: 3,
			Options: []string{"Employed", "Studying"}},
		{ID: "q4", Text: "Benefits", Type: "checkbox", Order: 4,
			Options: []string{"Remote", "Health", "Training"}},
		{ID: "q5", Text: "Preparedness", Type: "rating", Order: 5},
	})

	input := strings.Join([]string{
		"Initech",
		"Backend work,", "mostly Go.", ".",
		"2",
		"1,3",
		"4",
	}, "\n") + "\n"

	answers := fill(t, questions, input)

	if got := answers.Get("q1").Text; got != "Initech" {
		t.Errorf("q1 = %q", got)
	}
	if got := answers.Get("q2").Text; got != "Backend work,\nmostly Go." {
		t.Errorf("q2 = %q", got)
	}
	if got := answers.Get("q3").Text; got != "Studying" {
		t.Errorf("q3 = %q", got)
	}
	if got := answers.Get("q4").Selected; len(got) != 2 || got[0] != "Remote" || got[1] != "Training" {
		t.Errorf("q4 = %v", got)
	}
	if got := answers.Get("q5").Rating; got != 4 {
		t.Errorf("q5 = %d", got)
	}
}

func TestFill_RequiredReprompts(t *testing.T) {
	questions := survey.Normalize([]model.Question{
		{ID: "q1", Text: "Employer", Type: "short_text", Required: true},
	})

	answers := fill(t, questions, "\n\nInitech\n")

	if got := answers.Get("q1").Text; got != "Initech" {
		t.Errorf("q1 = %q", got)
	}
}

func TestFill_OptionalBlankSkips(t *testing.T) {
	questions := survey.Normalize([]model.Question{
		{ID: "q1", Text: "Status", Type: "multiple_choice",
			Options: []string{"Employed", "Studying"}},
		{ID: "q2", Text: "Rate it", Type: "rating"},
	})

	answers := fill(t, questions, "\n\n")

	if got := answers.Get("q1").Text; got != "" {
		t.Errorf("q1 = %q", got)
	}
	if got := answers.Get("q2").Rating; got != 0 {
		t.Errorf("q2 = %d", got)
	}
}

func TestFill_RejectsOutOfRangeChoice(t *testing.T) {
	questions := survey.Normalize([]model.Question{
		{ID: "q1", Text: "Status", Type: "multiple_choice", Required: true,
			Options: []string{"Employed", "Studying"}},
	})

	answers := fill(t, questions, "9\nx\n1\n")

	if got := answers.Get("q1").Text; got != "Employed" {
		t.Errorf("q1 = %q", got)
	}
}
