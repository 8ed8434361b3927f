package survey

import (
	"testing"

	"github.com/gradlink/gradlink-cli/model"
)

func TestFirstUnmet_EarliestWins(t *testing.T) {
	qs := Normalize([]model.Question{
		{ID: "a", Type: "short_text", Required: true},
		{ID: "b", Type: "rating", Required: true},
	})
	a := NewAnswers(qs)

	miss := FirstUnmet(qs, a)
	if miss == nil || miss.ID != "a" {
		t.Fatalf("expected question a, got %+v", miss)
	}

	// once a is met, the rating question becomes the reported one
	a.SetText("a", "done")
	miss = FirstUnmet(qs, a)
	if miss == nil || miss.ID != "b" {
		t.Fatalf("expected question b, got %+v", miss)
	}

	a.SetRating("b", 3)
	if miss = FirstUnmet(qs, a); miss != nil {
		t.Errorf("all met, got %+v", miss)
	}
}

func TestFirstUnmet_MultiChoice(t *testing.T) {
	qs := Normalize([]model.Question{
		{ID: "m", Type: "checkbox", Options: []string{"x", "y"}, Required: true},
	})
	a := NewAnswers(qs)

	if miss := FirstUnmet(qs, a); miss == nil || miss.ID != "m" {
		t.Fatalf("empty selection should be unmet, got %+v", miss)
	}

	a.Toggle("m", "x")
	if miss := FirstUnmet(qs, a); miss != nil {
		t.Errorf("non-empty selection should be met, got %+v", miss)
	}
}

func TestFirstUnmet_ZeroRatingUnanswered(t *testing.T) {
	qs := Normalize([]model.Question{{ID: "r", Type: "rating", Required: true}})
	a := NewAnswers(qs)
	a.SetRating("r", 0)
	if miss := FirstUnmet(qs, a); miss == nil {
		t.Error("rating 0 should count as unanswered")
	}
}

func TestFirstUnmet_OptionalQuestionsSkipped(t *testing.T) {
	qs := Normalize([]model.Question{
		{ID: "opt", Type: "long_text"},
		{ID: "req", Type: "short_text", Required: true},
	})
	a := NewAnswers(qs)
	if miss := FirstUnmet(qs, a); miss == nil || miss.ID != "req" {
		t.Errorf("optional question must not be reported, got %+v", miss)
	}
}
